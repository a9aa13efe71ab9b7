package database

import (
	"fmt"

	"carpicks_backend/internal/models"

	"gorm.io/gorm"
)

// Migrate runs the schema migration for every model
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Car{},
	); err != nil {
		return fmt.Errorf("failed to run auto migration: %w", err)
	}
	return nil
}
