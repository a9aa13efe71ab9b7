package repositories

import (
	"errors"
	"time"

	"carpicks_backend/internal/models"

	"gorm.io/gorm"
)

var ErrCarNotFound = errors.New("car not found")

// BrandAggregate is a row of the brand -> average daily price aggregation
type BrandAggregate struct {
	Brand        string  `json:"carBrand" gorm:"column:brand"`
	AveragePrice float64 `json:"averagePrice" gorm:"column:average_price"`
}

type CarRepository interface {
	Create(db *gorm.DB, car *models.Car) error
	FindByID(db *gorm.DB, id string) (*models.Car, error)
	Update(db *gorm.DB, id string, updates map[string]interface{}) (*models.Car, error)
	Delete(db *gorm.DB, id string) error
	FindAll(db *gorm.DB) ([]models.Car, error)
	GroupByBrand(db *gorm.DB) ([]BrandAggregate, error)
}

type CarRepositoryImpl struct{}

func NewCarRepository() CarRepository {
	return &CarRepositoryImpl{}
}

func (r *CarRepositoryImpl) Create(db *gorm.DB, car *models.Car) error {
	return db.Create(car).Error
}

func (r *CarRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Car, error) {
	var car models.Car
	err := db.First(&car, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCarNotFound
		}
		return nil, err
	}
	return &car, nil
}

// Update applies a partial column update and returns the fresh row.
// The creator reference is never part of updates; handlers build the map
// from the allow-listed mutable fields only.
func (r *CarRepositoryImpl) Update(db *gorm.DB, id string, updates map[string]interface{}) (*models.Car, error) {
	updates["updated_at"] = time.Now()

	result := db.Model(&models.Car{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrCarNotFound
	}

	return r.FindByID(db, id)
}

func (r *CarRepositoryImpl) Delete(db *gorm.DB, id string) error {
	result := db.Delete(&models.Car{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCarNotFound
	}
	return nil
}

func (r *CarRepositoryImpl) FindAll(db *gorm.DB) ([]models.Car, error) {
	var cars []models.Car
	if err := db.Find(&cars).Error; err != nil {
		return nil, err
	}
	return cars, nil
}

func (r *CarRepositoryImpl) GroupByBrand(db *gorm.DB) ([]BrandAggregate, error) {
	var rows []BrandAggregate
	err := db.Model(&models.Car{}).
		Select("brand, AVG(daily_price) AS average_price").
		Group("brand").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
