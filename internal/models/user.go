package models

import (
	"time"

	"gorm.io/datatypes"
)

type User struct {
	BaseModel
	Name         string   `gorm:"not null" json:"name"`
	Age          int      `gorm:"not null" json:"age"`
	Email        string   `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string   `gorm:"not null" json:"-"`
	Role         UserRole `gorm:"type:varchar(20);not null;default:'user'" json:"role"`

	// AddedCars is the denormalized back-reference list of car ids owned by
	// this user. Appended on car creation, removed on car deletion; the two
	// writes are not atomic with the car row, so a stale id must be
	// tolerated by readers.
	AddedCars datatypes.JSONSlice[string] `json:"addedCars"`

	// Set only between a password-reset request and its consumption.
	// PasswordResetToken holds the sha256 of the 6-digit code, never the
	// code itself.
	PasswordResetToken   string     `json:"-"`
	PasswordResetExpires *time.Time `json:"-"`
}

// HasCar reports whether the car id is in the owner's back-reference list
func (u *User) HasCar(carID string) bool {
	for _, id := range u.AddedCars {
		if id == carID {
			return true
		}
	}
	return false
}

// RemoveCar drops the car id from the back-reference list
func (u *User) RemoveCar(carID string) {
	filtered := u.AddedCars[:0]
	for _, id := range u.AddedCars {
		if id != carID {
			filtered = append(filtered, id)
		}
	}
	u.AddedCars = filtered
}
