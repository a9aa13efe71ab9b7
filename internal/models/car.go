package models

import (
	"gorm.io/datatypes"
)

// DefaultCarImage is stored when a listing is created without images
const DefaultCarImage = "default.jpg"

type Car struct {
	BaseModel
	Brand       CarBrand                    `gorm:"type:varchar(30);not null" json:"carBrand"`
	Model       string                      `gorm:"not null" json:"carModel"`
	BodyType    BodyType                    `gorm:"type:varchar(20);not null" json:"bodyType"`
	Year        int                         `gorm:"not null" json:"year"`
	FuelType    FuelType                    `gorm:"type:varchar(20);not null" json:"fuelType"`
	Consumption float64                     `gorm:"not null" json:"consumption"`
	Color       string                      `gorm:"not null" json:"color"`
	Images      datatypes.JSONSlice[string] `json:"carImages"`
	DailyPrice  float64                     `gorm:"not null" json:"dailyPrice"`

	// AddedBy is the creator reference, set once at creation and never
	// changed by updates.
	AddedBy string `gorm:"type:uuid;not null;index" json:"addedBy"`
}
