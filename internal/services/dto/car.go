package dto

// CreateCarRequest - new listing payload. The creator comes from the
// session, never from the body.
type CreateCarRequest struct {
	Brand       string   `json:"carBrand" validate:"required,carbrand"`
	Model       string   `json:"carModel" validate:"required"`
	BodyType    string   `json:"bodyType" validate:"required,bodytype"`
	Year        int      `json:"year" validate:"required"`
	FuelType    string   `json:"fuelType" validate:"required,fueltype"`
	Consumption float64  `json:"consumption" validate:"required"`
	Color       string   `json:"color" validate:"required"`
	Images      []string `json:"carImages"`
	DailyPrice  float64  `json:"dailyPrice" validate:"required"`
}

// UpdateCarRequest - partial update payload; nil fields stay untouched.
// The creator reference is not updatable.
type UpdateCarRequest struct {
	Brand       *string   `json:"carBrand" validate:"omitempty,carbrand"`
	Model       *string   `json:"carModel"`
	BodyType    *string   `json:"bodyType" validate:"omitempty,bodytype"`
	Year        *int      `json:"year"`
	FuelType    *string   `json:"fuelType" validate:"omitempty,fueltype"`
	Consumption *float64  `json:"consumption"`
	Color       *string   `json:"color"`
	Images      *[]string `json:"carImages"`
	DailyPrice  *float64  `json:"dailyPrice"`
}
