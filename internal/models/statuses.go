package models

// UserRole is the account role enum
type UserRole string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"
)

// CarBrand is the closed brand enum
type CarBrand string

// CarBrands lists every accepted brand value
var CarBrands = []string{
	"Toyota", "Ford", "Honda", "Volkswagen", "Nissan", "BMW",
	"Mercedes-Benz", "Audi", "Hyundai", "Tesla", "Subaru", "Mazda",
	"Lexus", "Jeep", "Volvo", "Porsche",
}

// BodyType is the closed body-type enum
type BodyType string

const (
	BodyTypeHatchback BodyType = "hatchback"
	BodyTypeWagon     BodyType = "wagon"
	BodyTypeCrossover BodyType = "crossover"
	BodyTypeSedan     BodyType = "sedan"
	BodyTypeCoupe     BodyType = "coupe"
	BodyTypeSUV       BodyType = "suv"
	BodyTypeCabriolet BodyType = "cabriolet"
)

// BodyTypes lists every accepted body-type value
var BodyTypes = []string{
	string(BodyTypeHatchback), string(BodyTypeWagon), string(BodyTypeCrossover),
	string(BodyTypeSedan), string(BodyTypeCoupe), string(BodyTypeSUV),
	string(BodyTypeCabriolet),
}

// FuelType is the closed fuel enum
type FuelType string

const (
	FuelTypeGasoline FuelType = "gasoline"
	FuelTypeDiesel   FuelType = "diesel"
	FuelTypeHybrid   FuelType = "hybrid"
	FuelTypeElectric FuelType = "electric"
)

// FuelTypes lists every accepted fuel value
var FuelTypes = []string{
	string(FuelTypeGasoline), string(FuelTypeDiesel),
	string(FuelTypeHybrid), string(FuelTypeElectric),
}
