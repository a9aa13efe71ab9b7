package validator

import (
	"log"
	"strings"
	"unicode"

	"carpicks_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules registers the domain validation rules on the given
// validator instance.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// A rule that fails to register is a startup error, the
			// application must not run without it.
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	// 'password': minimum 8 characters, at least one digit and one special
	// character. Enforced at write time only; the stored hash is never
	// re-validated.
	mustRegister("password", validatePassword)

	// Closed enums from the car model
	mustRegister("carbrand", validateCarBrand)
	mustRegister("bodytype", validateBodyType)
	mustRegister("fueltype", validateFuelType)
}

func validatePassword(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // empty is the 'required' rule's business
	}

	if len(value) < 8 {
		return false
	}

	var hasDigit, hasSpecial bool
	for _, r := range value {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune("!@#$%^&*", r):
			hasSpecial = true
		}
	}
	return hasDigit && hasSpecial
}

func validateCarBrand(fl validator.FieldLevel) bool {
	return emptyOrOneOf(fl.Field().String(), models.CarBrands)
}

func validateBodyType(fl validator.FieldLevel) bool {
	return emptyOrOneOf(fl.Field().String(), models.BodyTypes)
}

func validateFuelType(fl validator.FieldLevel) bool {
	return emptyOrOneOf(fl.Field().String(), models.FuelTypes)
}

func emptyOrOneOf(value string, allowed []string) bool {
	if value == "" {
		return true
	}
	for _, a := range allowed {
		if value == a {
			return true
		}
	}
	return false
}
