package validation

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Validator wraps the go-playground validator with custom rules and error formatting
type Validator struct {
	validate *validator.Validate
}

// GetValidate returns the underlying validator.Validate instance for use with Echo
func (v *Validator) GetValidate() *validator.Validate {
	return v.validate
}

// singleton instance of the validator
var instance *Validator

// GetValidator returns the singleton validator instance
func GetValidator() *Validator {
	if instance == nil {
		instance = NewValidator()
	}
	return instance
}

// NewValidator creates a new validator instance with custom rules and configuration
func NewValidator() *Validator {
	v := validator.New()

	_ = v.RegisterValidation("benefit_timing", validateBenefitTiming)
	_ = v.RegisterValidation("decimal_amount", validateDecimalAmount)
	_ = v.RegisterValidation("user_uuid", validateUUID)

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validate: v}
}

// Custom validation functions

// validateBenefitTiming validates that a timing value is a known cadence
func validateBenefitTiming(fl validator.FieldLevel) bool {
	timing := strings.ToLower(fl.Field().String())
	validTimings := map[string]bool{
		"monthly":     true,
		"quarterly":   true,
		"semi_annual": true,
		"annual":      true,
	}
	return validTimings[timing]
}

// validateDecimalAmount validates that a string holds a positive decimal with
// at most 2 fraction digits. Amounts cross the API boundary as strings so
// they never round-trip through floats.
func validateDecimalAmount(fl validator.FieldLevel) bool {
	raw := fl.Field().String()
	if raw == "" {
		return false
	}

	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return false
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return false
	}
	return amount.Exponent() >= -2
}

// validateUUID validates that a string is a UUID
func validateUUID(fl validator.FieldLevel) bool {
	id := strings.ToLower(fl.Field().String())
	if id == "" {
		return false
	}

	matched, _ := regexp.MatchString(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`, id)
	return matched
}
