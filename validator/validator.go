// Package validator wraps go-playground/validator with the custom rules used
// by the customer SDK and an HTTP middleware that validates JSON request
// bodies against a model.
package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// phoneRegex is a regular expression to validate phone numbers.
var phoneRegex = regexp.MustCompile(`^\+[0-9\s\(\)\-]+$`)

// Validator is a wrapper around the go-playground/validator package.
type Validator struct {
	validator *validator.Validate
}

// New creates a new Validator instance.
func New() *Validator {
	v := validator.New()

	// Register custom validation functions
	_ = v.RegisterValidation("phone", validatePhone)

	return &Validator{
		validator: v,
	}
}

// Validate validates a struct using the validator package.
func (v *Validator) Validate(s interface{}) error {
	return v.validator.Struct(s)
}

// validatePhone validates a phone number.
func validatePhone(fl validator.FieldLevel) bool {
	// If the field is empty, it's valid (use required tag if it's required)
	if fl.Field().String() == "" {
		return true
	}

	return phoneRegex.MatchString(fl.Field().String())
}
