// Package validator provides a shared validation instance for use across all
// bounded contexts. Domain-specific validation rules should be registered in
// their respective domains.
package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	// Loose phone pattern: digits with optional leading + and common punctuation.
	phonePattern = regexp.MustCompile(`^\+?[\d\s\-\(\)]+$`)
	// US zip: NNNNN or NNNNN-NNNN.
	zipPattern = regexp.MustCompile(`^\d{5}(-\d{4})?$`)
)

// Validate is the shared validator instance used across all modules.
// Domain-specific validation rules can be registered in their respective
// domain packages using RegisterValidation.
var Validate = New()

// New creates a validator with the application's custom rules registered.
func New() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("uszip", func(fl validator.FieldLevel) bool {
		return zipPattern.MatchString(fl.Field().String())
	})
	return v
}
