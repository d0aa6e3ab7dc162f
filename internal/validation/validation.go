// Package validation holds the field rules shared by registration, login,
// contact and exam-scheduling flows. Checks run with a fixed precedence:
// presence first, then format, then business rules.
package validation

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// MinPasswordLength is the only password rule; no complexity is required.
const MinPasswordLength = 6

var (
	// Non-whitespace local part, non-whitespace domain with at least one dot.
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

	// Brazilian phone: (XX) XXXXX-XXXX or (XX) XXXX-XXXX.
	phonePattern = regexp.MustCompile(`^\(\d{2}\)\s\d{4,5}-\d{4}$`)
)

// ValidEmail reports whether s looks like an email address.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// ValidPhone reports whether s is a Brazilian phone in (XX) XXXXX-XXXX form.
func ValidPhone(s string) bool {
	return phonePattern.MatchString(s)
}

// ValidPassword reports whether s meets the minimum length.
func ValidPassword(s string) bool {
	return len(s) >= MinPasswordLength
}

// New returns a validator with the storefront's custom tags registered:
// "brphone" applies the Brazilian phone format.
func New() *validator.Validate {
	v := validator.New()

	// RegisterValidation only fails for an empty tag name.
	_ = v.RegisterValidation("brphone", func(fl validator.FieldLevel) bool {
		return ValidPhone(fl.Field().String())
	})

	return v
}
