package validation

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// New returns a validator with the project's custom tags registered.
func New() *validator.Validate {
	v := validator.New()
	RegisterValidators(v)
	return v
}

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("notblank", NotBlank)
}

// NotBlank rejects strings that are empty once surrounding whitespace is removed.
// Combine with omitempty for optional pointer fields on partial updates.
func NotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}
