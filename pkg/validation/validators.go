package validation

import (
	"go-touring-backend/internal/domain"

	"github.com/go-playground/validator/v10"
)

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("service_id", ValidServiceID)
}

// ValidServiceID validates that a string is one of the offered service identifiers
func ValidServiceID(fl validator.FieldLevel) bool {
	return domain.IsValidServiceID(fl.Field().String())
}
