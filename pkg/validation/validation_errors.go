package validation

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// tagString marks a value of the wrong JSON type. It is not a validator tag.
const tagString = "string"

// FieldErrors maps a field name to a single user-facing message.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	return "validation failed: " + strings.Join(fe.Fields(), ", ")
}

// Fields returns the failing field names in sorted order.
func (fe FieldErrors) Fields() []string {
	fields := make([]string, 0, len(fe))
	for f := range fe {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

// FieldMessages overrides the generic message of a tag for one field
var FieldMessages = map[string]map[string]string{
	"email": {
		"required": "Introduce un email válido",
		"email":    "Introduce un email válido",
		"max":      "Email demasiado largo",
	},
	"phone": {
		"max": "Teléfono demasiado largo",
	},
	"service": {
		"required":   "Selecciona un servicio",
		"service_id": "Selecciona un servicio",
	},
}

// FormatFieldError converts the first failure reported by the validator
// into a user-friendly message for field.
func FormatFieldError(field string, err error) string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return "Formato inválido"
	}
	e := validationErrors[0]
	return formatMessage(field, e.Tag(), e.Param())
}

func formatMessage(field, tag, param string) string {
	if overrides, ok := FieldMessages[field]; ok {
		if msg, ok := overrides[tag]; ok {
			return msg
		}
	}

	switch tag {
	case "required":
		return "Campo obligatorio"
	case "min":
		return fmt.Sprintf("Mínimo %s caracteres", param)
	case "max":
		return fmt.Sprintf("Máximo %s caracteres", param)
	case "email":
		return "Introduce un email válido"
	default:
		return "Formato inválido"
	}
}
