package validation

import (
	"strings"

	"go-touring-backend/internal/domain"
	"go-touring-backend/pkg/sanitize"

	"github.com/go-playground/validator/v10"
)

// fieldRule describes how one submission field is accepted. The stages run
// in order: presence/type, prepare, check, transform, enum.
type fieldRule struct {
	name      string
	required  bool
	prepare   func(string) string
	check     string
	transform func(string) string
	enum      string
}

var contactRules = []fieldRule{
	{name: "name", required: true, check: "min=2,max=100", transform: sanitize.Normalize},
	{name: "company", required: true, check: "min=2,max=150", transform: sanitize.Normalize},
	{name: "email", required: true, prepare: strings.TrimSpace, check: "required,email,max=254", transform: strings.ToLower},
	{name: "phone", check: "max=20", transform: sanitize.Normalize},
	{name: "service", required: true, enum: "required,service_id"},
	{name: "message", required: true, check: "min=10,max=2000", transform: sanitize.Normalize},
}

// ContactValidator validates and sanitizes raw contact form payloads. The
// same instance backs the optimistic client check and the server check.
type ContactValidator struct {
	validate *validator.Validate
}

// NewContactValidator registers the custom validators on v. A nil v gets a
// fresh validator instance.
func NewContactValidator(v *validator.Validate) *ContactValidator {
	if v == nil {
		v = validator.New()
	}
	RegisterValidators(v)
	return &ContactValidator{validate: v}
}

// Validate checks every field of raw and returns the sanitized submission,
// or one message per failing field. All fields are checked before returning.
func (cv *ContactValidator) Validate(raw map[string]interface{}) (*domain.ContactSubmission, FieldErrors) {
	errs := FieldErrors{}
	values := make(map[string]string, len(contactRules))

	for _, rule := range contactRules {
		value, msg, ok := cv.acceptField(rule, raw[rule.name])
		if !ok {
			errs[rule.name] = msg
			continue
		}
		values[rule.name] = value
	}

	if len(errs) > 0 {
		return nil, errs
	}

	return &domain.ContactSubmission{
		Name:    values["name"],
		Company: values["company"],
		Email:   values["email"],
		Phone:   values["phone"],
		Service: domain.ServiceID(values["service"]),
		Message: values["message"],
	}, nil
}

func (cv *ContactValidator) acceptField(rule fieldRule, raw interface{}) (string, string, bool) {
	if raw == nil {
		if rule.required {
			return "", formatMessage(rule.name, "required", ""), false
		}
		return "", "", true
	}

	value, isString := raw.(string)
	if !isString {
		return "", formatMessage(rule.name, tagString, ""), false
	}
	if !rule.required && value == "" {
		return "", "", true
	}

	if rule.prepare != nil {
		value = rule.prepare(value)
	}
	if rule.check != "" {
		if err := cv.validate.Var(value, rule.check); err != nil {
			return "", FormatFieldError(rule.name, err), false
		}
	}
	if rule.transform != nil {
		value = rule.transform(value)
	}
	if rule.enum != "" {
		if err := cv.validate.Var(value, rule.enum); err != nil {
			return "", FormatFieldError(rule.name, err), false
		}
	}
	return value, "", true
}
