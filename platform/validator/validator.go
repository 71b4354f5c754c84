// Package validator provides validation infrastructure for the application.
// This is part of the platform layer and contains no business logic.
package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator wraps the go-playground validator for structured validation.
// Using a struct allows for dependency injection and easier testing.
type Validator struct {
	v *validator.Validate
}

// New creates a new Validator instance.
// Domain-specific validation rules can be registered using RegisterValidation.
func New() *Validator {
	return &Validator{
		v: validator.New(),
	}
}

// Struct validates a struct based on validation tags.
func (val *Validator) Struct(s interface{}) error {
	return val.v.Struct(s)
}

// Var validates a single variable against a tag.
func (val *Validator) Var(field interface{}, tag string) error {
	return val.v.Var(field, tag)
}

// RegisterValidation registers a custom validation function.
func (val *Validator) RegisterValidation(tag string, fn validator.Func) error {
	return val.v.RegisterValidation(tag, fn)
}

// Describe turns a validation error into a caller-friendly detail string,
// one clause per failed field.
func Describe(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err.Error()
	}

	clauses := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		switch fe.Tag() {
		case "required":
			clauses = append(clauses, fmt.Sprintf("%s is required", fe.Field()))
		case "email":
			clauses = append(clauses, fmt.Sprintf("%s must be a valid email address", fe.Field()))
		case "min":
			clauses = append(clauses, fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param()))
		case "max":
			clauses = append(clauses, fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param()))
		default:
			clauses = append(clauses, fmt.Sprintf("%s is invalid", fe.Field()))
		}
	}
	return strings.Join(clauses, "; ")
}
