package config

import (
	"errors"
	"fmt"
	"strings"

	validatorV10 "github.com/go-playground/validator/v10"
)

var validator = validatorV10.New()

// ValidateStruct checks the `validate` tags of instance.
func ValidateStruct(instance any) error {
	err := validator.Struct(instance)
	if err == nil {
		return nil
	}

	var fieldErrs validatorV10.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("❌ Config validation failed: %w", err)
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, getValidationMessage(fe))
	}
	return fmt.Errorf("❌ Config validation failed: %s", strings.Join(msgs, "; "))
}

func getValidationMessage(fe validatorV10.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %v", fe.Field(), fe.Param(), fe.Value())
	case "gte":
		return fmt.Sprintf("%s must be >= %s, got %v", fe.Field(), fe.Param(), fe.Value())
	default:
		return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}
}
