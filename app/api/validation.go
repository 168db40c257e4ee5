package api

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FormatValidationErrors turns binding errors into a field -> message map.
// Other errors are returned as their message.
func FormatValidationErrors(err error) interface{} {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		out := make(map[string]string, len(validationErrors))
		for _, fieldError := range validationErrors {
			out[fieldPath(fieldError)] = validationMessage(fieldError)
		}
		return out
	}
	return err.Error()
}

// fieldPath drops the top-level struct name from the namespace, so nested
// batch entries read as bets[1].amount.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func validationMessage(fieldError validator.FieldError) string {
	switch fieldError.Tag() {
	case "required":
		return "This field is required"
	case "oneof":
		return "Must be one of: " + fieldError.Param()
	case "gt":
		return "Value must be greater than " + fieldError.Param()
	case "gte":
		return "Value must be greater than or equal to " + fieldError.Param()
	case "lte":
		return "Value must be less than or equal to " + fieldError.Param()
	case "min":
		return "Value must be at least " + fieldError.Param()
	case "max":
		return "Value must be at most " + fieldError.Param()
	case "email":
		return "Must be a valid email address"
	case "dive":
		return "Invalid entry"
	default:
		return "Invalid value"
	}
}
