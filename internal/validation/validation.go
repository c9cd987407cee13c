package validation

import (
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report errors under the JSON field name, not the Go field name.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterValidation("clock", validateClock)
	return v
}

// validateClock checks HH:MM or HH:MM:SS wall-clock strings.
func validateClock(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if _, err := time.Parse("15:04:05", s); err == nil {
		return true
	}
	_, err := time.Parse("15:04", s)
	return err == nil
}

// FieldErrors maps a field name to its validation messages.
type FieldErrors map[string][]string

// Struct validates s against its validate tags and returns a field error
// map, or nil when the struct is valid.
func Struct(s interface{}) FieldErrors {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return FieldErrors{"request": {err.Error()}}
	}

	out := FieldErrors{}
	for _, fe := range ve {
		out[fe.Field()] = append(out[fe.Field()], message(fe))
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "The " + fe.Field() + " field is required."
	case "email":
		return "The " + fe.Field() + " field must be a valid email address."
	case "min":
		return "The " + fe.Field() + " field must be at least " + fe.Param() + " characters."
	case "max":
		return "The " + fe.Field() + " field must be at most " + fe.Param() + " characters."
	case "oneof":
		return "The " + fe.Field() + " field must be one of: " + fe.Param() + "."
	case "datetime":
		return "The " + fe.Field() + " field must match the format " + fe.Param() + "."
	case "clock":
		return "The " + fe.Field() + " field must be a valid HH:MM time."
	default:
		return "The " + fe.Field() + " field is invalid."
	}
}
