// Package validation validates request inputs with go-playground/validator
// and turns the first failure into a client-facing validation error.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"threadly/internal/models"

	"github.com/go-playground/validator/v10"
)

// MaxPasswordBytes is bcrypt's input limit. It counts bytes, not characters.
const MaxPasswordBytes = 72

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = v.RegisterValidation("bcryptlen", func(fl validator.FieldLevel) bool {
		return len(fl.Field().String()) <= MaxPasswordBytes
	})
	return v
}

// Struct validates s against its `validate` tags. The returned error is a
// *models.AppError with code VALIDATION_ERROR describing the first failing field.
func Struct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return models.NewValidationError(fmt.Sprintf("%s %s", fe.Field(), describe(fe)))
	}
	return models.NewValidationError("invalid payload")
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "is required"
	case "email":
		return "must be a valid email"
	case "min":
		return "must be at least " + fe.Param() + " characters long"
	case "max":
		return "must be at most " + fe.Param() + " characters long"
	case "bcryptlen":
		return fmt.Sprintf("must be at most %d bytes long", MaxPasswordBytes)
	case "url":
		return "must be a valid URL"
	default:
		return "is invalid"
	}
}
