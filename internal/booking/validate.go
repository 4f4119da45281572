package booking

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// NewValidator reports fields by their JSON names.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}

		return name
	})

	return v
}

// ToInputError turns validator failures into an InputError and passes other
// errors through unchanged.
func ToInputError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	inputErr := newInputError()

	for _, fe := range validationErrs {
		switch fe.Tag() {
		case "required":
			if fe.Kind() == reflect.Bool {
				inputErr.addError(fe.Field(), "accept "+fe.Field())

				continue
			}

			inputErr.addError(fe.Field(), "provide "+fe.Field())
		case "email":
			inputErr.addError(fe.Field(), "provide valid email")
		default:
			inputErr.addError(fe.Field(), "invalid "+fe.Field())
		}
	}

	return inputErr
}

// NewFieldError builds an InputError for a single field.
func NewFieldError(field, msg string) *InputError {
	inputErr := newInputError()
	inputErr.addError(field, msg)

	return inputErr
}
