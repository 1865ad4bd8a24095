package serverutils

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

// newValidator reports fields by their JSON name so messages match the request body.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// ValidateRequest runs struct tag validation and reports failures as a 400.
func ValidateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return NewBadRequest(formatValidationErrors(validationErrs))
	}
	return NewBadRequest(err.Error())
}

func formatValidationErrors(errs validator.ValidationErrors) string {
	parts := make([]string, 0, len(errs))
	for _, fe := range errs {
		switch fe.Tag() {
		case "required":
			parts = append(parts, fmt.Sprintf("%s is required", fe.Field()))
		case "min":
			if fe.Param() == "1" {
				parts = append(parts, fmt.Sprintf("%s is required", fe.Field()))
			} else {
				parts = append(parts, fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param()))
			}
		case "uuid":
			parts = append(parts, fmt.Sprintf("%s must be a valid UUID", fe.Field()))
		case "max":
			parts = append(parts, fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param()))
		default:
			parts = append(parts, fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag()))
		}
	}
	return strings.Join(parts, "; ")
}
