package types

import (
	"errors"
	"fmt"
	"parcel-tracking/apperr"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report json names so messages match the request payload.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("email_or_blank", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s == "" || v.Var(s, "email") == nil
	})
	return v
}

// ValidateStruct runs the validate tags on req and converts the first failure
// into an InvalidArgument naming the offending field.
func ValidateStruct(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return apperr.InvalidArgument("", err.Error())
	}

	fe := verrs[0]
	return apperr.InvalidArgument(fe.Field(), describe(fe))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s field required", fe.Field())
	case "email", "email_or_blank":
		return "Enter a valid email address."
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "min", "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "max", "lte":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	case "uuid":
		return "must be a valid UUID"
	default:
		return fmt.Sprintf("failed on the '%s' rule", fe.Tag())
	}
}
