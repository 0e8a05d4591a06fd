package util

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var Validate *validator.Validate

var upperCase = regexp.MustCompile(`[A-Z]`)

func init() {
	Validate = validator.New()

	// report json field names instead of Go field names
	Validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	Validate.RegisterValidation("hasuppercase", validateHasUppercase)
}

func validateHasUppercase(fl validator.FieldLevel) bool {
	return upperCase.MatchString(fl.Field().String())
}

type ErrorResponse struct {
	Field string `json:"field"`
	Tag   string `json:"tag"`
	Msg   string `json:"message"`
}

// ValidateStruct returns one ErrorResponse per failed rule, or nil when s is valid.
func ValidateStruct(s interface{}) []*ErrorResponse {
	err := Validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []*ErrorResponse{{Field: "", Tag: "invalid", Msg: err.Error()}}
	}

	var out []*ErrorResponse
	for _, fe := range validationErrors {
		element := ErrorResponse{Field: fe.Field(), Tag: fe.Tag()}

		switch fe.Tag() {
		case "required":
			element.Msg = fmt.Sprintf("Field '%s' is required.", element.Field)
		case "min":
			element.Msg = fmt.Sprintf("Field '%s' must be at least %s characters long.", element.Field, fe.Param())
		case "max":
			element.Msg = fmt.Sprintf("Field '%s' must be at most %s characters long.", element.Field, fe.Param())
		case "email":
			element.Msg = "Invalid email format."
		case "hasuppercase":
			element.Msg = "Password must contain at least one uppercase letter."
		case "alphanum":
			element.Msg = fmt.Sprintf("Field '%s' may only contain letters and digits.", element.Field)
		case "oneof":
			element.Msg = fmt.Sprintf("Field '%s' must be one of: %s.", element.Field, fe.Param())
		case "gtfield":
			element.Msg = fmt.Sprintf("Field '%s' must be after '%s'.", element.Field, fe.Param())
		default:
			element.Msg = fmt.Sprintf("Field '%s' failed validation on '%s'.", element.Field, element.Tag)
		}
		out = append(out, &element)
	}
	return out
}
