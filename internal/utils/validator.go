package utils

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"recipe-hub/domain"
)

var Validate *validator.Validate

// InitValidator builds the shared validator. Field names in errors use the
// json tag so they match what the client sent.
func InitValidator() {
	Validate = NewValidator()
}

func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// ValidateStruct runs v against s and converts failures into a
// *domain.ValidationError listing every failing field.
func ValidateStruct(v *validator.Validate, s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	verr := domain.NewValidationError()
	for _, fe := range validationErrors {
		field := fieldPath(fe.Namespace())
		verr.Add(field, errorMessage(field, fe))
	}
	return verr
}

// fieldPath drops the root struct name from a validator namespace.
func fieldPath(namespace string) string {
	if idx := strings.Index(namespace, "."); idx >= 0 {
		return namespace[idx+1:]
	}
	return namespace
}

func errorMessage(field string, fe validator.FieldError) string {
	param := fe.Param()
	isList := fe.Kind() == reflect.Slice || fe.Kind() == reflect.Array || fe.Kind() == reflect.Map
	isNumber := isNumericKind(fe.Kind())

	switch fe.Tag() {
	case "required":
		if isList {
			return fmt.Sprintf("%s must contain at least 1 item", field)
		}
		return fmt.Sprintf("%s is required", field)
	case "min":
		if isList {
			return fmt.Sprintf("%s must contain at least %s item(s)", field, param)
		}
		if isNumber {
			return fmt.Sprintf("%s must be at least %s", field, param)
		}
		return fmt.Sprintf("%s must be at least %s characters long", field, param)
	case "max":
		if isList {
			return fmt.Sprintf("%s must contain at most %s items", field, param)
		}
		if isNumber {
			return fmt.Sprintf("%s must be at most %s", field, param)
		}
		return fmt.Sprintf("%s must be at most %s characters long", field, param)
	case "gt":
		if param == "0" {
			return fmt.Sprintf("%s must be a positive number", field)
		}
		return fmt.Sprintf("%s must be greater than %s", field, param)
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, param)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(param, " ", ", "))
	case "uuid":
		return fmt.Sprintf("%s must be a valid id", field)
	case "url", "startswith":
		return fmt.Sprintf("%s must be a valid URL", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	default:
		return fmt.Sprintf("%s is invalid (%s)", field, fe.Tag())
	}
}

func isNumericKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
