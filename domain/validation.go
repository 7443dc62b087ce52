package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"reflect"
	"strconv"
	"strings"
)

var ErrValidationFailed = errors.New("validation failed")

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError enumerates every failing field of a request.
type ValidationError struct {
	Details []FieldError `json:"details"`
}

func NewValidationError(details ...FieldError) *ValidationError {
	return &ValidationError{Details: details}
}

func (e *ValidationError) Add(field, message string) {
	e.Details = append(e.Details, FieldError{Field: field, Message: message})
}

func (e *ValidationError) HasErrors() bool {
	return e != nil && len(e.Details) > 0
}

func (e *ValidationError) Error() string {
	if len(e.Details) == 0 {
		return ErrValidationFailed.Error()
	}
	parts := make([]string, 0, len(e.Details))
	for _, d := range e.Details {
		parts = append(parts, d.Field+": "+d.Message)
	}
	return ErrValidationFailed.Error() + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}

// FlexInt accepts a JSON number or a numeric string.
type FlexInt int

func (n *FlexInt) UnmarshalJSON(b []byte) error {
	raw := string(bytes.Trim(b, `"`))
	if raw == "" || raw == "null" {
		*n = 0
		return nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || f != math.Trunc(f) {
		return numberError(b, reflect.TypeOf(*n))
	}
	*n = FlexInt(f)
	return nil
}

func (n *FlexInt) IntPtr() *int {
	if n == nil {
		return nil
	}
	v := int(*n)
	return &v
}

// FlexFloat accepts a JSON number or a numeric string.
type FlexFloat float64

func (n *FlexFloat) UnmarshalJSON(b []byte) error {
	raw := string(bytes.Trim(b, `"`))
	if raw == "" || raw == "null" {
		*n = 0
		return nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return numberError(b, reflect.TypeOf(*n))
	}
	*n = FlexFloat(f)
	return nil
}

// numberError is an *json.UnmarshalTypeError so encoding/json fills in
// the path of the offending field.
func numberError(b []byte, t reflect.Type) error {
	value := "number " + string(b)
	if bytes.HasPrefix(b, []byte(`"`)) {
		value = "string " + string(b)
	}
	return &json.UnmarshalTypeError{Value: value, Type: t}
}

// DecodeError turns a request body type mismatch into a ValidationError
// naming the field. Other errors are returned unchanged.
func DecodeError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if !errors.As(err, &typeErr) || typeErr.Field == "" {
		return err
	}
	return NewValidationError(FieldError{
		Field:   typeErr.Field,
		Message: typeErr.Field + " " + typeMessage(typeErr.Type),
	})
}

func typeMessage(t reflect.Type) string {
	switch t {
	case reflect.TypeOf(FlexInt(0)):
		return "must be a whole number"
	case reflect.TypeOf(FlexFloat(0)):
		return "must be a number"
	}
	switch t.Kind() {
	case reflect.String:
		return "must be a string"
	case reflect.Bool:
		return "must be a boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "must be a number"
	case reflect.Slice, reflect.Array:
		return "must be a list"
	case reflect.Struct, reflect.Map:
		return "must be an object"
	}
	return "has the wrong type"
}
