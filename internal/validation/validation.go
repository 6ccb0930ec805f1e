// Package validation turns validator/v10 failures into errors callers can
// report field by field.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"freegames/internal/models"
)

// Error reports invalid input, keyed by JSON field name.
type Error struct {
	Message string
	Fields  map[string]string
}

func (e *Error) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return fmt.Sprintf("%s (%s)", e.Message, strings.Join(parts, "; "))
}

// NewError builds an Error for a single field.
func NewError(message, field, reason string) *Error {
	return &Error{Message: message, Fields: map[string]string{field: reason}}
}

type optionalValue interface {
	ValidationValue() any
}

// Validator checks payloads against their `validate` tags.
type Validator struct {
	validate *validator.Validate
}

// New creates a Validator that reports JSON field names and understands
// models.Optional.
func New() *Validator {
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
	// Registration only fails on an empty tag or nil func.
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if o, ok := field.Interface().(optionalValue); ok {
			return o.ValidationValue()
		}
		return nil
	},
		models.Optional[float64]{},
		models.Optional[string]{},
		models.Optional[time.Time]{},
	)
	return &Validator{validate: v}
}

// Struct validates s and returns *Error on failure.
func (v *Validator) Struct(message string, s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("validate %T: %w", s, err)
	}
	fields := make(map[string]string, len(validationErrors))
	for _, e := range validationErrors {
		fields[fieldPath(e)] = describe(e)
	}
	return &Error{Message: message, Fields: fields}
}

// fieldPath strips the top-level struct name from the namespace.
func fieldPath(e validator.FieldError) string {
	ns := e.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return e.Field()
}

func describe(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "notblank":
		return "must not be blank"
	case "gte":
		return "must be at least " + e.Param()
	case "lte":
		return "must be at most " + e.Param()
	case "oneof":
		return "must be one of: " + e.Param()
	case "ne":
		return "must not be " + e.Param()
	default:
		return fmt.Sprintf("failed on the '%s' tag", e.Tag())
	}
}
