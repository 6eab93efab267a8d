package validator

import (
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/oapi-codegen/nullable"
)

// maxNumeric10_2 is the exclusive upper bound of a NUMERIC(10,2) column.
const maxNumeric10_2 = 1e8

// Validator is a validator that validates the given struct.
type Validator interface {
	// Validate validates the given struct
	Validate(s any) error
}

type DefaultValidator struct {
	v *validator.Validate
}

// NewDefaultValidator creates a new default validator.
// It returns a new DefaultValidator and an error if the validator registration fails.
func NewDefaultValidator() (*DefaultValidator, error) {
	v := validator.New()

	v.RegisterTagNameFunc(jsonTagName)

	// Unwrap nullable fields so "omitempty" skips absent keys and nulls while
	// any present value, zero or not, is checked.
	v.RegisterCustomTypeFunc(nullableValue,
		nullable.Nullable[string]{},
		nullable.Nullable[float64]{},
		nullable.Nullable[int]{},
		nullable.Nullable[int64]{},
	)

	// Register custom validators
	if err := v.RegisterValidation("decimal10_2", validateDecimal10_2); err != nil {
		return nil, fmt.Errorf("register decimal10_2 validator: %w", err)
	}

	return &DefaultValidator{v: v}, nil
}

func (v DefaultValidator) Validate(s any) error {
	return v.v.Struct(s)
}

// IsValidationError checks if the given error is a validation error
func IsValidationError(err error) bool {
	_, ok := err.(validator.ValidationErrors)
	return ok
}

func ValidationErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field is required"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "decimal10_2":
		return "must be a decimal number with at most 8 integer digits"
	default:
		return "is invalid"
	}
}

func jsonTagName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}

func nullableValue(field reflect.Value) any {
	switch f := field.Interface().(type) {
	case nullable.Nullable[string]:
		return valueOrNil(f)
	case nullable.Nullable[float64]:
		return valueOrNil(f)
	case nullable.Nullable[int]:
		return valueOrNil(f)
	case nullable.Nullable[int64]:
		return valueOrNil(f)
	default:
		return nil
	}
}

// valueOrNil returns a pointer so a present zero value still counts as set.
func valueOrNil[T any](f nullable.Nullable[T]) any {
	v, err := f.Get()
	if err != nil {
		return nil
	}
	return &v
}

func validateDecimal10_2(fl validator.FieldLevel) bool {
	field := fl.Field()
	switch field.Kind() {
	case reflect.Float32, reflect.Float64:
		f := field.Float()
		return !math.IsNaN(f) && !math.IsInf(f, 0) && math.Abs(f) < maxNumeric10_2
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return math.Abs(float64(field.Int())) < maxNumeric10_2
	default:
		return false
	}
}
