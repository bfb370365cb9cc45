package http

import (
	"errors"
	"reflect"
	"strings"
	"unicode/utf8"

	"labflow/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// RequestValidator plugs go-playground/validator into echo.Context.Validate and
// reports failures as errs values keyed by JSON field path.
type RequestValidator struct {
	validate *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	return &RequestValidator{validate: v}
}

func (rv *RequestValidator) Validate(i any) error {
	err := rv.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errs.NewValueIsInvalidErrorWithCause("request body", err)
	}

	joined := make([]error, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		joined = append(joined, fieldError(fe))
	}
	return errors.Join(joined...)
}

func fieldError(fe validator.FieldError) error {
	field := fieldPath(fe)

	switch fe.Tag() {
	case "required":
		return errs.NewValueIsRequiredError(field)
	case "min":
		return errs.NewValueIsOutOfRangeError(field, size(fe.Value()), fe.Param(), "unbounded")
	case "max":
		return errs.NewValueIsOutOfRangeError(field, size(fe.Value()), 0, fe.Param())
	case "oneof":
		return errs.NewValueIsInvalidErrorWithCause(field, errors.New("must be one of: "+fe.Param()))
	default:
		return errs.NewValueIsInvalidError(field)
	}
}

// fieldPath drops the request type from the namespace, e.g. "services[0].name".
func fieldPath(fe validator.FieldError) string {
	_, path, found := strings.Cut(fe.Namespace(), ".")
	if !found {
		return fe.Field()
	}
	return path
}

// size reports what min/max compared: rune count for strings, length for lists.
func size(value any) any {
	v := reflect.ValueOf(value)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return 0
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.String:
		return utf8.RuneCountInString(v.String())
	case reflect.Slice, reflect.Array, reflect.Map:
		return v.Len()
	default:
		return value
	}
}

// bindAndValidate decodes the JSON body into req and runs the struct tags.
func bindAndValidate(ctx echo.Context, req any) error {
	if err := ctx.Bind(req); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("request body", err)
	}
	return ctx.Validate(req)
}
