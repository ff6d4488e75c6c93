package types

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	goValidator "github.com/go-playground/validator/v10"
)

var (
	validatorOnce sync.Once
	validate      *goValidator.Validate
)

// enum is implemented by every enumeration in this package.
type enum interface {
	IsValid() bool
}

// Validator returns the shared validator with the chart-specific tags registered:
// "chartcolor" accepts an empty string or a valid color and "lwcenum" checks IsValid.
// Field names follow the json tag, falling back to the lowerCamel Go name.
func Validator() *goValidator.Validate {
	validatorOnce.Do(func() {
		validate = goValidator.New()
		validate.RegisterTagNameFunc(fieldName)
		_ = validate.RegisterValidation("chartcolor", func(fl goValidator.FieldLevel) bool {
			s := fl.Field().String()
			return s == "" || IsValidColor(s)
		})
		_ = validate.RegisterValidation("lwcenum", func(fl goValidator.FieldLevel) bool {
			e, ok := fl.Field().Interface().(enum)
			return ok && e.IsValid()
		})
	})
	return validate
}

func fieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name != "" && name != "-" {
		return name
	}
	r, size := utf8.DecodeRuneInString(f.Name)
	return string(unicode.ToLower(r)) + f.Name[size:]
}

// Validate runs struct tag validation and reports the first failure as a *ValidationError.
func Validate(v any) error {
	err := Validator().Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs goValidator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	fe := fieldErrs[0]
	field := fe.Namespace()
	if _, rest, ok := strings.Cut(field, "."); ok {
		field = rest
	}
	switch fe.Tag() {
	case "chartcolor":
		return ColorError(field, fmt.Sprint(fe.Value()))
	case "required":
		return RequiredError(field)
	case "lwcenum":
		return NewValidationError(field, fe.Value(), "unknown value")
	}
	reason := "failed " + fe.Tag()
	if fe.Param() != "" {
		reason += "=" + fe.Param()
	}
	return NewValidationError(field, fe.Value(), reason)
}

// ValidateAt is Validate with every reported field prefixed by prefix.
func ValidateAt(prefix string, v any) error {
	err := Validate(v)
	var ve *ValidationError
	if prefix == "" || !errors.As(err, &ve) {
		return err
	}
	ve.Field = prefix + "." + ve.Field
	return ve
}

// ValidateVar checks a single value against tag, reporting failures under field.
func ValidateVar(field string, v any, tag string) error {
	if err := Validator().Var(v, tag); err != nil {
		return NewValidationError(field, v, "failed "+tag)
	}
	return nil
}
