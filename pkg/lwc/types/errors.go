package types

import (
	"errors"
	"fmt"
)

var (
	ErrValidation    = errors.New("validation error")
	ErrInvalidTime   = errors.New("invalid time value")
	ErrInvalidColor  = errors.New("invalid color")
	ErrRequiredField = errors.New("required field missing")
	ErrNotFound      = errors.New("not found")
)

// ValidationError describes a rejected field. It matches ErrValidation with errors.Is,
// and also the more specific sentinel it was built from, if any.
type ValidationError struct {
	Field  string
	Value  any
	Reason string
	kind   error
}

func NewValidationError(field string, value any, reason string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Reason: reason}
}

func (e *ValidationError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("%s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("%s: %s (got %v)", e.Field, e.Reason, e.Value)
}

func (e *ValidationError) Is(target error) bool {
	if target == ErrValidation {
		return true
	}
	return e.kind != nil && target == e.kind
}

func (e *ValidationError) Unwrap() error { return e.kind }

func RequiredError(field string) error {
	return &ValidationError{Field: field, Reason: "is required", kind: ErrRequiredField}
}

func ColorError(field, value string) error {
	return &ValidationError{Field: field, Value: value, Reason: "is not a valid color", kind: ErrInvalidColor}
}

func TimeError(field string, value any) error {
	return &ValidationError{Field: field, Value: value, Reason: "cannot be converted to a UNIX timestamp", kind: ErrInvalidTime}
}
