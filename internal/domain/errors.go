package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrValidation      = errors.New("validation error")
	ErrUnsupportedFile = errors.New("unsupported file")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
// It is the input-format class of errors: the whole request is rejected.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Message returns the human-readable message of the first field error,
// suitable for a client-facing response.
func (e *ValidationError) Message() string {
	if len(e.Errors) == 0 {
		return "invalid input"
	}
	return e.Errors[0].Message
}

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// UnsupportedFileError reports an upload whose name does not carry an
// accepted extension.
type UnsupportedFileError struct {
	Filename string
	Allowed  string
}

func (e *UnsupportedFileError) Error() string {
	return fmt.Sprintf("Only %s files are allowed", e.Allowed)
}

func (e *UnsupportedFileError) Unwrap() error { return ErrUnsupportedFile }
