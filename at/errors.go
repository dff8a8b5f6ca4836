package at

import (
	"errors"
	"fmt"
)

var (
	// ErrBufferFull is returned when a response would exceed the capacity
	// of its Buffer.
	ErrBufferFull = errors.New("response buffer full")

	// ErrFieldNotFound is returned when a response does not contain the
	// structured line a parser looks for.
	ErrFieldNotFound = errors.New("field not found")

	// ErrMalformedField is returned when a structured line is present but
	// its value is outside the expected domain.
	ErrMalformedField = errors.New("malformed field")
)

// FieldError describes a structured field whose value could not be used.
type FieldError struct {
	Field string
	Value string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Field, e.Value, ErrMalformedField)
}

func (e *FieldError) Unwrap() error {
	return ErrMalformedField
}
