package model

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by operate-by-id operations when no record
// matches. Callers treat it as a no-op rather than a failure.
var ErrNotFound = errors.New("not found")

// ValidationError reports an out-of-range or malformed input value.
// The operation that produced it did not apply; prior state is unchanged.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// Validationf builds a ValidationError with a formatted message.
func Validationf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// FormatError reports a malformed import document.
type FormatError struct {
	Msg string
	Err error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// Formatf builds a FormatError with a formatted message.
func Formatf(format string, args ...any) error {
	return &FormatError{Msg: fmt.Sprintf(format, args...)}
}
