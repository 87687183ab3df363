// Package apperr carries the two error classes the report engine surfaces:
// validation problems the user can correct before retrying, and generation
// failures that collapse to a single generic notice while the cause is
// logged.
package apperr

import (
	"errors"
	"fmt"
)

// ValidationError is a user-correctable input problem. It is detected
// synchronously, before any asynchronous work starts, and never mutates
// state.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func Validation(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// GenerationError wraps any failure during artifact assembly or export
// delegation. Callers see a uniform message; the cause stays attached for
// logging only.
type GenerationError struct {
	Cause error
}

func (e *GenerationError) Error() string { return "failed to generate report" }

func (e *GenerationError) Unwrap() error { return e.Cause }

func Generation(cause error) error {
	return &GenerationError{Cause: cause}
}

func IsGeneration(err error) bool {
	var ge *GenerationError
	return errors.As(err, &ge)
}
