// Package validation provides the input error taxonomy and common
// validation utilities.
package validation

import (
	"errors"
	"fmt"
)

// Input validation errors. They are detected before a projection runs and
// abort it without producing a partial result.
var (
	// ErrMalformedDocument is returned when a parameter document cannot be decoded.
	ErrMalformedDocument = errors.New("malformed parameter document")

	// ErrInvalidDate is returned for date strings not in DD/MM/YYYY form.
	ErrInvalidDate = errors.New("invalid date")

	// ErrEndBeforeStart is returned when the fund end date precedes the known NAV date.
	ErrEndBeforeStart = errors.New("fund end date before known NAV date")

	// ErrInvalidAmount is returned for monetary fields that are not numeric.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrNonPositiveShareCount is returned when the share count is zero or negative.
	ErrNonPositiveShareCount = errors.New("share count must be positive")
)

// ErrDivisionByZero is raised by the projection engine itself when NAV per
// share cannot be derived. It is an arithmetic failure, not an input error.
var ErrDivisionByZero = errors.New("division by zero share count")

// FieldError identifies the offending field of an input validation failure.
type FieldError struct {
	Field string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("%s: %v (got %q)", e.Field, e.Err, e.Value)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// NewFieldError builds a FieldError for the given field.
func NewFieldError(field, value string, err error) *FieldError {
	return &FieldError{Field: field, Value: value, Err: err}
}

// IsInputError returns true if the error stems from invalid caller input.
func IsInputError(err error) bool {
	return errors.Is(err, ErrMalformedDocument) ||
		errors.Is(err, ErrInvalidDate) ||
		errors.Is(err, ErrEndBeforeStart) ||
		errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrNonPositiveShareCount)
}

// IsArithmeticError returns true if the projection failed on an undefined
// arithmetic operation.
func IsArithmeticError(err error) bool {
	return errors.Is(err, ErrDivisionByZero)
}

// Fields lists the field names carried by every FieldError within err,
// including errors combined with errors.Join.
func Fields(err error) []string {
	var fields []string
	var walk func(error)
	walk = func(e error) {
		if e == nil {
			return
		}
		if fe, ok := e.(*FieldError); ok {
			fields = append(fields, fe.Field)
			return
		}
		switch x := e.(type) {
		case interface{ Unwrap() []error }:
			for _, inner := range x.Unwrap() {
				walk(inner)
			}
		case interface{ Unwrap() error }:
			walk(x.Unwrap())
		}
	}
	walk(err)
	return fields
}
