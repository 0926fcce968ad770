package utils

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidNumber  = errors.New("invalid numeric field")
	ErrNegativeAmount = errors.New("amount must not be negative")
	ErrRequired       = errors.New("field is required")
	ErrAmountTooLarge = errors.New("amount is too large")
)

// InputError identifies the submitted field that could not be used.
type InputError struct {
	Field string
	Value string
	Err   error
}

func (e *InputError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("%s: %v: %q", e.Field, e.Err, e.Value)
}

func (e *InputError) Unwrap() error { return e.Err }

// ExternalServiceError wraps failures of the PDF renderer, OAuth or cloud storage.
type ExternalServiceError struct {
	Service string
	Op      string
	Err     error
}

func (e *ExternalServiceError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Service, e.Op, e.Err)
}

func (e *ExternalServiceError) Unwrap() error { return e.Err }

func external(service, op string, err error) error {
	if err == nil {
		return nil
	}
	return &ExternalServiceError{Service: service, Op: op, Err: err}
}

// IsExternal reports whether err came from an external collaborator.
func IsExternal(err error) bool {
	var ext *ExternalServiceError
	return errors.As(err, &ext)
}
