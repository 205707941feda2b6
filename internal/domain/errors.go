// Package domain provides shared domain-level sentinel errors.
package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates the requested entity does not exist.
var ErrNotFound = errors.New("not found")

// ErrValidation indicates a request or task input failed validation.
var ErrValidation = errors.New("validation failed")

// ErrUpstream indicates the mapping provider reported a failure.
var ErrUpstream = errors.New("upstream error")

// Validationf wraps ErrValidation with a formatted message.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// Upstreamf wraps ErrUpstream with a formatted message.
func Upstreamf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrUpstream, fmt.Sprintf(format, args...))
}
