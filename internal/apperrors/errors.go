package apperrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for the core business operations. Handlers map these to
// HTTP status codes with errors.Is; everything else is treated as an opaque
// persistence/internal failure and propagated unchanged.
var (
	ErrNotFound               = errors.New("not found")
	ErrInvalidInput           = errors.New("invalid input")
	ErrInvalidStateTransition = errors.New("invalid state transition")
)

// NotFoundf wraps ErrNotFound with a formatted message
func NotFoundf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrNotFound}, args...)...)
}

// InvalidInputf wraps ErrInvalidInput with a formatted message
func InvalidInputf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrInvalidInput}, args...)...)
}

// InvalidTransitionf wraps ErrInvalidStateTransition with a formatted message
func InvalidTransitionf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrInvalidStateTransition}, args...)...)
}
