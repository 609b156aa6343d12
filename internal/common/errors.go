// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Registry errors.
	ErrUnknownCategory = errors.New("unknown tariff category")
	ErrUnknownGroup    = errors.New("unknown tariff group")
	ErrInvalidRule     = errors.New("invalid match rule")

	// Demand errors.
	ErrInvalidDemand = errors.New("invalid demand record")

	// Evaluation errors.
	ErrShapeMismatch       = errors.New("shape mismatch")
	ErrUnrecognizedBoolean = errors.New("unrecognized boolean token")

	// Database errors.
	ErrNotFound = errors.New("not found")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// IsLookupError reports whether err comes from a failed category or group lookup.
func IsLookupError(err error) bool {
	return errors.Is(err, ErrUnknownCategory) || errors.Is(err, ErrUnknownGroup)
}
