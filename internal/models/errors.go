package models

import (
	"errors"
	"fmt"
)

// ErrAuthRequired aborts an action before any network call when no
// verified identity is present. Surfaced as a prompt to sign in.
var ErrAuthRequired = errors.New("sign in required")

// ValidationError is a client-side rejection (empty, too long, flagged
// content). Once detected the action never reaches the network.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// NewValidationError builds a ValidationError from a verdict reason.
func NewValidationError(reason string) *ValidationError {
	return &ValidationError{Reason: reason}
}

// IsValidationError reports whether err is a client-side validation failure.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// NetworkError is a request failure or non-success backend status. The
// comment store is left untouched when one occurs; the user re-triggers
// the action manually, there are no automatic retries.
type NetworkError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *NetworkError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: unexpected status %d", e.Op, e.StatusCode)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// IsNetworkError reports whether err is a transport or backend failure.
func IsNetworkError(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}
