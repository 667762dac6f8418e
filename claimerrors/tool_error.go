// Package claimerrors provides the structured error vocabulary shared
// across the orchestration runtime: a serializable causal-chain error type
// plus the error kinds from most-local (registry lookup) to most-global
// (unhandled orchestrator failure).
package claimerrors

import (
	"errors"
	"fmt"
)

// ToolError is a structured failure that preserves message and causal
// context while implementing the standard error interface. Errors may be
// nested via Cause to retain diagnostics across specialist delegation hops.
type ToolError struct {
	// Message is the human-readable summary of the failure.
	Message string
	// Cause links to the underlying error, enabling chains usable with
	// errors.Is/errors.As.
	Cause *ToolError
}

// New constructs a ToolError with the given message.
func New(message string) *ToolError {
	if message == "" {
		message = "tool error"
	}
	return &ToolError{Message: message}
}

// NewWithCause constructs a ToolError wrapping an underlying error. The
// cause is converted into a ToolError chain so it survives serialization
// while still supporting errors.Is/errors.As via Unwrap.
func NewWithCause(message string, cause error) *ToolError {
	if message == "" && cause != nil {
		message = cause.Error()
	}
	return &ToolError{
		Message: message,
		Cause:   FromError(cause),
	}
}

// FromError converts an arbitrary error into a ToolError chain.
func FromError(err error) *ToolError {
	if err == nil {
		return nil
	}
	var te *ToolError
	if errors.As(err, &te) {
		return te
	}
	return &ToolError{
		Message: err.Error(),
		Cause:   FromError(errors.Unwrap(err)),
	}
}

// Errorf formats according to a format specifier and returns a ToolError.
func Errorf(format string, args ...any) *ToolError {
	return New(fmt.Sprintf(format, args...))
}

// Error implements the error interface.
func (e *ToolError) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

// Unwrap returns the underlying error to support errors.Is/errors.As.
func (e *ToolError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}
