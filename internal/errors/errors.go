// Package errors provides structured error handling for the flightlog CLI.
// Every failure the operator can see is a CLIError with a category and a short
// list of remediation steps.
package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCategory represents the type of error that occurred.
type ErrorCategory int

const (
	// Usage errors are caused by missing command arguments.
	Usage ErrorCategory = iota
	// Validation errors are caused by a disallowed change type or an empty field.
	Validation
	// Configuration errors are caused by invalid config files or values.
	Configuration
	// Filesystem errors occur while creating or writing the changelog.
	Filesystem
)

// String returns a human-readable name for the error category.
func (c ErrorCategory) String() string {
	switch c {
	case Usage:
		return "Usage Error"
	case Validation:
		return "Validation Error"
	case Configuration:
		return "Configuration Error"
	case Filesystem:
		return "Filesystem Error"
	default:
		return "Error"
	}
}

// CLIError is a structured error with category and remediation guidance.
type CLIError struct {
	// Category is the type of error (Usage, Validation, etc.)
	Category ErrorCategory
	// Message is a human-readable description of what went wrong.
	Message string
	// Remediation is a list of actionable steps to resolve the error.
	Remediation []string
	// Usage shows the correct command syntax (optional).
	Usage string
	// Cause is the underlying error, if any.
	Cause error
}

// Error implements the error interface.
func (e *CLIError) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause so errors.Is works through a CLIError.
func (e *CLIError) Unwrap() error {
	return e.Cause
}

// New creates a CLIError of the given category.
func New(category ErrorCategory, message string, remediation ...string) *CLIError {
	return &CLIError{
		Category:    category,
		Message:     message,
		Remediation: remediation,
	}
}

// NewUsageError creates a usage error that includes correct usage syntax.
func NewUsageError(message, usage string, remediation ...string) *CLIError {
	return &CLIError{
		Category:    Usage,
		Message:     message,
		Usage:       usage,
		Remediation: remediation,
	}
}

// Wrap wraps an existing error with a CLIError, preserving the original message.
func Wrap(err error, category ErrorCategory, remediation ...string) *CLIError {
	if err == nil {
		return nil
	}
	return &CLIError{
		Category:    category,
		Message:     err.Error(),
		Remediation: remediation,
		Cause:       err,
	}
}

// WrapWithMessage wraps an error with a custom message and category.
func WrapWithMessage(err error, category ErrorCategory, message string, remediation ...string) *CLIError {
	if err == nil {
		return nil
	}
	return &CLIError{
		Category:    category,
		Message:     fmt.Sprintf("%s: %v", message, err),
		Remediation: remediation,
		Cause:       err,
	}
}

// AsCLIError finds the first CLIError in err's chain.
// Returns nil if there is none.
func AsCLIError(err error) *CLIError {
	var cliErr *CLIError
	if stderrors.As(err, &cliErr) {
		return cliErr
	}
	return nil
}
