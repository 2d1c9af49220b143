package cli

import (
	"errors"
	"fmt"
)

// Exit codes for the flightlog CLI
const (
	// ExitSuccess indicates the command completed
	ExitSuccess = 0

	// ExitFailure covers usage, validation, configuration and filesystem errors
	ExitFailure = 1
)

// ExitError carries an explicit exit code for a failure that was already
// reported to the user.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// NewExitError creates an ExitError with the given code.
func NewExitError(code int) error {
	return &ExitError{Code: code}
}

// ExitCode returns the process exit code for err.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}
