package cli

import "fmt"

// Exit codes support programmatic composition and CI integration.
const (
	// ExitSuccess indicates no errors were found (warnings and infos allowed).
	ExitSuccess = 0
	// ExitIssuesFound indicates error-level issues were found.
	ExitIssuesFound = 1
	// ExitFatal indicates fatal structural issues that block generation.
	ExitFatal = 2
	// ExitInvalidArguments indicates bad arguments or an unreadable input.
	ExitInvalidArguments = 3
)

// exitError carries an exit code through cobra's error return.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit code %d", e.code)
}

// NewExitError creates an error carrying the given exit code.
func NewExitError(code int) error {
	return &exitError{code: code}
}

// ExitCode extracts the exit code from an error. A nil error is success;
// any other error maps to ExitInvalidArguments.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	if ee, ok := err.(*exitError); ok {
		return ee.code
	}
	return ExitInvalidArguments
}
