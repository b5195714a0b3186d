// Package exitcode maps client errors to stable process exit codes so shell
// scripts can branch on the failure kind.
package exitcode

import (
	"context"
	"errors"
	"os"

	"github.com/colegioapp/colegio/internal/api"
)

// Exit codes for consistent error handling across the CLI
const (
	// Success indicates successful execution
	Success = 0

	// GeneralError indicates a general error condition
	GeneralError = 1

	// UsageError indicates invalid command usage (bad flags, missing args, etc.)
	UsageError = 2

	// AuthError indicates an authentication or authorization failure
	AuthError = 3

	// NetworkError indicates a network connectivity issue
	NetworkError = 4

	// ValidationError indicates the backend rejected the request body
	ValidationError = 5

	// ServerError indicates the backend failed with a 5xx
	ServerError = 6

	// Interrupted indicates the user cancelled the operation
	Interrupted = 130
)

// Exit terminates the program with the given exit code
func Exit(code int) {
	os.Exit(code)
}

// ExitWithError exits with an appropriate code based on error type
func ExitWithError(err error) {
	Exit(DetermineExitCode(err))
}

// DetermineExitCode analyzes an error and returns the appropriate exit code
func DetermineExitCode(err error) int {
	if err == nil {
		return Success
	}

	if errors.Is(err, context.Canceled) {
		return Interrupted
	}

	var authErr *api.AuthError
	if errors.As(err, &authErr) {
		return AuthError
	}

	var netErr *api.NetworkError
	if errors.As(err, &netErr) {
		return NetworkError
	}

	var valErr *api.ValidationError
	if errors.As(err, &valErr) {
		return ValidationError
	}

	var srvErr *api.ServerError
	if errors.As(err, &srvErr) {
		return ServerError
	}

	return GeneralError
}
