package client

import (
	"errors"
	"net/http"

	"github.com/apimgr/weather-cli/src/api"
	"github.com/apimgr/weather-cli/src/dispatcher"
)

// Process exit codes
const (
	ExitSuccess      = 0
	ExitGeneralError = 1
	ExitConfigError  = 2
	ExitConnError    = 3
	ExitAuthError    = 4
	ExitNotFound     = 5
	ExitUsageError   = 64
)

// ExitError represents an error with a specific exit code
type ExitError struct {
	Message string
	Code    int
	Err     error
}

// Error implements the error interface
func (e *ExitError) Error() string {
	return e.Message
}

// Unwrap returns the underlying error, if any
func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError
func NewExitError(message string, code int) *ExitError {
	return &ExitError{Message: message, Code: code}
}

// NewConfigError creates a config error (exit code 2)
func NewConfigError(message string) *ExitError {
	return &ExitError{Message: message, Code: ExitConfigError}
}

// NewUsageError creates a usage error (exit code 64)
func NewUsageError(message string) *ExitError {
	return &ExitError{Message: message, Code: ExitUsageError}
}

// AsExitError classifies err into an exit code. The message is kept as is:
// command failures already read the way the user should see them.
func AsExitError(err error) *ExitError {
	if err == nil {
		return nil
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}

	code := ExitGeneralError
	var connErr *api.ConnectionError
	switch {
	case errors.Is(err, dispatcher.ErrNotLoggedIn):
		code = ExitAuthError
	case errors.Is(err, dispatcher.ErrNoProfileFields):
		code = ExitUsageError
	case errors.As(err, &connErr):
		code = ExitConnError
	case api.IsStatus(err, http.StatusUnauthorized), api.IsStatus(err, http.StatusForbidden):
		code = ExitAuthError
	case api.IsStatus(err, http.StatusNotFound):
		code = ExitNotFound
	}

	return &ExitError{Message: err.Error(), Code: code, Err: err}
}
