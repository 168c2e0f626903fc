package client

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/apimgr/weather-cli/src/api"
	"github.com/apimgr/weather-cli/src/dispatcher"
)

func TestExitCodes(t *testing.T) {
	tests := []struct {
		name     string
		expected int
		actual   int
	}{
		{"ExitSuccess", 0, ExitSuccess},
		{"ExitGeneralError", 1, ExitGeneralError},
		{"ExitConfigError", 2, ExitConfigError},
		{"ExitConnError", 3, ExitConnError},
		{"ExitAuthError", 4, ExitAuthError},
		{"ExitNotFound", 5, ExitNotFound},
		{"ExitUsageError", 64, ExitUsageError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.actual != tt.expected {
				t.Errorf("Expected %s to be %d, got %d", tt.name, tt.expected, tt.actual)
			}
		})
	}
}

func TestExitErrorError(t *testing.T) {
	err := &ExitError{
		Message: "test error",
		Code:    ExitGeneralError,
	}

	if err.Error() != "test error" {
		t.Errorf("Expected error message 'test error', got '%s'", err.Error())
	}
}

func TestNewExitError(t *testing.T) {
	err := NewExitError("custom error", 99)

	if err.Message != "custom error" {
		t.Errorf("Expected message 'custom error', got '%s'", err.Message)
	}
	if err.Code != 99 {
		t.Errorf("Expected code 99, got %d", err.Code)
	}
}

func TestNewConfigError(t *testing.T) {
	err := NewConfigError("config not found")

	if err.Code != ExitConfigError {
		t.Errorf("Expected exit code %d, got %d", ExitConfigError, err.Code)
	}
}

func TestNewUsageError(t *testing.T) {
	err := NewUsageError("missing argument")

	if err.Code != ExitUsageError {
		t.Errorf("Expected exit code %d, got %d", ExitUsageError, err.Code)
	}
}

func TestAsExitError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{"not logged in", dispatcher.ErrNotLoggedIn, ExitAuthError, "Please log in first."},
		{"no profile fields", dispatcher.ErrNoProfileFields, ExitUsageError, "Please provide at least a new username or new password."},
		{"token not retrieved", dispatcher.ErrTokenNotRetrieved, ExitGeneralError, "Failed to retrieve JWT token."},
		{
			"remote failure",
			&dispatcher.Failure{Action: "Registration", Err: &api.HTTPError{StatusCode: http.StatusBadRequest, Body: "Username already exists"}},
			ExitGeneralError,
			"Registration failed: Username already exists",
		},
		{
			"unauthorized",
			&dispatcher.Failure{Action: "History request", Err: &api.HTTPError{StatusCode: http.StatusUnauthorized, Body: "Invalid JWT Token"}},
			ExitAuthError,
			"History request failed: Invalid JWT Token",
		},
		{
			"not found",
			&dispatcher.Failure{Action: "Delete request", Err: &api.HTTPError{StatusCode: http.StatusNotFound, Body: "Search entry not found"}},
			ExitNotFound,
			"Delete request failed: Search entry not found",
		},
		{
			"connection",
			&dispatcher.Failure{Action: "Weather request", Err: &api.ConnectionError{URL: "http://x", Err: errors.New("refused")}},
			ExitConnError,
			"Weather request failed: failed to connect to http://x: refused",
		},
		{"usage passthrough", fmt.Errorf("wrapped: %w", NewUsageError("bad")), ExitUsageError, "bad"},
		{"plain", errors.New("boom"), ExitGeneralError, "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exitErr := AsExitError(tt.err)
			if exitErr.Code != tt.code {
				t.Errorf("Expected code %d, got %d", tt.code, exitErr.Code)
			}
			if exitErr.Message != tt.message {
				t.Errorf("Expected message %q, got %q", tt.message, exitErr.Message)
			}
		})
	}

	if AsExitError(nil) != nil {
		t.Error("Expected nil for nil error")
	}
}
