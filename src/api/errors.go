package api

import (
	"errors"
	"net/http"
)

// ErrTokenMissing is returned when a login succeeds but carries no token
var ErrTokenMissing = errors.New("login response carried no token")

// HTTPError is a non-2xx response. The body is kept verbatim; the service
// sends plain text errors and the client does not interpret them.
type HTTPError struct {
	StatusCode int
	Body       string
}

// Error returns the response body, or the status text when the body is empty
func (e *HTTPError) Error() string {
	if e.Body != "" {
		return e.Body
	}
	if text := http.StatusText(e.StatusCode); text != "" {
		return text
	}
	return "unexpected response"
}

// IsStatus reports whether err is an HTTPError with the given status code
func IsStatus(err error, code int) bool {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == code
	}
	return false
}

// ConnectionError is a transport failure: the request never got a response
type ConnectionError struct {
	URL string
	Err error
}

// Error implements the error interface
func (e *ConnectionError) Error() string {
	return "failed to connect to " + e.URL + ": " + e.Err.Error()
}

// Unwrap returns the underlying transport error
func (e *ConnectionError) Unwrap() error {
	return e.Err
}
