package dispatcher

import "errors"

// User-facing messages for local precondition and payload failures
var (
	ErrNotLoggedIn       = errors.New("Please log in first.")
	ErrNoProfileFields   = errors.New("Please provide at least a new username or new password.")
	ErrTokenNotRetrieved = errors.New("Failed to retrieve JWT token.")
)

// Failure is a command that reached the service (or tried to) and failed.
// Its message is "<Action> failed: <cause>", the cause being the raw
// response body for remote failures.
type Failure struct {
	Action string
	Err    error
}

// Error implements the error interface
func (f *Failure) Error() string {
	return f.Action + " failed: " + f.Err.Error()
}

// Unwrap returns the cause
func (f *Failure) Unwrap() error {
	return f.Err
}

func fail(action string, err error) error {
	return &Failure{Action: action, Err: err}
}
