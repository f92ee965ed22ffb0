package session

import (
	"errors"
	"fmt"
)

var (
	// ErrNotAuthenticated is returned by UpdateUser when there is no user to
	// update. The state is left untouched.
	ErrNotAuthenticated = errors.New("no authenticated user")

	// ErrSuperseded is wrapped in an [AuthError] when a later Login,
	// Register or Logout was invoked before this exchange resolved. The
	// exchange's result is discarded.
	ErrSuperseded = errors.New("superseded by a later session operation")
)

// ValidationError reports input rejected before, or by, the backend. It is
// always recoverable by re-prompting the user.
type ValidationError struct {
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Reason
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// AuthError reports a rejected or failed authentication exchange. Reason is
// fit for display.
type AuthError struct {
	Reason string
	Err    error
}

func (e *AuthError) Error() string {
	return "authentication failed: " + e.Reason
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// PersistenceError reports a failed snapshot write. The in-memory
// transition named by Op has already been applied and stays applied.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persist session after %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
