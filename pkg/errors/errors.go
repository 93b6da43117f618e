package errors

import (
	stderrors "errors"
	"fmt"
)

// BackendErrorKind classifies how a call to the coffee backend failed
type BackendErrorKind string

const (
	// KindTransport means the request never reached the server or no response came back
	KindTransport BackendErrorKind = "transport"
	// KindStatus means the server answered with a non-2xx status
	KindStatus BackendErrorKind = "status"
	// KindDecode means the response body did not have the expected shape
	KindDecode BackendErrorKind = "decode"
)

// ErrBackend is returned for any failed call to the coffee backend.
// Callers treat every kind the same way; Kind is kept for logging.
type ErrBackend struct {
	Op         string
	Kind       BackendErrorKind
	StatusCode int
	Err        error
}

func (e *ErrBackend) Error() string {
	if e.Kind == KindStatus {
		return fmt.Sprintf("backend %s failed: status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("backend %s failed (%s): %v", e.Op, e.Kind, e.Err)
}

func (e *ErrBackend) Unwrap() error {
	return e.Err
}

// ErrNotFound is returned when a resource is missing
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrUnauthorized is returned when credentials are missing or wrong
type ErrUnauthorized struct {
	Message string
}

func (e *ErrUnauthorized) Error() string {
	return e.Message
}

// ErrInvalidInput is returned when a request fails validation
type ErrInvalidInput struct {
	Field   string
	Message string
}

func (e *ErrInvalidInput) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func IsNotFound(err error) bool {
	var target *ErrNotFound
	return stderrors.As(err, &target)
}

func IsUnauthorized(err error) bool {
	var target *ErrUnauthorized
	return stderrors.As(err, &target)
}

func IsInvalidInput(err error) bool {
	var target *ErrInvalidInput
	return stderrors.As(err, &target)
}

// AsBackend returns the backend error wrapped in err, if any
func AsBackend(err error) (*ErrBackend, bool) {
	var target *ErrBackend
	if stderrors.As(err, &target) {
		return target, true
	}
	return nil, false
}

func IsBackend(err error) bool {
	_, ok := AsBackend(err)
	return ok
}
