package apperror

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by the repository layer wraps one of these.
var (
	ErrNotFound   = errors.New("resource not found")
	ErrBadRequest = errors.New("bad request")
	ErrConflict   = errors.New("conflict")
	// ErrPassthrough marks caller input that reached the storage layer unvalidated.
	// It is reported as a server error.
	ErrPassthrough = errors.New("unvalidated passthrough")
)

// Error carries a kind, a client facing message and an optional cause.
type Error struct {
	Kind    error
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes both the kind and the cause to errors.Is / errors.As.
func (e *Error) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

// NotFound builds the error for a missing entity, e.g. NotFound("Patient") -> "Patient not found".
func NotFound(kind string) error {
	return &Error{Kind: ErrNotFound, Message: kind + " not found"}
}

func BadRequest(message string, cause error) error {
	return &Error{Kind: ErrBadRequest, Message: message, Err: cause}
}

func Conflict(message string, cause error) error {
	return &Error{Kind: ErrConflict, Message: message, Err: cause}
}

func Passthrough(message string, cause error) error {
	return &Error{Kind: ErrPassthrough, Message: message, Err: cause}
}

// Message returns the client facing message of err, or fallback when err carries none.
func Message(err error, fallback string) string {
	var appErr *Error
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return fallback
}
