package api

import (
	"errors"
	"fmt"
)

// ErrorKind represents the category of an adapter error.
type ErrorKind string

const (
	// ErrorKindAuthentication marks a structurally invalid credential
	// (missing key or secret). Raised before any I/O.
	ErrorKindAuthentication ErrorKind = "authentication"
	// ErrorKindAuthenticationTransport marks a well-formed credential whose
	// token derivation or client construction failed.
	ErrorKindAuthenticationTransport ErrorKind = "authentication_transport"
	// ErrorKindNotAuthenticated marks a completion call on a handler that
	// never completed authentication.
	ErrorKindNotAuthenticated ErrorKind = "not_authenticated"
	// ErrorKindCompletionRequest marks a failure while submitting a request
	// or consuming its response stream. Fatal to that call only.
	ErrorKindCompletionRequest ErrorKind = "completion_request"
)

// Error is the structured error type shared by all strom packages.
type Error struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewAuthenticationError creates an Error for a malformed credential.
func NewAuthenticationError(message string) *Error {
	return &Error{Kind: ErrorKindAuthentication, Message: message}
}

// NewAuthenticationTransportError creates an Error for a session derivation
// that failed after credential validation.
func NewAuthenticationTransportError(message string, cause error) *Error {
	return &Error{Kind: ErrorKindAuthenticationTransport, Message: message, Cause: cause}
}

// NewNotAuthenticatedError creates an Error for completion calls on a
// handler without a session.
func NewNotAuthenticatedError() *Error {
	return &Error{Kind: ErrorKindNotAuthenticated, Message: "handler is not authenticated"}
}

// NewCompletionError creates an Error for a failed completion request or
// stream, wrapping the underlying cause.
func NewCompletionError(message string, cause error) *Error {
	return &Error{Kind: ErrorKindCompletionRequest, Message: message, Cause: cause}
}

// IsKind reports whether err is or wraps an *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind == kind
	}
	return false
}
