package errors

import (
	"errors"
	"net/http"
)

// Kind classifies a failure so the transport layer can pick a status code.
type Kind int

const (
	// KindValidation covers missing or malformed request fields.
	KindValidation Kind = iota
	// KindUnauthenticated covers missing, invalid or expired credentials.
	KindUnauthenticated
	// KindForbidden covers role, department or ownership check failures.
	KindForbidden
	// KindNotFound covers absent records.
	KindNotFound
	// KindConflict covers natural-key uniqueness violations.
	KindConflict
	// KindUnexpected covers store or internal failures.
	KindUnexpected
)

// Error is a domain failure carrying a user-facing message.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Validation builds a 400-class error.
func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// Unauthenticated builds a 401-class error.
func Unauthenticated(message string) *Error {
	return &Error{Kind: KindUnauthenticated, Message: message}
}

// Forbidden builds a 403-class error.
func Forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

// NotFound builds a 404-class error.
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// Conflict builds a 409-class error.
func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// Unexpected wraps an internal failure. The wrapped error is never rendered
// to the client.
func Unexpected(err error) *Error {
	return &Error{Kind: KindUnexpected, Message: "Internal server error", Err: err}
}

// HTTPStatus maps a Kind to its status code.
func HTTPStatus(k Kind) int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// AsError extracts a *Error from err, or nil if it is not one.
func AsError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return nil
}
