// Package apperr holds the error taxonomy shared by services and controllers.
package apperr

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrConflict        = errors.New("conflict")
	ErrUnauthorized    = errors.New("unauthorized")
)

// Error carries a taxonomy kind plus the offending field, if any.
type Error struct {
	Kind    error
	Field   string
	Message string
}

func (e *Error) Error() string {
	if e.Field != "" {
		return e.Field + ": " + e.Message
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func NotFound(message string) error {
	return &Error{Kind: ErrNotFound, Message: message}
}

func InvalidArgument(field, message string) error {
	return &Error{Kind: ErrInvalidArgument, Field: field, Message: message}
}

func Conflict(field, message string) error {
	return &Error{Kind: ErrConflict, Field: field, Message: message}
}

func Unauthorized(message string) error {
	return &Error{Kind: ErrUnauthorized, Message: message}
}

// StatusCode maps an error onto the HTTP status the API reports for it.
// Conflicts are client errors on the field that collided, so they share 400.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidArgument), errors.Is(err, ErrConflict):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the client-facing text for err. Internal failures are not
// echoed back.
func Message(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "Internal server error"
}

// FieldOf returns the field an error is attached to, or "".
func FieldOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Field
	}
	return ""
}
