// Package apperr defines the error taxonomy shared by every resource
// operation: validation (400), authentication (401), authorization (403),
// not-found (404) and internal (500) failures, plus the predicates the
// controllers repeat.
package apperr

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
)

// Error is a typed operation failure carrying the HTTP status it maps to.
// The handler layer is the only place that translates errors to responses;
// anything that is not an *Error is reported as an internal error.
type Error struct {
	Status  int
	Message string
	err     error
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.err
}

// Validation reports malformed or missing input.
func Validation(msg string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: msg}
}

// NotFound reports an absent referenced entity.
func NotFound(resource string) *Error {
	return &Error{Status: http.StatusNotFound, Message: resource + " not found"}
}

// Unauthenticated reports a missing or invalid principal.
func Unauthenticated(msg string) *Error {
	return &Error{Status: http.StatusUnauthorized, Message: msg}
}

// Authorization reports an ownership violation.
func Authorization(msg string) *Error {
	return &Error{Status: http.StatusForbidden, Message: msg}
}

// Internal reports an unexpected downstream failure. The wrapped cause is
// logged, never exposed to clients.
func Internal(msg string, err error) *Error {
	return &Error{Status: http.StatusInternalServerError, Message: msg, err: err}
}

// From extracts the typed error, or wraps err as internal.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal("an unexpected error occurred", err)
}

// ParseID validates that raw is a well-formed identifier.
func ParseID(raw, field string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, Validation(field + " is not a valid id")
	}
	return id, nil
}

// RequireText validates that a required text field is present.
func RequireText(value, field string) error {
	if value == "" {
		return Validation(field + " is required")
	}
	return nil
}
