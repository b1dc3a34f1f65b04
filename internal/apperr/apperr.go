// Package apperr defines the error taxonomy shared by services and handlers
// and maps it onto HTTP status codes.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotFound is returned when a referenced id does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized is returned when the admin credential is missing or invalid.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidInput is returned when the sanitizer receives a value that is not text.
	ErrInvalidInput = errors.New("invalid input: value must be a string")
)

// ValidationError reports malformed or out-of-range input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// Validation builds a ValidationError for the given field.
func Validation(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// UnauthorizedError carries the reason a credential was rejected.
// It matches ErrUnauthorized with errors.Is.
type UnauthorizedError struct {
	Reason string
}

func (e *UnauthorizedError) Error() string { return "unauthorized: " + e.Reason }

func (e *UnauthorizedError) Is(target error) bool { return target == ErrUnauthorized }

// PersistenceError wraps a failed storage operation.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string { return e.Op + ": " + e.Err.Error() }

func (e *PersistenceError) Unwrap() error { return e.Err }

// Persistence wraps err as a PersistenceError unless it is nil or already
// a not-found condition, which callers handle separately.
func Persistence(op string, err error) error {
	if err == nil || errors.Is(err, ErrNotFound) {
		return err
	}
	var pe *PersistenceError
	if errors.As(err, &pe) {
		return err
	}
	return &PersistenceError{Op: op, Err: err}
}

// NotificationError wraps a failed e-mail send. It is only ever logged.
type NotificationError struct {
	Kind string
	Err  error
}

func (e *NotificationError) Error() string { return "notify " + e.Kind + ": " + e.Err.Error() }

func (e *NotificationError) Unwrap() error { return e.Err }

// HTTPStatus maps err onto the status code the API answers with.
func HTTPStatus(err error) int {
	var ve *ValidationError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &ve), errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Code returns a short machine-readable error code for err.
func Code(err error) string {
	var ve *ValidationError
	switch {
	case errors.As(err, &ve), errors.Is(err, ErrInvalidInput):
		return "validation_failed"
	case errors.Is(err, ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	default:
		return "internal_error"
	}
}

// PublicMessage returns the text that may be shown to API callers.
// Anything that is not a validation, auth or not-found error collapses to
// fallback so storage details never leak.
func PublicMessage(err error, fallback string) string {
	var ve *ValidationError
	var ue *UnauthorizedError
	switch {
	case errors.As(err, &ve):
		return "Ошибка валидации: " + ve.Message
	case errors.Is(err, ErrInvalidInput):
		return "Ошибка валидации: значение должно быть строкой"
	case errors.As(err, &ue):
		return ue.Reason
	case errors.Is(err, ErrUnauthorized):
		return "Требуется авторизация"
	default:
		return fallback
	}
}
