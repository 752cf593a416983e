// Package errors provides the structured error types used across the API.
// All service-layer errors are AppErrors so that handlers can render a
// consistent envelope without leaking internal detail to clients.
package errors

import "net/http"

// AppError is a structured application error carrying a machine-readable
// code, a client-safe message, the HTTP status to respond with, an optional
// field-keyed validation map, and an optional wrapped internal error that is
// logged but never serialized.
type AppError struct {
	Code       string            `json:"code"`
	Message    string            `json:"message"`
	StatusCode int               `json:"-"`
	Fields     map[string]string `json:"-"`
	Internal   error             `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the sentinel's code/message/status that
// wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom client-facing message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
	}
}

// Validation creates a 400 AppError carrying a field-keyed error map, the
// shape frontends use to attach messages to form fields.
func Validation(fields map[string]string) *AppError {
	return &AppError{
		Code:       ErrValidation.Code,
		Message:    ErrValidation.Message,
		StatusCode: ErrValidation.StatusCode,
		Fields:     fields,
	}
}

// Field creates a 400 AppError for a single invalid field.
func Field(name, message string) *AppError {
	return Validation(map[string]string{name: message})
}

// Authentication errors. Invalid credentials is deliberately generic: a
// missing account and a wrong password must be indistinguishable to the
// caller.
var (
	ErrUnauthorized       = &AppError{Code: "UNAUTHORIZED", Message: "Unauthorized", StatusCode: http.StatusUnauthorized}
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Invalid credentials", StatusCode: http.StatusUnauthorized}
)

// General errors. Not-found doubles as the ownership failure: a row owned by
// another user responds exactly like a row that does not exist.
var (
	ErrValidation       = &AppError{Code: "VALIDATION_FAILED", Message: "Validation failed", StatusCode: http.StatusBadRequest}
	ErrInvalidBody      = &AppError{Code: "INVALID_BODY", Message: "Invalid request body", StatusCode: http.StatusBadRequest}
	ErrMethodNotAllowed = &AppError{Code: "METHOD_NOT_ALLOWED", Message: "Method not allowed", StatusCode: http.StatusMethodNotAllowed}
	ErrNotFound         = &AppError{Code: "NOT_FOUND", Message: "Not found", StatusCode: http.StatusNotFound}
	ErrInternalServer   = &AppError{Code: "INTERNAL_ERROR", Message: "Internal Server Error", StatusCode: http.StatusInternalServerError}
)

// Resource errors. Task and category not-found messages match the generic
// not-found wording so an attacker cannot probe for rows owned by others.
var (
	ErrTaskNotFound     = &AppError{Code: "TASK_NOT_FOUND", Message: "Not found", StatusCode: http.StatusNotFound}
	ErrCategoryNotFound = &AppError{Code: "CATEGORY_NOT_FOUND", Message: "Not found", StatusCode: http.StatusNotFound}
	ErrUserNotFound     = &AppError{Code: "USER_NOT_FOUND", Message: "Not found", StatusCode: http.StatusNotFound}
)
