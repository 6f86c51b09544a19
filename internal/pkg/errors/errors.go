// Package errors provides domain-specific error types for canvaspilot.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is a structured application error with a stable numeric code.
// Every error response on the wire serializes as
// {error_code, error_message, detail}.
type AppError struct {
	// Code is the stable numeric error code (see codes.go for namespacing).
	Code int `json:"error_code"`

	// Message is a short human-readable description of the error class.
	Message string `json:"error_message"`

	// Detail echoes request-specific context, typically the offending id.
	Detail string `json:"detail"`

	// HTTPStatus is the corresponding HTTP status code.
	HTTPStatus int `json:"-"`

	// Err is the wrapped underlying error.
	Err error `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%d: %s (%s): %v", e.Code, e.Message, e.Detail, e.Err)
	}
	return fmt.Sprintf("%d: %s (%s)", e.Code, e.Message, e.Detail)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code int, message, detail string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		Detail:     detail,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an existing error into an AppError.
func Wrap(err error, code int, message, detail string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		Detail:     detail,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// NotFound creates a 404 error.
func NotFound(code int, message, detail string) *AppError {
	return New(code, message, detail, http.StatusNotFound)
}

// BadRequest creates a 400 error.
func BadRequest(code int, message, detail string) *AppError {
	return New(code, message, detail, http.StatusBadRequest)
}

// Unauthorized creates a 401 error.
func Unauthorized(code int, message, detail string) *AppError {
	return New(code, message, detail, http.StatusUnauthorized)
}

// Forbidden creates a 403 error.
func Forbidden(code int, message, detail string) *AppError {
	return New(code, message, detail, http.StatusForbidden)
}

// Conflict creates a 409 error.
func Conflict(code int, message, detail string) *AppError {
	return New(code, message, detail, http.StatusConflict)
}

// Internal creates a 500 error.
func Internal(code int, message, detail string) *AppError {
	return New(code, message, detail, http.StatusInternalServerError)
}

// IsAppError checks if an error is an AppError and returns it.
func IsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
