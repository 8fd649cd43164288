// Package errors defines the error values the store API renders into its envelope.
//
// Services return *AppError for anything a client should see. Everything else is reported
// as INTERNAL_SERVER_ERROR with the cause kept for the logs only.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is a client-facing failure. Code and Message go on the wire; StatusCode and
// Internal stay on the server.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

func (e *AppError) Error() string {
	switch {
	case e == nil:
		return "<nil>"
	case e.Internal != nil:
		return fmt.Sprintf("%s: %v", e.Message, e.Internal)
	default:
		return e.Message
	}
}

func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Internal
}

// Is matches on code and status, so a sentinel still matches after WithInternal or a
// custom message.
func (e *AppError) Is(target error) bool {
	var other *AppError
	if e == nil || !errors.As(target, &other) || other == nil {
		return false
	}
	return e.Code == other.Code && e.StatusCode == other.StatusCode
}

// WithInternal attaches a cause to a copy; e itself is left untouched.
func (e *AppError) WithInternal(err error) *AppError {
	if e == nil {
		return nil
	}
	out := *e
	out.Internal = err
	return &out
}

// withMessage keeps e's code and status under a request-specific message.
func (e *AppError) withMessage(message string) *AppError {
	out := *e
	out.Message = message
	return &out
}

var (
	ErrNotFound          = New("NOT_FOUND", "Resource not found", http.StatusNotFound)
	ErrBadRequest        = New("BAD_REQUEST", "Invalid request", http.StatusBadRequest)
	ErrConflict          = New("CONFLICT", "Resource conflict", http.StatusConflict)
	ErrReferenceNotFound = New("REFERENCE_NOT_FOUND", "Referenced resource does not exist", http.StatusUnprocessableEntity)
	ErrInternalServer    = New("INTERNAL_SERVER_ERROR", "Internal server error", http.StatusInternalServerError)
)

func New(code, message string, statusCode int) *AppError {
	return &AppError{Code: code, Message: message, StatusCode: statusCode}
}

// FromError returns err's AppError if it carries one, else ErrInternalServer wrapping err.
func FromError(err error) *AppError {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return ErrInternalServer.WithInternal(err)
}

// NewBadRequest is a BAD_REQUEST naming the offending field or value.
func NewBadRequest(message string) *AppError {
	return ErrBadRequest.withMessage(message)
}

// NewReferenceError reports a category or tag id in a payload that does not exist.
func NewReferenceError(message string) *AppError {
	return ErrReferenceNotFound.withMessage(message)
}
