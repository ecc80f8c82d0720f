package utils

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies failures so the HTTP boundary can pick a status.
type ErrorKind string

const (
	KindValidation ErrorKind = "validation"
	KindNotFound   ErrorKind = "not_found"
	KindConflict   ErrorKind = "conflict"
	KindAuth       ErrorKind = "auth"
	KindInternal   ErrorKind = "internal"
)

// AppError is the error type returned by every service operation.
type AppError struct {
	Kind    ErrorKind
	Status  int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches on kind so callers can write errors.Is(err, utils.ErrNotFound).
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

// Sentinels for errors.Is checks by kind.
var (
	ErrValidation = &AppError{Kind: KindValidation}
	ErrNotFound   = &AppError{Kind: KindNotFound}
	ErrConflict   = &AppError{Kind: KindConflict}
	ErrAuth       = &AppError{Kind: KindAuth}
	ErrInternal   = &AppError{Kind: KindInternal}
)

func NewValidationError(message string) *AppError {
	return &AppError{Kind: KindValidation, Status: http.StatusBadRequest, Message: message}
}

func NewNotFoundError(message string) *AppError {
	return &AppError{Kind: KindNotFound, Status: http.StatusNotFound, Message: message}
}

// NewConflictError reports a uniqueness violation. The public API answers
// these with 400 rather than 409.
func NewConflictError(message string) *AppError {
	return &AppError{Kind: KindConflict, Status: http.StatusBadRequest, Message: message}
}

func NewAuthError(message string) *AppError {
	return &AppError{Kind: KindAuth, Status: http.StatusUnauthorized, Message: message}
}

func NewInternalError(message string, err error) *AppError {
	return &AppError{Kind: KindInternal, Status: http.StatusInternalServerError, Message: message, Err: err}
}

// AsAppError extracts an *AppError from err, if any.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
