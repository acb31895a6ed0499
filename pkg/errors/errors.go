package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode represents a unique error code
type ErrorCode int

// Common error codes
const (
	ErrNotFound ErrorCode = iota + 1000
	ErrValidation
	ErrUnauthorized
	ErrForbidden
	ErrDuplicateEmail
	ErrInvalidCredentials
	ErrCorruptState
	ErrInternal
)

// AppError represents an application error
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Error constructors
func NotFound(resource string, err error) *AppError {
	return &AppError{
		Code:    ErrNotFound,
		Message: fmt.Sprintf("%s not found", resource),
		Err:     err,
	}
}

func Validation(message string) *AppError {
	return &AppError{
		Code:    ErrValidation,
		Message: message,
	}
}

func Forbidden(message string) *AppError {
	return &AppError{
		Code:    ErrForbidden,
		Message: message,
	}
}

func DuplicateEmail(email string) *AppError {
	return &AppError{
		Code:    ErrDuplicateEmail,
		Message: fmt.Sprintf("email %s is already registered", email),
	}
}

func InvalidCredentials() *AppError {
	return &AppError{
		Code:    ErrInvalidCredentials,
		Message: "invalid email or password",
	}
}

func CorruptState(key string, err error) *AppError {
	return &AppError{
		Code:    ErrCorruptState,
		Message: fmt.Sprintf("persisted record %q is corrupt", key),
		Err:     err,
	}
}

func Unauthorized(err error) *AppError {
	return &AppError{
		Code:    ErrUnauthorized,
		Message: "unauthorized",
		Err:     err,
	}
}

func Internal(err error) *AppError {
	return &AppError{
		Code:    ErrInternal,
		Message: "internal server error",
		Err:     err,
	}
}

// Code extracts the ErrorCode from err, or ErrInternal for plain errors.
func Code(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrInternal
}

// HTTPStatus maps an error to the HTTP status the handlers respond with.
func HTTPStatus(err error) int {
	switch Code(err) {
	case ErrValidation:
		return http.StatusBadRequest
	case ErrUnauthorized, ErrInvalidCredentials:
		return http.StatusUnauthorized
	case ErrForbidden:
		return http.StatusForbidden
	case ErrNotFound:
		return http.StatusNotFound
	case ErrDuplicateEmail:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
