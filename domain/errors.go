package domain

import (
	"errors"
	"fmt"
)

// ErrorCode represents a semantic classification shared across front ends.
type ErrorCode string

const (
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	ErrCodeInvalid  ErrorCode = "INVALID"
	ErrCodeInternal ErrorCode = "INTERNAL"
)

// Error represents a domain-level error.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewError builds a domain error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WrapError wraps an existing error with a domain classification.
func WrapError(code ErrorCode, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common domain errors.
var (
	ErrTextRequired      = NewError(ErrCodeInvalid, "Todo text is required")
	ErrTextTooLong       = NewError(ErrCodeInvalid, "Todo text must be less than 200 characters")
	ErrInvalidPriority   = NewError(ErrCodeInvalid, "priority must be low, medium or high")
	ErrInvalidFilter     = NewError(ErrCodeInvalid, "filter must be all, active, completed or deleted")
	ErrInvalidXPAmount   = NewError(ErrCodeInvalid, "xp amount must be positive")
	ErrInvalidStreak     = NewError(ErrCodeInvalid, "streak must not be negative")
	ErrInvalidPayload    = NewError(ErrCodeInvalid, "invalid payload")
	ErrTaskDeleted       = NewError(ErrCodeInvalid, "restore the task before completing it")
	ErrSnapshotNotFound  = NewError(ErrCodeNotFound, "snapshot not found")
	ErrUnsupportedSchema = NewError(ErrCodeInvalid, "unsupported snapshot version")
)

// IsDomainError helps checking error codes.
func IsDomainError(err error, code ErrorCode) bool {
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr.Code == code
	}
	return false
}
