package common

import (
	"errors"
	"fmt"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Common application errors
var (
	// ErrNoTextDetected means OCR produced no usable text. It is a hard
	// error: the caller gets no partial result to confuse with a voucher
	// that merely lacked recognizable fields.
	ErrNoTextDetected = errors.New("no text detected in image")

	// ErrUnknownCategory means a pattern-library mutation referenced a
	// category outside the fixed set. Programmer error.
	ErrUnknownCategory = errors.New("unknown category")

	// ErrUploadFailed wraps object-storage upload faults.
	ErrUploadFailed = errors.New("upload failed")

	// ErrPersistence wraps record-store faults.
	ErrPersistence = errors.New("persistence error")

	ErrInvalidInput = errors.New("invalid input")
	ErrInternal     = errors.New("internal error")
)

// Error constructors
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
