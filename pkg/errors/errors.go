// Package errors provides structured error types for jarscope.
//
// Every failure the resolution engine surfaces carries a machine-readable
// [Code], so callers can tell a confirmed absence ([ErrCodePomNotFound]) apart
// from a transient infrastructure failure ([ErrCodeLookup],
// [ErrCodeRepositoryAccess]) without string matching.
//
// # Error Codes
//
//   - INVALID_*: Input validation failures
//   - *_NOT_FOUND: Confirmed absence (the only kind that is ever memoized)
//   - LOOKUP_FAILED, REPOSITORY_ACCESS: Upstream or I/O failures
//   - POM_PARSE: Malformed documents
//   - RESOLVER: Uniform wrapper returned by the dependency resolver
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidCoordinates, "bad coordinates %q", s)
//	if errors.Is(err, errors.ErrCodeInvalidCoordinates) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeRepositoryAccess, origErr, "download %s", url)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput       Code = "INVALID_INPUT"
	ErrCodeInvalidCoordinates Code = "INVALID_COORDINATES"
	ErrCodeInvalidChecksum    Code = "INVALID_CHECKSUM"
	ErrCodeInvalidConfig      Code = "INVALID_CONFIG"
	ErrCodeInvalidPath        Code = "INVALID_PATH"

	// Confirmed absence
	ErrCodePomNotFound Code = "POM_NOT_FOUND"

	// Upstream and I/O errors
	ErrCodeLookup           Code = "LOOKUP_FAILED"
	ErrCodeRepositoryAccess Code = "REPOSITORY_ACCESS"

	// Document errors
	ErrCodePomParse Code = "POM_PARSE"

	// Resolver errors
	ErrCodeResolver Code = "RESOLVER"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Status  int    // HTTP status code that triggered the error (0 if none)
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// WithStatus records the HTTP status code that caused e and returns e.
func (e *Error) WithStatus(status int) *Error {
	e.Status = status
	return e
}

// Is reports whether any *Error in err's chain has the given code.
// A RESOLVER error wrapping a POM_PARSE error matches both codes.
func Is(err error, code Code) bool {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if e.Code == code {
			return true
		}
		err = e.Cause
	}
	return false
}

// GetCode extracts the outermost error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// GetStatus returns the first non-zero HTTP status recorded in err's chain.
func GetStatus(err error) int {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return 0
		}
		if e.Status != 0 {
			return e.Status
		}
		err = e.Cause
	}
	return 0
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
