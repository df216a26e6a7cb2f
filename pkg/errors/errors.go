// Package errors provides structured error types for chartcore.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the library, CLI and API
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes fall into three classes that mirror how callers react:
//   - Configuration errors (INVALID_CONFIG, ROLE_*): the chart definition is
//     invalid and the chart build must be aborted
//   - Geometry errors (GEOMETRY): the box model cannot be solved
//   - Everything else: input, I/O and internal failures
//
// Soft layout overflow is not an error and never produces one of these codes.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeRoleNotFound, "role %q not found", name)
//	if errors.IsConfiguration(err) {
//	    // Surface as a chart configuration problem
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidFormat, origErr, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Chart configuration errors
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeRoleNotFound  Code = "ROLE_NOT_FOUND"
	ErrCodeRoleCycle     Code = "ROLE_CYCLE"
	ErrCodeRoleRequired  Code = "ROLE_REQUIRED"

	// Box model errors
	ErrCodeGeometry Code = "GEOMETRY"

	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidPath   Code = "INVALID_PATH"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Internal errors
	ErrCodePhaseOrder  Code = "PHASE_ORDER"
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// configurationCodes is the set of codes that mean "this chart specification is invalid".
var configurationCodes = map[Code]bool{
	ErrCodeInvalidConfig: true,
	ErrCodeRoleNotFound:  true,
	ErrCodeRoleCycle:     true,
	ErrCodeRoleRequired:  true,
}

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
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

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// IsConfiguration reports whether err belongs to the configuration class:
// an invalid role configuration, a missing source role, a source-role cycle
// or an unbound required role.
func IsConfiguration(err error) bool {
	return configurationCodes[GetCode(err)]
}

// IsGeometry reports whether err means the box model could not be solved.
func IsGeometry(err error) bool {
	return Is(err, ErrCodeGeometry)
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
