// Package errors provides structured error types for radar.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI and library packages
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Every failure that terminates a run carries one of the codes below:
//   - PARSE_ERROR: the attribute file is unreadable or a value is not an integer
//   - EMPTY_CHART: no usable attributes remain to plot
//   - UNKNOWN_THEME: a theme name has no palette
//   - INVALID_CONFIG: a configuration value is out of range or malformed
//   - IO_ERROR: an output image could not be written
//
// Malformed individual lines (comments, short lines) are skipped by the
// parser and never produce an error.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeUnknownTheme, "unknown theme: %s", name)
//	if errors.Is(err, errors.ErrCodeUnknownTheme) {
//	    // Handle missing palette
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeParse, origErr, "read %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input errors
	ErrCodeParse         Code = "PARSE_ERROR"
	ErrCodeEmptyChart    Code = "EMPTY_CHART"
	ErrCodeUnknownTheme  Code = "UNKNOWN_THEME"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"

	// Output errors
	ErrCodeIO Code = "IO_ERROR"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

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

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message (and cause) without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Cause != nil {
			return fmt.Sprintf("%s: %v", e.Message, e.Cause)
		}
		return e.Message
	}
	return err.Error()
}

// IsParse reports whether err is a PARSE_ERROR.
func IsParse(err error) bool { return Is(err, ErrCodeParse) }

// IsEmptyChart reports whether err is an EMPTY_CHART error.
func IsEmptyChart(err error) bool { return Is(err, ErrCodeEmptyChart) }

// IsUnknownTheme reports whether err is an UNKNOWN_THEME error.
func IsUnknownTheme(err error) bool { return Is(err, ErrCodeUnknownTheme) }

// LineError reports a value on a specific input line that could not be parsed.
type LineError struct {
	Line  int    // 1-based line number
	Value string // Offending field
	Err   error
}

// Error implements the error interface.
func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: invalid value %q", e.Line, e.Value)
}

// Unwrap returns the underlying conversion error.
func (e *LineError) Unwrap() error { return e.Err }

// Code returns the error code for this error type.
func (e *LineError) Code() Code {
	return ErrCodeParse
}
