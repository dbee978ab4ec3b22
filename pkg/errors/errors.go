// Package errors provides structured error types for the Mondrian application.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across CLI and HTTP server
//   - Machine-readable error codes for programmatic handling
//   - Per-row reporting of malformed input without aborting a run
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - *_NOT_FOUND: Resource not found
//   - INTERNAL_*: Unexpected internal errors
//
// # Typed Errors
//
// Two typed errors carry extra context beyond a message:
//
//   - [ValidationError] describes a bad row or column in an input file. Loaders
//     collect these and keep going with the remaining rows.
//   - [ConfigError] describes an invalid grid, threshold, or configuration value.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidFormat, "unknown format: %s", f)
//	if errors.Is(err, errors.ErrCodeInvalidFormat) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeFileNotFound, origErr, "open %s", path)
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
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidRow      Code = "INVALID_ROW"
	ErrCodeInvalidColumn   Code = "INVALID_COLUMN"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeInvalidStyle    Code = "INVALID_STYLE"
	ErrCodeInvalidFilename Code = "INVALID_FILENAME"
	ErrCodeInvalidPath     Code = "INVALID_PATH"
	ErrCodeInvalidConfig   Code = "INVALID_CONFIG"
	ErrCodeTooLarge        Code = "TOO_LARGE"

	// Resource not found errors
	ErrCodeNotFound        Code = "NOT_FOUND"
	ErrCodeFileNotFound    Code = "FILE_NOT_FOUND"
	ErrCodeDatasetNotFound Code = "DATASET_NOT_FOUND"

	// Layout errors
	ErrCodeCanvasFull Code = "CANVAS_FULL"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
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

// coder is implemented by typed errors that expose their code directly.
type coder interface {
	error
	ErrorCode() Code
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error or a typed error with a
// matching code.
func Is(err error, code Code) bool {
	return GetCode(err) == code
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error carries no code.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	var c coder
	if errors.As(err, &c) {
		return c.ErrorCode()
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	var v *ValidationError
	if errors.As(err, &v) {
		return v.Describe()
	}
	var c *ConfigError
	if errors.As(err, &c) {
		return c.Describe()
	}
	return err.Error()
}

// =============================================================================
// ValidationError
// =============================================================================

// ValidationError reports a bad row or column in an input file.
// Row is 1-based and counts the header as row 1; it is zero for errors that
// concern the file as a whole (such as a missing column).
type ValidationError struct {
	Row     int    `json:"row,omitempty"`
	Column  string `json:"column,omitempty"`
	Value   string `json:"value,omitempty"`
	Message string `json:"message"`
}

// RowError creates a ValidationError for a single cell.
func RowError(row int, column, value, format string, args ...any) *ValidationError {
	return &ValidationError{
		Row:     row,
		Column:  column,
		Value:   value,
		Message: fmt.Sprintf(format, args...),
	}
}

// ColumnError creates a ValidationError for a missing or malformed column.
func ColumnError(column, format string, args ...any) *ValidationError {
	return &ValidationError{
		Column:  column,
		Message: fmt.Sprintf(format, args...),
	}
}

// ErrorCode returns INVALID_COLUMN for file-level errors and INVALID_ROW otherwise.
func (e *ValidationError) ErrorCode() Code {
	if e.Row == 0 {
		return ErrCodeInvalidColumn
	}
	return ErrCodeInvalidRow
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.ErrorCode(), e.Describe())
}

// Describe returns the message with its row and column location.
func (e *ValidationError) Describe() string {
	switch {
	case e.Row > 0 && e.Column != "":
		return fmt.Sprintf("row %d, column %s: %s", e.Row, e.Column, e.Message)
	case e.Row > 0:
		return fmt.Sprintf("row %d: %s", e.Row, e.Message)
	case e.Column != "":
		return fmt.Sprintf("column %s: %s", e.Column, e.Message)
	default:
		return e.Message
	}
}

// =============================================================================
// ConfigError
// =============================================================================

// ConfigError reports an invalid grid, threshold, or configuration value.
type ConfigError struct {
	Field   string
	Message string
}

// NewConfigError creates a ConfigError for the given field.
func NewConfigError(field, format string, args ...any) *ConfigError {
	return &ConfigError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// ErrorCode returns INVALID_CONFIG.
func (e *ConfigError) ErrorCode() Code { return ErrCodeInvalidConfig }

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s", ErrCodeInvalidConfig, e.Describe())
}

// Describe returns the message prefixed with the field name.
func (e *ConfigError) Describe() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}
