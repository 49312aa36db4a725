// Package errors provides error handling utilities.
package errors

import (
	"fmt"
)

// Type identifies the category of error
type Type string

const (
	// TypeConfig indicates a bad or missing emission-factor table
	TypeConfig Type = "CONFIG_ERROR"

	// TypeArtifactUnavailable indicates the model artifact is missing or failed to load
	TypeArtifactUnavailable Type = "ARTIFACT_UNAVAILABLE"

	// TypeUnknownCategory indicates an unrecognized categorical value at inference
	TypeUnknownCategory Type = "UNKNOWN_CATEGORY"

	// TypeRange indicates a numeric input outside the allowed bounds
	TypeRange Type = "RANGE_ERROR"

	// TypeInternal indicates an unexpected computation failure
	TypeInternal Type = "INTERNAL_ERROR"
)

// Error represents a domain error with context
type Error struct {
	Type    Type                   `json:"type"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"context,omitempty"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is checks if the error is of a specific type
func (e *Error) Is(t Type) bool {
	return e.Type == t
}

// WithContext adds context to the error
func (e *Error) WithContext(key string, value interface{}) *Error {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// New creates a new error
func New(errType Type, message string) *Error {
	return &Error{
		Type:    errType,
		Message: message,
	}
}

// Newf creates a new formatted error
func Newf(errType Type, format string, args ...interface{}) *Error {
	return &Error{
		Type:    errType,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an error with context
func Wrap(errType Type, message string, cause error) *Error {
	return &Error{
		Type:    errType,
		Message: message,
		Cause:   cause,
	}
}

// Wrapf wraps an error with formatted context
func Wrapf(errType Type, cause error, format string, args ...interface{}) *Error {
	return &Error{
		Type:    errType,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// IsType checks if an error is of a specific type
func IsType(err error, t Type) bool {
	if e, ok := err.(*Error); ok {
		return e.Type == t
	}
	return false
}

// Config creates a configuration error
func Config(message string) *Error {
	return New(TypeConfig, message)
}

// Configf creates a formatted configuration error
func Configf(format string, args ...interface{}) *Error {
	return Newf(TypeConfig, format, args...)
}

// ArtifactUnavailable creates an artifact-unavailable error
func ArtifactUnavailable(message string, cause error) *Error {
	return Wrap(TypeArtifactUnavailable, message, cause)
}

// UnknownCategory creates an unknown-category error naming the offending
// field and value
func UnknownCategory(field, value string) *Error {
	e := Newf(TypeUnknownCategory, "unknown %s: %q", field, value)
	return e.WithContext("field", field).WithContext("value", value)
}

// Range creates a range error for an out-of-bounds numeric input
func Range(field string, value float64, message string) *Error {
	e := Newf(TypeRange, "%s: %s", field, message)
	return e.WithContext("field", field).WithContext("value", value)
}

// Internal creates an internal error
func Internal(message string, cause error) *Error {
	return Wrap(TypeInternal, message, cause)
}
