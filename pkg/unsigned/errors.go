package unsigned

import (
	"errors"
	"fmt"
)

// Error codes for certificate generation failures.
// These are spec-level error kinds, not HTTP status codes.
const (
	// ErrCodeValidation indicates a required field is missing or empty, a DID
	// or URI failed shape validation, or extra metadata collides with a
	// reserved document key.
	ErrCodeValidation = "CERT_VALIDATION_FAILED"

	// ErrCodeParse indicates the records payload is not valid JSON or does
	// not decode to an object or array.
	ErrCodeParse = "CERT_RECORDS_MALFORMED"

	// ErrCodeResource indicates an image reference could not be read when
	// content embedding was requested.
	ErrCodeResource = "CERT_RESOURCE_UNREADABLE"
)

// Error represents a generation failure with a stable error code. The
// message always names the input (field, metadata key, image path) that
// caused the failure so callers can correct it.
type Error struct {
	// Code is one of the CERT_* error codes.
	Code string

	// Message is a human-readable description.
	Message string

	// Cause is the underlying error, if any.
	Cause error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is checks if the error matches a target error code.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// NewError creates a new Error with the given code and message.
func NewError(code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Errorf creates a new Error with a formatted message.
func Errorf(code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// WrapError creates a new Error that wraps an underlying error.
func WrapError(code, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Predefined sentinel errors, one per error kind.
// Use these with errors.Is() for type-safe error checking.
var (
	// ErrValidation is returned for any field, DID, URI, or reserved-key
	// validation failure.
	ErrValidation = NewError(ErrCodeValidation, "input validation failed")

	// ErrParse is returned when the records payload is malformed.
	ErrParse = NewError(ErrCodeParse, "records payload is malformed")

	// ErrResource is returned when an image asset cannot be read.
	ErrResource = NewError(ErrCodeResource, "image asset cannot be read")
)

// AsError checks if err is an Error and returns it if so.
func AsError(err error) (*Error, bool) {
	var certErr *Error
	if errors.As(err, &certErr) {
		return certErr, true
	}
	return nil, false
}

// GetErrorCode extracts the error code from an Error, or returns empty string.
func GetErrorCode(err error) string {
	if certErr, ok := AsError(err); ok {
		return certErr.Code
	}
	return ""
}
