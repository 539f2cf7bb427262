package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown       ErrorCode = "UNKNOWN"
	ErrInternal      ErrorCode = "INTERNAL"
	ErrInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrNotFound      ErrorCode = "NOT_FOUND"
	ErrAlreadyExists ErrorCode = "ALREADY_EXISTS"
	ErrSealed        ErrorCode = "SEALED"

	// Parse errors
	ErrUnsupportedMode      ErrorCode = "UNSUPPORTED_MODE"
	ErrMissingRequiredField ErrorCode = "MISSING_REQUIRED_FIELD"
	ErrRegexCompile         ErrorCode = "REGEX_COMPILE"
	ErrValueConversion      ErrorCode = "VALUE_CONVERSION"
	ErrTableFormatNotFound  ErrorCode = "TABLE_FORMAT_NOT_FOUND"
	ErrMissingFormatName    ErrorCode = "MISSING_FORMAT_NAME"
	ErrInvalidRule          ErrorCode = "INVALID_RULE"

	// Configuration errors
	ErrConfigLoad     ErrorCode = "CONFIG_LOAD"
	ErrConfigParse    ErrorCode = "CONFIG_PARSE"
	ErrConfigValid    ErrorCode = "CONFIG_INVALID"
	ErrActionNotFound ErrorCode = "ACTION_NOT_FOUND"

	// Output errors
	ErrRender ErrorCode = "RENDER"
)

// ParseError represents a structured error with code and details
type ParseError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *ParseError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *ParseError) Is(target error) bool {
	var targetErr *ParseError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new ParseError with the given code and message
func New(code ErrorCode, message string) *ParseError {
	return &ParseError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new ParseError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *ParseError {
	return &ParseError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a ParseError
func Wrap(err error, code ErrorCode, message string) *ParseError {
	if err == nil {
		return nil
	}
	return &ParseError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *ParseError {
	if err == nil {
		return nil
	}
	return &ParseError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *ParseError) WithDetail(key string, value interface{}) *ParseError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *ParseError) WithDetails(details map[string]interface{}) *ParseError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		return parseErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a ParseError
func GetErrorCode(err error) ErrorCode {
	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		return parseErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a ParseError
func GetErrorDetails(err error) map[string]interface{} {
	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		return parseErr.Details
	}
	return nil
}

// Join combines several errors into one, skipping nils. It returns nil when
// nothing is left.
func Join(errs ...error) error {
	return errors.Join(errs...)
}
