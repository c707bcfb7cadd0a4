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
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"

	// Values document errors
	ErrConfigMissing ErrorCode = "CONFIG_MISSING"
	ErrConfigParse   ErrorCode = "CONFIG_PARSE"

	// Settings errors
	ErrSettingsLoad ErrorCode = "SETTINGS_LOAD"

	// Environment errors
	ErrHomeDir ErrorCode = "HOME_DIR"

	// Pipeline errors
	ErrTraversal       ErrorCode = "TRAVERSAL"
	ErrIO              ErrorCode = "IO"
	ErrTemplate        ErrorCode = "TEMPLATE"
	ErrLink            ErrorCode = "LINK"
	ErrUnsafeOverwrite ErrorCode = "UNSAFE_OVERWRITE"
)

// DfmError represents a structured error with code and details
type DfmError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *DfmError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *DfmError) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target is a DfmError with the same code
func (e *DfmError) Is(target error) bool {
	var targetErr *DfmError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new DfmError with the given code and message
func New(code ErrorCode, message string) *DfmError {
	return &DfmError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new DfmError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *DfmError {
	return &DfmError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a DfmError. It returns nil if err is nil.
func Wrap(err error, code ErrorCode, message string) *DfmError {
	if err == nil {
		return nil
	}
	return &DfmError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *DfmError {
	if err == nil {
		return nil
	}
	return &DfmError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *DfmError) WithDetail(key string, value interface{}) *DfmError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *DfmError) WithDetails(details map[string]interface{}) *DfmError {
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
	var dfmErr *DfmError
	if errors.As(err, &dfmErr) {
		return dfmErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a DfmError
func GetErrorCode(err error) ErrorCode {
	var dfmErr *DfmError
	if errors.As(err, &dfmErr) {
		return dfmErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a DfmError
func GetErrorDetails(err error) map[string]interface{} {
	var dfmErr *DfmError
	if errors.As(err, &dfmErr) {
		return dfmErr.Details
	}
	return nil
}

// IsFatal reports whether an error must abort the whole run.
// Link-level failures are reported per entry and are not fatal.
func IsFatal(err error) bool {
	switch GetErrorCode(err) {
	case ErrLink, ErrUnsafeOverwrite:
		return false
	}
	return err != nil
}
