package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes, one per failure kind of a generation run
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Root file errors
	ErrFileUnreadable ErrorCode = "FILE_UNREADABLE"
	ErrFileWrite      ErrorCode = "FILE_WRITE"

	// Declaration errors
	ErrDeclarationNotFound  ErrorCode = "DECLARATION_NOT_FOUND"
	ErrMalformedDeclaration ErrorCode = "MALFORMED_DECLARATION"

	// Pattern errors
	ErrTooManyExclusions ErrorCode = "TOO_MANY_EXCLUSIONS"
	ErrInvalidPattern    ErrorCode = "INVALID_PATTERN"

	// Template errors
	ErrNoExportTemplate  ErrorCode = "NO_EXPORT_TEMPLATE"
	ErrMalformedTemplate ErrorCode = "MALFORMED_TEMPLATE"

	// Resolution errors
	ErrResolution ErrorCode = "RESOLUTION_ERROR"

	// Check mode
	ErrOutOfDate ErrorCode = "OUT_OF_DATE"
)

// Stage names the pipeline stage an error code belongs to.
func (c ErrorCode) Stage() string {
	switch c {
	case ErrConfigLoad, ErrConfigValid:
		return "config"
	case ErrFileUnreadable:
		return "read"
	case ErrDeclarationNotFound, ErrMalformedDeclaration:
		return "locate"
	case ErrTooManyExclusions:
		return "classify"
	case ErrNoExportTemplate, ErrMalformedTemplate:
		return "template"
	case ErrInvalidPattern, ErrResolution:
		return "resolve"
	case ErrFileWrite:
		return "write"
	case ErrOutOfDate:
		return "check"
	default:
		return "run"
	}
}

// BarrelError represents a structured error with code and details
type BarrelError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *BarrelError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %s: %v", e.Code, e.Code.Stage(), e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Code.Stage(), e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *BarrelError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *BarrelError) Is(target error) bool {
	var targetErr *BarrelError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new BarrelError with the given code and message
func New(code ErrorCode, message string) *BarrelError {
	return &BarrelError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new BarrelError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *BarrelError {
	return &BarrelError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a BarrelError
func Wrap(err error, code ErrorCode, message string) *BarrelError {
	if err == nil {
		return nil
	}
	return &BarrelError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *BarrelError {
	if err == nil {
		return nil
	}
	return &BarrelError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *BarrelError) WithDetail(key string, value interface{}) *BarrelError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var barrelErr *BarrelError
	if errors.As(err, &barrelErr) {
		return barrelErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a BarrelError
func GetErrorCode(err error) ErrorCode {
	var barrelErr *BarrelError
	if errors.As(err, &barrelErr) {
		return barrelErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a BarrelError
func GetErrorDetails(err error) map[string]interface{} {
	var barrelErr *BarrelError
	if errors.As(err, &barrelErr) {
		return barrelErr.Details
	}
	return nil
}
