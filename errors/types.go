package errors

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a specific error condition
type ErrorCode string

const (
	// Persistence errors
	ErrCodeStateWrite   ErrorCode = "STATE_WRITE"
	ErrCodeLibraryWrite ErrorCode = "LIBRARY_WRITE"
	ErrCodeAssetWrite   ErrorCode = "ASSET_WRITE"

	// Remote icon service errors
	ErrCodeAllHostsFailed ErrorCode = "ALL_HOSTS_FAILED"

	// Image ingestion errors
	ErrCodeProcessingFailed ErrorCode = "PROCESSING_FAILED"

	// Input errors
	ErrCodeInvalidReference ErrorCode = "INVALID_REFERENCE"
	ErrCodeInvalidInput     ErrorCode = "INVALID_INPUT"

	// Configuration errors
	ErrCodeConfigInvalid ErrorCode = "CONFIG_INVALID"

	// General errors
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// IconError represents a structured error with context
type IconError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Cause   error                  `json:"-"`
}

// Error implements the error interface
func (e *IconError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *IconError) Unwrap() error {
	return e.Cause
}

// WithDetail adds a detail to the error
func (e *IconError) WithDetail(key string, value interface{}) *IconError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// ToJSON converts the error to JSON
func (e *IconError) ToJSON() string {
	data, _ := json.MarshalIndent(e, "", "  ")
	return string(data)
}

// New creates a new IconError
func New(code ErrorCode, message string) *IconError {
	return &IconError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with an IconError
func Wrap(err error, code ErrorCode, message string) *IconError {
	return &IconError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// Is checks if an error is a specific IconError code
func Is(err error, code ErrorCode) bool {
	if err == nil {
		return false
	}

	iconErr, ok := err.(*IconError)
	if !ok {
		if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
			return Is(unwrapper.Unwrap(), code)
		}
		return false
	}

	return iconErr.Code == code
}

// GetCode extracts the error code from an error
func GetCode(err error) ErrorCode {
	if err == nil {
		return ""
	}

	iconErr, ok := err.(*IconError)
	if !ok {
		if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
			return GetCode(unwrapper.Unwrap())
		}
		return ""
	}

	return iconErr.Code
}
