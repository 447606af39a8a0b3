// Package errors provides standardized error handling for the analysis pipeline.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

// Input errors abort the run.
const (
	ErrCodeUnsupportedFormat      ErrorCode = "UNSUPPORTED_FORMAT"
	ErrCodeInputReadFailed        ErrorCode = "INPUT_READ_FAILED"
	ErrCodeInputDecodeFailed      ErrorCode = "INPUT_DECODE_FAILED"
	ErrCodeRecordValidationFailed ErrorCode = "RECORD_VALIDATION_FAILED"

	ErrCodeOutputWriteFailed ErrorCode = "OUTPUT_WRITE_FAILED"
	ErrCodeConfigInvalid     ErrorCode = "CONFIG_INVALID"
	ErrCodeRegistryInvalid   ErrorCode = "REGISTRY_INVALID"
)

// Fetch errors are absorbed by the description resolver.
const (
	ErrCodeFetchFailed    ErrorCode = "FETCH_FAILED"
	ErrCodeFetchTimeout   ErrorCode = "FETCH_TIMEOUT"
	ErrCodeFetchBadStatus ErrorCode = "FETCH_BAD_STATUS"
	ErrCodeMetaNotFound   ErrorCode = "META_NOT_FOUND"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	cause     error
}

func (e *StandardError) Error() string {
	if e.Details == "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
}

func (e *StandardError) Unwrap() error {
	return e.cause
}

// WithMetadata attaches a key/value pair and returns the same error.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

func newError(code ErrorCode, message, details string, cause error) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Retryable: IsRetryableErrorCode(code),
		Timestamp: time.Now().UTC(),
		cause:     cause,
	}
}

// ==========================
// 2. Error Constructors
// ==========================

// NewUnsupportedFormatError is returned for an unrecognized input extension.
func NewUnsupportedFormatError(ext string) *StandardError {
	return newError(ErrCodeUnsupportedFormat, "Unsupported input format",
		fmt.Sprintf("extension: %q", ext), nil)
}

// NewInputReadFailedError wraps an I/O failure on the input source.
func NewInputReadFailedError(path string, err error) *StandardError {
	return newError(ErrCodeInputReadFailed, "Input source could not be read",
		fmt.Sprintf("path: %s, error: %s", path, err.Error()), err)
}

// NewInputDecodeFailedError wraps a codec failure on the input source.
func NewInputDecodeFailedError(format string, err error) *StandardError {
	return newError(ErrCodeInputDecodeFailed, "Input source could not be decoded",
		fmt.Sprintf("format: %s, error: %s", format, err.Error()), err)
}

// NewRecordValidationFailedError reports records whose shape does not match
// the project record field names.
func NewRecordValidationFailedError(details string) *StandardError {
	return newError(ErrCodeRecordValidationFailed, "Input records do not match the project schema", details, nil)
}

// NewOutputWriteFailedError wraps a failure persisting the result document.
func NewOutputWriteFailedError(path string, err error) *StandardError {
	return newError(ErrCodeOutputWriteFailed, "Output document could not be written",
		fmt.Sprintf("path: %s, error: %s", path, err.Error()), err)
}

// NewConfigInvalidError reports an invalid configuration value.
func NewConfigInvalidError(details string) *StandardError {
	return newError(ErrCodeConfigInvalid, "Invalid configuration", details, nil)
}

// NewRegistryInvalidError reports an unusable keyword registry file.
func NewRegistryInvalidError(details string, err error) *StandardError {
	if err != nil {
		details = fmt.Sprintf("%s: %s", details, err.Error())
	}
	return newError(ErrCodeRegistryInvalid, "Keyword registry is invalid", details, err)
}

// NewFetchFailedError wraps a transport or body read failure.
func NewFetchFailedError(url string, err error) *StandardError {
	return newError(ErrCodeFetchFailed, "Project page fetch failed",
		fmt.Sprintf("url: %s, error: %s", url, err.Error()), err)
}

// NewFetchTimeoutError reports a fetch that exceeded its deadline.
func NewFetchTimeoutError(url string, err error) *StandardError {
	return newError(ErrCodeFetchTimeout, "Project page fetch timed out",
		fmt.Sprintf("url: %s", url), err)
}

// NewFetchBadStatusError reports a non-200 response.
func NewFetchBadStatusError(url string, status int) *StandardError {
	return newError(ErrCodeFetchBadStatus, "Project page returned an unexpected status",
		fmt.Sprintf("url: %s, status: %d", url, status), nil).WithMetadata("status", status)
}

// NewMetaNotFoundError reports a page without a usable meta description.
func NewMetaNotFoundError(url string) *StandardError {
	return newError(ErrCodeMetaNotFound, "No meta description in project page",
		fmt.Sprintf("url: %s", url), nil)
}

// ==========================
// 3. Utility Functions
// ==========================

// CodeOf extracts the ErrorCode from err, or "INTERNAL_ERROR" when err is not
// a StandardError.
func CodeOf(err error) ErrorCode {
	if err == nil {
		return ""
	}
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr.Code
	}
	return "INTERNAL_ERROR"
}

// Is reports whether err carries the given code anywhere in its chain.
func Is(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}

// IsRetryableErrorCode checks if an error code is retryable. Fetches are
// never retried, so only transient transport codes qualify.
func IsRetryableErrorCode(code ErrorCode) bool {
	switch code {
	case ErrCodeFetchFailed, ErrCodeFetchTimeout:
		return true
	default:
		return false
	}
}

// IsRecoverable reports whether the pipeline absorbs errors with this code
// instead of aborting the run.
func IsRecoverable(code ErrorCode) bool {
	return GetErrorCategory(code) == "FETCH"
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.HasPrefix(codeStr, "FETCH") || strings.HasPrefix(codeStr, "META"):
		return "FETCH"
	case strings.HasPrefix(codeStr, "INPUT") || code == ErrCodeUnsupportedFormat:
		return "INPUT"
	case strings.Contains(codeStr, "VALIDATION") || strings.Contains(codeStr, "INVALID"):
		return "VALIDATION"
	case strings.HasPrefix(codeStr, "OUTPUT"):
		return "OUTPUT"
	default:
		return "INTERNAL"
	}
}
