package errors

import (
	"errors"
	"fmt"
	"io/fs"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for the repository error taxonomy
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrOther        ErrorCode = "OTHER"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"

	// Lock errors
	ErrCouldNotOpenLockFile ErrorCode = "COULD_NOT_OPEN_LOCK_FILE"
	ErrCouldNotLock         ErrorCode = "COULD_NOT_LOCK"

	// Identifier errors
	ErrCouldNotComputeHash ErrorCode = "COULD_NOT_COMPUTE_HASH"
	ErrInvalidMetaID       ErrorCode = "INVALID_META_ID"
	ErrInvalidLinkID       ErrorCode = "INVALID_LINK_ID"

	// Record errors
	ErrInvalidLinkFile ErrorCode = "INVALID_LINK_FILE"

	// Shared directory errors
	ErrInvalidSharedPath ErrorCode = "INVALID_SHARED_PATH"

	// Cleanup errors
	ErrCouldNotDeleteDirectory ErrorCode = "COULD_NOT_DELETE_DIRECTORY"
	ErrCouldNotDeleteFile      ErrorCode = "COULD_NOT_DELETE_FILE"
)

// RepoError represents a structured error with code and details
type RepoError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *RepoError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *RepoError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *RepoError) Is(target error) bool {
	var targetErr *RepoError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new RepoError with the given code and message
func New(code ErrorCode, message string) *RepoError {
	return &RepoError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new RepoError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *RepoError {
	return &RepoError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a RepoError
func Wrap(err error, code ErrorCode, message string) *RepoError {
	if err == nil {
		return nil
	}
	return &RepoError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *RepoError {
	if err == nil {
		return nil
	}
	return &RepoError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Other wraps an underlying I/O or serialization failure.
func Other(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrapf(err, ErrOther, format, args...)
}

// WithDetail adds a detail to the error
func (e *RepoError) WithDetail(key string, value interface{}) *RepoError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *RepoError) WithDetails(details map[string]interface{}) *RepoError {
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
	var repoErr *RepoError
	if errors.As(err, &repoErr) {
		return repoErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a RepoError
func GetErrorCode(err error) ErrorCode {
	var repoErr *RepoError
	if errors.As(err, &repoErr) {
		return repoErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a RepoError
func GetErrorDetails(err error) map[string]interface{} {
	var repoErr *RepoError
	if errors.As(err, &repoErr) {
		return repoErr.Details
	}
	return nil
}

// IsNotFound reports whether err, or any error it wraps, is a
// "file not found" condition.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, fs.ErrNotExist) || errors.Is(err, New(ErrNotFound, ""))
}
