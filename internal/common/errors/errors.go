// Package errors provides standardized error handling for the advisor pipeline
// and the boundaries that expose it.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeInvalidRequest      ErrorCode = "INVALID_REQUEST"
	ErrCodeNoAdvisorsSelected  ErrorCode = "NO_ADVISORS_SELECTED"
	ErrCodeValidationFailed    ErrorCode = "VALIDATION_FAILED"
	ErrCodeEndpointUnreachable ErrorCode = "ENDPOINT_UNREACHABLE"
	ErrCodeUnexpectedTask      ErrorCode = "UNEXPECTED_TASK_FAILURE"

	ErrCodeSessionNotFound    ErrorCode = "SESSION_NOT_FOUND"
	ErrCodeSessionStoreFailed ErrorCode = "SESSION_STORE_FAILED"

	ErrCodeRegistryInvalid ErrorCode = "REGISTRY_INVALID"
	ErrCodeInternal        ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`

	cause error
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

func (e *StandardError) Unwrap() error {
	return e.cause
}

// WithMetadata returns the error with an extra metadata entry.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

// ==========================
// 2. Error Constructors
// ==========================

// NewInvalidRequestError creates a non-retryable input error.
func NewInvalidRequestError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidRequest,
		Message:   "Invalid generation request",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewNoAdvisorsSelectedError is the user-correctable error raised before any
// network activity when the selection has no known advisor marked true.
func NewNoAdvisorsSelectedError() *StandardError {
	return &StandardError{
		Code:      ErrCodeNoAdvisorsSelected,
		Message:   "Please select at least one advisor",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewValidationFailedError carries schema validation failures.
func NewValidationFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   "Request failed schema validation",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewEndpointUnreachableError describes a failed advisor call. It is only ever
// logged; callers see the fallback text instead.
func NewEndpointUnreachableError(advisor string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeEndpointUnreachable,
		Message:   "Advisor endpoint unreachable",
		Details:   fmt.Sprintf("advisor: %s, error: %s", advisor, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewUnexpectedTaskFailureError describes an advisor task that failed outside
// the client's own recovery.
func NewUnexpectedTaskFailureError(advisor string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnexpectedTask,
		Message:   "Advisor task failed unexpectedly",
		Details:   fmt.Sprintf("advisor: %s, error: %s", advisor, err.Error()),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewSessionNotFoundError creates a non-retryable lookup error.
func NewSessionNotFoundError(id string) *StandardError {
	return &StandardError{
		Code:      ErrCodeSessionNotFound,
		Message:   "Session not found",
		Details:   fmt.Sprintf("sessionId: %s", id),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewSessionStoreFailedError creates a retryable storage error.
func NewSessionStoreFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSessionStoreFailed,
		Message:   "Session store error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewRegistryInvalidError reports a malformed advisor registry file.
func NewRegistryInvalidError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeRegistryInvalid,
		Message:   "Advisor registry is invalid",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInternalError wraps anything unclassified.
func NewInternalError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// ==========================
// 3. Classification
// ==========================

// Normalize ensures we always have a StandardError.
func Normalize(err error) *StandardError {
	if err == nil {
		return nil
	}
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr
	}
	return NewInternalError(err)
}

// HTTPStatus maps an error code onto the status returned by the API boundary.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeInvalidRequest, ErrCodeNoAdvisorsSelected, ErrCodeValidationFailed:
		return http.StatusBadRequest
	case ErrCodeSessionNotFound:
		return http.StatusNotFound
	case ErrCodeEndpointUnreachable:
		return http.StatusBadGateway
	case ErrCodeSessionStoreFailed:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// IsRetryable reports whether a caller may repeat the operation unchanged.
func IsRetryable(code ErrorCode) bool {
	switch code {
	case ErrCodeEndpointUnreachable, ErrCodeSessionStoreFailed:
		return true
	default:
		return false
	}
}

// GetErrorCategory groups codes for logging.
func GetErrorCategory(code ErrorCode) string {
	switch code {
	case ErrCodeInvalidRequest, ErrCodeNoAdvisorsSelected, ErrCodeValidationFailed:
		return "input"
	case ErrCodeEndpointUnreachable, ErrCodeUnexpectedTask:
		return "advisor"
	case ErrCodeSessionNotFound, ErrCodeSessionStoreFailed:
		return "session"
	case ErrCodeRegistryInvalid:
		return "configuration"
	default:
		return "internal"
	}
}
