// Package errors provides standardized error handling for the recruiting API.
package errors

import (
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
	ErrCodeValidationFailed    ErrorCode = "VALIDATION_FAILED"
	ErrCodeInvalidRequestBody  ErrorCode = "INVALID_REQUEST_BODY"
	ErrCodeInvalidFilterFormat ErrorCode = "INVALID_FILTER_FORMAT"

	ErrCodeAuthenticationFailed ErrorCode = "AUTHENTICATION_FAILED"
	ErrCodeTokenExpired         ErrorCode = "TOKEN_EXPIRED"
	ErrCodeTokenBlacklisted     ErrorCode = "TOKEN_BLACKLISTED"
	ErrCodeForbidden            ErrorCode = "FORBIDDEN"
	ErrCodeEmployeeNotVerified  ErrorCode = "EMPLOYEE_NOT_VERIFIED"

	ErrCodeUserNotFound       ErrorCode = "USER_NOT_FOUND"
	ErrCodeResumeNotFound     ErrorCode = "RESUME_NOT_FOUND"
	ErrCodeJobOpeningNotFound ErrorCode = "JOB_OPENING_NOT_FOUND"
	ErrCodeAnalysisNotFound   ErrorCode = "ANALYSIS_NOT_FOUND"

	ErrCodeDuplicateEmail       ErrorCode = "DUPLICATE_EMAIL"
	ErrCodeDuplicateApplication ErrorCode = "DUPLICATE_APPLICATION"

	ErrCodeUnsupportedFileType ErrorCode = "UNSUPPORTED_FILE_TYPE"
	ErrCodeFileTooLarge        ErrorCode = "FILE_TOO_LARGE"
	ErrCodeParseFailed         ErrorCode = "PARSE_FAILED"

	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeQueryExecutionFailed     ErrorCode = "QUERY_EXECUTION_FAILED"
	ErrCodeDatabaseInsertFailed     ErrorCode = "DATABASE_INSERT_FAILED"

	ErrCodeSearchQueryFailed ErrorCode = "SEARCH_QUERY_FAILED"
	ErrCodeCacheFailed       ErrorCode = "CACHE_FAILED"

	ErrCodeEmailSendFailed      ErrorCode = "EMAIL_SEND_FAILED"
	ErrCodeExternalServiceError ErrorCode = "EXTERNAL_SERVICE_ERROR"
	ErrCodeNetworkUnreachable   ErrorCode = "NETWORK_UNREACHABLE"

	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. Error Constructors
// ==========================

// NewValidationError creates a non-retryable request validation error.
func NewValidationError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   "Request validation failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidRequestBodyError creates a non-retryable malformed body error.
func NewInvalidRequestBodyError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidRequestBody,
		Message:   "Request body could not be parsed",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidFilterFormatError creates a non-retryable filter error.
func NewInvalidFilterFormatError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidFilterFormat,
		Message:   "Invalid filter format",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewAuthenticationError creates a non-retryable credential error.
func NewAuthenticationError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeAuthenticationFailed,
		Message:   "Authentication failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewTokenExpiredError creates a non-retryable session error.
func NewTokenExpiredError() *StandardError {
	return &StandardError{
		Code:      ErrCodeTokenExpired,
		Message:   "Session token has expired",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewTokenBlacklistedError creates a non-retryable session error.
func NewTokenBlacklistedError() *StandardError {
	return &StandardError{
		Code:      ErrCodeTokenBlacklisted,
		Message:   "Session token has been revoked",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewForbiddenError creates a non-retryable authorization error.
func NewForbiddenError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeForbidden,
		Message:   "Not authorized for this operation",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewEmployeeNotVerifiedError creates a non-retryable signup error.
func NewEmployeeNotVerifiedError(employeeID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeEmployeeNotVerified,
		Message:   "Employee details do not match the company employee list",
		Details:   fmt.Sprintf("employeeId: %s", employeeID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewUserNotFoundError creates a non-retryable lookup error.
func NewUserNotFoundError(identifier string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUserNotFound,
		Message:   "User not found",
		Details:   identifier,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewResumeNotFoundError creates a non-retryable lookup error.
func NewResumeNotFoundError(resumeID int64) *StandardError {
	return &StandardError{
		Code:      ErrCodeResumeNotFound,
		Message:   "Resume not found",
		Details:   fmt.Sprintf("resumeId: %d", resumeID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewJobOpeningNotFoundError creates a non-retryable lookup error.
func NewJobOpeningNotFoundError(jobID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeJobOpeningNotFound,
		Message:   "Job opening not found",
		Details:   fmt.Sprintf("jobId: %s", jobID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewAnalysisNotFoundError creates a non-retryable lookup error.
func NewAnalysisNotFoundError(jobID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeAnalysisNotFound,
		Message:   "No analysis results for this job",
		Details:   fmt.Sprintf("jobId: %s", jobID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewDuplicateEmailError creates a non-retryable conflict error.
func NewDuplicateEmailError(email string) *StandardError {
	return &StandardError{
		Code:      ErrCodeDuplicateEmail,
		Message:   "Email is already registered",
		Details:   email,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewDuplicateApplicationError creates a non-retryable conflict error.
func NewDuplicateApplicationError(jobID string, resumeID int64) *StandardError {
	return &StandardError{
		Code:      ErrCodeDuplicateApplication,
		Message:   "Candidate has already applied to this job",
		Details:   fmt.Sprintf("jobId: %s, resumeId: %d", jobID, resumeID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewUnsupportedFileTypeError creates a non-retryable upload error.
func NewUnsupportedFileTypeError(filename string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnsupportedFileType,
		Message:   "File type is not supported",
		Details:   filename,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewFileTooLargeError creates a non-retryable upload error.
func NewFileTooLargeError(maxMB int) *StandardError {
	return &StandardError{
		Code:      ErrCodeFileTooLarge,
		Message:   fmt.Sprintf("File exceeds the %dMB upload limit", maxMB),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewParseFailedError creates a non-retryable document extraction error.
func NewParseFailedError(filename string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeParseFailed,
		Message:   "Resume text could not be extracted",
		Details:   fmt.Sprintf("%s: %v", filename, err),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewDatabaseConnectionFailedError creates a retryable database connection error.
func NewDatabaseConnectionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseConnectionFailed,
		Message:   "Failed to connect to database",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewQueryExecutionFailedError creates a retryable query error.
func NewQueryExecutionFailedError(operation string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeQueryExecutionFailed,
		Message:   "Database query failed",
		Details:   fmt.Sprintf("%s: %v", operation, err),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewDatabaseInsertFailedError creates a retryable insert error.
func NewDatabaseInsertFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseInsertFailed,
		Message:   "Database insert failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSearchQueryFailedError creates a retryable search error.
func NewSearchQueryFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSearchQueryFailed,
		Message:   "Search query failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewCacheFailedError creates a retryable cache error.
func NewCacheFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCacheFailed,
		Message:   "Cache operation failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewEmailSendFailedError creates a retryable mail error.
func NewEmailSendFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeEmailSendFailed,
		Message:   "Email could not be sent",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewExternalServiceError creates a retryable error for upstream failures.
func NewExternalServiceError(service string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeExternalServiceError,
		Message:   fmt.Sprintf("External service error: %s", service),
		Details:   err.Error(),
		Retryable: true,
		Metadata:  map[string]interface{}{"service": service},
		Timestamp: time.Now().UTC(),
	}
}

// NewNetworkUnreachableError remaps a transport-level failure.
func NewNetworkUnreachableError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNetworkUnreachable,
		Message:   "Network unreachable",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewInternalError wraps an unexpected failure.
func NewInternalError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. HTTP Mapping
// ==========================

// httpStatusMapping maps internal error codes to response status codes.
var httpStatusMapping = map[ErrorCode]int{
	ErrCodeValidationFailed:    http.StatusBadRequest,
	ErrCodeInvalidRequestBody:  http.StatusBadRequest,
	ErrCodeInvalidFilterFormat: http.StatusBadRequest,
	ErrCodeUnsupportedFileType: http.StatusBadRequest,
	ErrCodeFileTooLarge:        http.StatusRequestEntityTooLarge,
	ErrCodeParseFailed:         http.StatusUnprocessableEntity,

	ErrCodeAuthenticationFailed: http.StatusUnauthorized,
	ErrCodeTokenExpired:         http.StatusUnauthorized,
	ErrCodeTokenBlacklisted:     http.StatusUnauthorized,
	ErrCodeForbidden:            http.StatusForbidden,
	ErrCodeEmployeeNotVerified:  http.StatusForbidden,

	ErrCodeUserNotFound:       http.StatusNotFound,
	ErrCodeResumeNotFound:     http.StatusNotFound,
	ErrCodeJobOpeningNotFound: http.StatusNotFound,
	ErrCodeAnalysisNotFound:   http.StatusNotFound,

	ErrCodeDuplicateEmail:       http.StatusConflict,
	ErrCodeDuplicateApplication: http.StatusConflict,

	ErrCodeExternalServiceError: http.StatusBadGateway,
	ErrCodeNetworkUnreachable:   http.StatusBadGateway,
}

// HTTPStatus returns the response status for an error code.
// Unknown codes map to 500.
func HTTPStatus(code ErrorCode) int {
	if status, ok := httpStatusMapping[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// IsRetryableErrorCode tells whether a caller may usefully retry.
func IsRetryableErrorCode(code ErrorCode) bool {
	switch code {
	case ErrCodeDatabaseConnectionFailed, ErrCodeQueryExecutionFailed,
		ErrCodeDatabaseInsertFailed, ErrCodeSearchQueryFailed,
		ErrCodeCacheFailed, ErrCodeEmailSendFailed,
		ErrCodeExternalServiceError, ErrCodeNetworkUnreachable:
		return true
	}
	return false
}

// GetErrorCategory groups error codes for logging and metrics labels.
func GetErrorCategory(code ErrorCode) string {
	switch code {
	case ErrCodeValidationFailed, ErrCodeInvalidRequestBody, ErrCodeInvalidFilterFormat,
		ErrCodeUnsupportedFileType, ErrCodeFileTooLarge, ErrCodeParseFailed:
		return "validation"
	case ErrCodeAuthenticationFailed, ErrCodeTokenExpired, ErrCodeTokenBlacklisted,
		ErrCodeForbidden, ErrCodeEmployeeNotVerified:
		return "auth"
	case ErrCodeUserNotFound, ErrCodeResumeNotFound, ErrCodeJobOpeningNotFound,
		ErrCodeAnalysisNotFound:
		return "not_found"
	case ErrCodeDuplicateEmail, ErrCodeDuplicateApplication:
		return "conflict"
	case ErrCodeDatabaseConnectionFailed, ErrCodeQueryExecutionFailed, ErrCodeDatabaseInsertFailed:
		return "database"
	case ErrCodeSearchQueryFailed, ErrCodeCacheFailed:
		return "infrastructure"
	case ErrCodeEmailSendFailed, ErrCodeExternalServiceError, ErrCodeNetworkUnreachable:
		return "external"
	}
	return "internal"
}
