// internal/common/errors/handler.go
package errors

import (
	"encoding/json"
	"net/http"
	"time"
)

// ErrorHandler writes request errors as the standard JSON envelope.
type ErrorHandler struct {
	logger Logger
}

type Logger interface {
	Error(msg string, fields map[string]interface{})
}

func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// ErrorResponse is the wire shape consumed by the clients. They read the
// "detail" field verbatim, so it always carries a human-readable message.
type ErrorResponse struct {
	Detail    string                 `json:"detail"`
	Code      string                 `json:"code,omitempty"`
	Retryable bool                   `json:"retryable,omitempty"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// WriteHTTP normalizes any error into a StandardError, logs it, and writes
// the JSON envelope with the mapped status code.
func (h *ErrorHandler) WriteHTTP(w http.ResponseWriter, r *http.Request, err error) {
	stdErr := h.normalizeError(err)
	status := HTTPStatus(stdErr.Code)

	h.logError(r, stdErr, status)

	resp := ErrorResponse{
		Detail:    stdErr.Message,
		Code:      string(stdErr.Code),
		Retryable: stdErr.Retryable,
		Metadata:  stdErr.Metadata,
	}
	if stdErr.Details != "" && status < http.StatusInternalServerError {
		// Internal details stay out of 5xx responses.
		resp.Detail = stdErr.Message + ": " + stdErr.Details
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

// normalizeError ensures we always have a StandardError
func (h *ErrorHandler) normalizeError(err error) *StandardError {
	if stdErr, ok := err.(*StandardError); ok {
		return stdErr
	}
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func (h *ErrorHandler) logError(r *http.Request, stdErr *StandardError, status int) {
	h.logger.Error("Request failed", map[string]interface{}{
		"method":        r.Method,
		"path":          r.URL.Path,
		"status":        status,
		"errorCode":     string(stdErr.Code),
		"message":       stdErr.Message,
		"details":       stdErr.Details,
		"retryable":     stdErr.Retryable,
		"errorCategory": GetErrorCategory(stdErr.Code),
	})
}
