// internal/common/errors/handler.go
package errors

import (
	stderrors "errors"
	"fmt"
	"io"
	"time"
)

// ErrorHandler turns run-level failures into a log entry, a one-line
// diagnostic and a process exit status.
type ErrorHandler struct {
	logger Logger
	out    io.Writer
}

type Logger interface {
	Error(msg string, fields map[string]interface{})
}

func NewErrorHandler(logger Logger, out io.Writer) *ErrorHandler {
	return &ErrorHandler{logger: logger, out: out}
}

// HandleRunError reports err and returns the exit status to use. A nil error
// maps to 0.
func (h *ErrorHandler) HandleRunError(err error) int {
	if err == nil {
		return 0
	}

	stdErr := h.normalizeError(err)
	h.logError(stdErr)

	// Single line, no stack trace.
	_, _ = fmt.Fprintf(h.out, "error: %s\n", stdErr.Error())
	return 1
}

// normalizeError ensures we always have a StandardError
func (h *ErrorHandler) normalizeError(err error) *StandardError {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr
	}
	return &StandardError{
		Code:      "INTERNAL_ERROR",
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

func (h *ErrorHandler) logError(stdErr *StandardError) {
	h.logger.Error("Run failed", map[string]interface{}{
		"errorCode":     string(stdErr.Code),
		"message":       stdErr.Message,
		"details":       stdErr.Details,
		"errorCategory": GetErrorCategory(stdErr.Code),
	})
}
