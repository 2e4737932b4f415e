package rest

import (
	"log/slog"
	"net/http"

	"github.com/DanielPopoola/paypal-checkout/internal/application"
)

// WriteError maps application errors to HTTP responses
func WriteError(w http.ResponseWriter, err error, logger *slog.Logger) {
	statusCode := application.ToHTTPStatus(err)
	errorCode := application.ToErrorCode(err)

	attrs := []any{
		"code", errorCode,
		"status", statusCode,
		"category", application.CategorizeError(err),
		"retryable", application.IsRetryable(err),
		"error", err,
	}
	if statusCode >= http.StatusInternalServerError {
		logger.Error("request failed", attrs...)
	} else {
		logger.Warn("request rejected", attrs...)
	}

	writeEnvelope(w, statusCode, APIResponse{
		Success: false,
		Error: &APIError{
			Code:    errorCode,
			Message: err.Error(),
			Details: application.ErrorFields(err),
		},
	})
}
