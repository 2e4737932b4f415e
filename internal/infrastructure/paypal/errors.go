package paypal

import (
	"errors"
	"fmt"
)

// GatewayError is a non-2xx answer from the gateway API.
type GatewayError struct {
	StatusCode  int
	Name        string
	Message     string
	DebugID     string
	Description string
}

type gatewayErrorResponse struct {
	Name             string `json:"name"`
	Message          string `json:"message"`
	DebugID          string `json:"debug_id"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

func (r gatewayErrorResponse) toError(statusCode int) *GatewayError {
	name := r.Name
	if name == "" {
		name = r.Error
	}
	message := r.Message
	if message == "" {
		message = r.ErrorDescription
	}
	return &GatewayError{
		StatusCode:  statusCode,
		Name:        name,
		Message:     message,
		DebugID:     r.DebugID,
		Description: r.ErrorDescription,
	}
}

func (e *GatewayError) Error() string {
	if e.DebugID != "" {
		return fmt.Sprintf("gateway error [%s]: %s (status: %d, debug_id: %s)", e.Name, e.Message, e.StatusCode, e.DebugID)
	}
	return fmt.Sprintf("gateway error [%s]: %s (status: %d)", e.Name, e.Message, e.StatusCode)
}

// IsRetryable is informational; the client never retries by itself.
func (e *GatewayError) IsRetryable() bool {
	return e.StatusCode >= 500
}

func IsGatewayError(err error) (*GatewayError, bool) {
	var gwErr *GatewayError
	ok := errors.As(err, &gwErr)
	return gwErr, ok
}
