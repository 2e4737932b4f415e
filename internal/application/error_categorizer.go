package application

import (
	"context"
	"errors"
	"net/http"

	"github.com/DanielPopoola/paypal-checkout/internal/domain"
)

// ErrorCategory represents the nature of an error for logging and callers
// deciding whether to try again.
type ErrorCategory string

const (
	CategoryTransient      ErrorCategory = "TRANSIENT"
	CategoryPermanent      ErrorCategory = "PERMANENT"
	CategoryBusinessRule   ErrorCategory = "BUSINESS_RULE"
	CategoryClientError    ErrorCategory = "CLIENT_ERROR"
	CategoryConfiguration  ErrorCategory = "CONFIGURATION"
	CategoryInfrastructure ErrorCategory = "INFRASTRUCTURE"
)

// retryableError is implemented by transport errors that know whether the
// remote side may accept the same request again.
type retryableError interface {
	IsRetryable() bool
}

// CategorizeError determines error category for logging purposes. Service
// and domain codes take precedence over a wrapped context error, in the same
// order ToHTTPStatus and ToErrorCode use.
func CategorizeError(err error) ErrorCategory {
	if err == nil {
		return ""
	}

	if svcErr, ok := IsServiceError(err); ok {
		switch svcErr.Code {
		case ErrCodeInvalidInput:
			return CategoryClientError
		case ErrCodeInternal:
			return CategoryInfrastructure
		case ErrCodeTimeout, ErrCodeRateLimited:
			return CategoryTransient
		}
	}

	if domainErr, ok := domain.IsDomainError(err); ok {
		switch domainErr.Code {
		case domain.ErrCodeMissingRequiredField,
			domain.ErrCodeInvalidAmount,
			domain.ErrCodeInvalidCurrency:
			return CategoryClientError
		case domain.ErrCodeConfiguration:
			return CategoryConfiguration
		case domain.ErrCodeInvalidState,
			domain.ErrCodeAuthorizationNotFound:
			return CategoryBusinessRule
		case domain.ErrCodeUnsupportedOperation,
			domain.ErrCodeNotImplemented,
			domain.ErrCodeResponseFormat:
			return CategoryPermanent
		case domain.ErrCodeGatewayCommunication:
			var re retryableError
			if errors.As(err, &re) && !re.IsRetryable() {
				return CategoryPermanent
			}
			return CategoryInfrastructure
		}
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return CategoryTransient
	}

	return CategoryInfrastructure
}

// IsRetryable reports whether a caller may sensibly issue the same request
// again. Nothing in this module retries on its own.
func IsRetryable(err error) bool {
	category := CategorizeError(err)
	return category == CategoryTransient || category == CategoryInfrastructure
}

// ToHTTPStatus maps error to appropriate HTTP status code
func ToHTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}

	if svcErr, ok := IsServiceError(err); ok {
		return svcErr.HTTPStatus
	}

	if domainErr, ok := domain.IsDomainError(err); ok {
		switch domainErr.Code {
		case domain.ErrCodeMissingRequiredField,
			domain.ErrCodeInvalidAmount,
			domain.ErrCodeInvalidCurrency:
			return http.StatusBadRequest
		case domain.ErrCodeInvalidState:
			return http.StatusConflict
		case domain.ErrCodeAuthorizationNotFound:
			return http.StatusNotFound
		case domain.ErrCodeUnsupportedOperation:
			return http.StatusUnprocessableEntity
		case domain.ErrCodeNotImplemented:
			return http.StatusNotImplemented
		case domain.ErrCodeGatewayCommunication,
			domain.ErrCodeResponseFormat:
			return http.StatusBadGateway
		case domain.ErrCodeConfiguration:
			return http.StatusInternalServerError
		}
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return http.StatusRequestTimeout
	}

	return http.StatusInternalServerError
}

// ToErrorCode clear error code for API responses
func ToErrorCode(err error) string {
	if svcErr, ok := IsServiceError(err); ok {
		return svcErr.Code
	}

	if domainErr, ok := domain.IsDomainError(err); ok {
		return domainErr.Code
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return ErrCodeTimeout
	}

	return ErrCodeInternal
}

// ErrorFields returns the offending keys carried by err, if any.
func ErrorFields(err error) []string {
	if domainErr, ok := domain.IsDomainError(err); ok {
		return domainErr.Fields
	}
	return nil
}
