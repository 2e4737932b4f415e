package domain

import (
	"errors"
	"fmt"
	"strings"
)

// DomainError represents a checkout lifecycle error
type DomainError struct {
	Code    string
	Message string
	// Fields lists every offending key for MISSING_REQUIRED_FIELD and
	// every violated option for CONFIGURATION_ERROR.
	Fields []string
	Err    error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *DomainError) Unwrap() error {
	return e.Err
}

const (
	ErrCodeMissingRequiredField  = "MISSING_REQUIRED_FIELD"
	ErrCodeConfiguration         = "CONFIGURATION_ERROR"
	ErrCodeInvalidState          = "INVALID_STATE"
	ErrCodeUnsupportedOperation  = "UNSUPPORTED_OPERATION"
	ErrCodeNotImplemented        = "NOT_IMPLEMENTED"
	ErrCodeGatewayCommunication  = "GATEWAY_COMMUNICATION"
	ErrCodeResponseFormat        = "RESPONSE_FORMAT"
	ErrCodeInvalidAmount         = "INVALID_AMOUNT"
	ErrCodeInvalidCurrency       = "INVALID_CURRENCY"
	ErrCodeAuthorizationNotFound = "AUTHORIZATION_NOT_FOUND"
)

// ErrAuthorizationNotFound is returned by authorization stores when no
// authorized data exists for an order id.
var ErrAuthorizationNotFound = &DomainError{
	Code:    ErrCodeAuthorizationNotFound,
	Message: "no authorized data for order",
}

func NewMissingRequiredFieldError(fields ...string) *DomainError {
	return &DomainError{
		Code:    ErrCodeMissingRequiredField,
		Message: fmt.Sprintf("required fields are missing: %s", strings.Join(fields, ", ")),
		Fields:  fields,
	}
}

func NewConfigurationError(message string, fields ...string) *DomainError {
	return &DomainError{
		Code:    ErrCodeConfiguration,
		Message: message,
		Fields:  fields,
	}
}

func NewUnknownCaptureStrategyError(strategy string) *DomainError {
	return NewConfigurationError(fmt.Sprintf("unknown capture strategy %q", strategy), "capture_strategy")
}

func NewStateError(message string) *DomainError {
	return &DomainError{
		Code:    ErrCodeInvalidState,
		Message: message,
	}
}

func NewUnsupportedOperationError(message string) *DomainError {
	return &DomainError{
		Code:    ErrCodeUnsupportedOperation,
		Message: message,
	}
}

func NewNotImplementedError(operation string) *DomainError {
	return &DomainError{
		Code:    ErrCodeNotImplemented,
		Message: fmt.Sprintf("%s is not implemented", operation),
	}
}

func NewGatewayCommunicationError(message string, err error) *DomainError {
	return &DomainError{
		Code:    ErrCodeGatewayCommunication,
		Message: message,
		Err:     err,
	}
}

func NewResponseFormatError(message string, err error) *DomainError {
	return &DomainError{
		Code:    ErrCodeResponseFormat,
		Message: message,
		Err:     err,
	}
}

func NewInvalidAmountError(amount string) *DomainError {
	return &DomainError{
		Code:    ErrCodeInvalidAmount,
		Message: fmt.Sprintf("invalid amount %q", amount),
	}
}

func NewInvalidCurrencyError(currency string) *DomainError {
	return &DomainError{
		Code:    ErrCodeInvalidCurrency,
		Message: fmt.Sprintf("invalid currency code %q", currency),
	}
}

// IsErrorCode checks if an error is a DomainError with a specific code
func IsErrorCode(err error, code string) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == code
	}
	return false
}

// IsDomainError unwraps err into a *DomainError.
func IsDomainError(err error) (*DomainError, bool) {
	var domainErr *DomainError
	ok := errors.As(err, &domainErr)
	return domainErr, ok
}
