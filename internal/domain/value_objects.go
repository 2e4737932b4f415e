package domain

import (
	"github.com/shopspring/decimal"
)

// Price is the gross amount of a cart in a single currency
type Price struct {
	Gross    decimal.Decimal
	Currency string
}

func NewPrice(gross decimal.Decimal, currency string) (Price, error) {
	if gross.IsNegative() {
		return Price{}, NewInvalidAmountError(gross.String())
	}
	if !isCurrencyCode(currency) {
		return Price{}, NewInvalidCurrencyError(currency)
	}
	return Price{Gross: gross, Currency: currency}, nil
}

// ParsePrice builds a Price from its string representation, e.g. "49.99".
func ParsePrice(gross, currency string) (Price, error) {
	amount, err := decimal.NewFromString(gross)
	if err != nil {
		return Price{}, NewInvalidAmountError(gross)
	}
	return NewPrice(amount, currency)
}

// Value formats the gross amount with exactly two fraction digits.
func (p Price) Value() string {
	return p.Gross.StringFixed(2)
}

func isCurrencyCode(code string) bool {
	if len(code) != 3 {
		return false
	}
	for _, c := range code {
		if c < 'A' || c > 'Z' {
			return false
		}
	}
	return true
}

// CaptureStrategy selects whether capture is chained onto authorization
type CaptureStrategy string

const (
	CaptureStrategyManual    CaptureStrategy = "manual"
	CaptureStrategyAutomatic CaptureStrategy = "automatic"
)

func ParseCaptureStrategy(s string) (CaptureStrategy, error) {
	switch CaptureStrategy(s) {
	case CaptureStrategyManual, CaptureStrategyAutomatic:
		return CaptureStrategy(s), nil
	default:
		return "", NewUnknownCaptureStrategyError(s)
	}
}

type ShippingPreference string

const (
	ShippingGetFromFile        ShippingPreference = "GET_FROM_FILE"
	ShippingNoShipping         ShippingPreference = "NO_SHIPPING"
	ShippingSetProvidedAddress ShippingPreference = "SET_PROVIDED_ADDRESS"
)

type UserAction string

const (
	UserActionContinue UserAction = "CONTINUE"
	UserActionPayNow   UserAction = "PAY_NOW"
)
