package api

import (
	"encoding/json"

	"github.com/DanielPopoola/paypal-checkout/internal/domain"
)

type StartPaymentRequest struct {
	Currency          string `json:"currency" validate:"required,len=3" example:"EUR"`
	GrossAmount       string `json:"gross_amount" validate:"required" example:"49.99"`
	ReturnURL         string `json:"return_url" example:"https://shop.example.com/checkout/ok"`
	CancelURL         string `json:"cancel_url" example:"https://shop.example.com/checkout/cancel"`
	Description       string `json:"description" example:"Order 42"`
	InternalPaymentID string `json:"internal_payment_id" example:"INV-42"`
}

// Fields returns the merchant metadata; absent keys stay empty and are
// reported by the order builder.
func (r StartPaymentRequest) Fields() domain.OrderFields {
	return domain.OrderFields{
		ReturnURL:         r.ReturnURL,
		CancelURL:         r.CancelURL,
		Description:       r.Description,
		InternalPaymentID: r.InternalPaymentID,
	}
}

type StartPaymentResponse struct {
	OrderID string          `json:"order_id"`
	Order   json.RawMessage `json:"order"`
}

// CaptureRequest carries an optional amount override.
type CaptureRequest struct {
	Currency    string `json:"currency"`
	GrossAmount string `json:"gross_amount"`
}

func (r CaptureRequest) IsEmpty() bool {
	return r.Currency == "" && r.GrossAmount == ""
}

// Override returns the requested amount, or nil when none was given. A
// malformed amount is still an override and keeps only its currency.
func (r CaptureRequest) Override() *domain.Price {
	if r.IsEmpty() {
		return nil
	}
	price, err := domain.ParsePrice(r.GrossAmount, r.Currency)
	if err != nil {
		return &domain.Price{Currency: r.Currency}
	}
	return &price
}

type CreditRequest struct {
	Currency      string `json:"currency" validate:"required,len=3"`
	GrossAmount   string `json:"gross_amount" validate:"required"`
	Reference     string `json:"reference"`
	TransactionID string `json:"transaction_id"`
}

type SDKLinkResponse struct {
	URL string `json:"url"`
}
