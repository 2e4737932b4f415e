// Package domain encodes the checkout lifecycle of a gateway order and the
// payment status reported back to order management.
package domain

import "time"

// StatusKind is the merchant-side payment status vocabulary
type StatusKind string

const (
	StatusAuthorized StatusKind = "AUTHORIZED"
	StatusCleared    StatusKind = "CLEARED"
	StatusCancelled  StatusKind = "CANCELLED"
)

// ExtraTransactionID is the Extra key holding the gateway capture id.
const ExtraTransactionID = "transactionId"

// PaymentStatus is the only artifact handed back to order management.
// It carries no amount.
type PaymentStatus struct {
	MerchantReference string            `json:"merchant_reference"`
	GatewayOrderID    string            `json:"gateway_order_id"`
	Note              string            `json:"note"`
	Kind              StatusKind        `json:"status"`
	Extra             map[string]string `json:"extra"`
}

func NewPaymentStatus(reference, orderID string, kind StatusKind) *PaymentStatus {
	return &PaymentStatus{
		MerchantReference: reference,
		GatewayOrderID:    orderID,
		Kind:              kind,
		Extra:             map[string]string{},
	}
}

func (s *PaymentStatus) TransactionID() string {
	return s.Extra[ExtraTransactionID]
}

// AuthorizationCallback is what the front end reports after the payer
// approved the order. Nothing else from the client is trusted.
type AuthorizationCallback struct {
	OrderID string `json:"orderID"`
	PayerID string `json:"payerID"`
}

// Validate reports every missing key at once.
func (c AuthorizationCallback) Validate() error {
	var missing []string
	if c.OrderID == "" {
		missing = append(missing, "orderID")
	}
	if c.PayerID == "" {
		missing = append(missing, "payerID")
	}
	if len(missing) > 0 {
		return NewMissingRequiredFieldError(missing...)
	}
	return nil
}

// AuthorizedData is the payer identity confirmed by a gateway order lookup.
type AuthorizedData struct {
	OrderID           string    `json:"order_id"`
	PayerID           string    `json:"payer_id"`
	PayerEmail        string    `json:"payer_email"`
	PayerGivenName    string    `json:"payer_given_name"`
	PayerSurname      string    `json:"payer_surname"`
	MerchantReference string    `json:"merchant_reference"`
	AuthorizedAt      time.Time `json:"authorized_at"`
}

// NewAuthorizedData combines a validated callback with the gateway's order
// record. It is the only constructor for AuthorizedData.
func NewAuthorizedData(cb AuthorizationCallback, order *GatewayOrder, now time.Time) *AuthorizedData {
	data := &AuthorizedData{
		OrderID:      cb.OrderID,
		PayerID:      cb.PayerID,
		AuthorizedAt: now,
	}
	if order.Payer != nil {
		data.PayerEmail = order.Payer.EmailAddress
		data.PayerGivenName = order.Payer.Name.GivenName
		data.PayerSurname = order.Payer.Name.Surname
	}
	if len(order.PurchaseUnits) > 0 {
		data.MerchantReference = order.PurchaseUnits[0].CustomID
	}
	return data
}
