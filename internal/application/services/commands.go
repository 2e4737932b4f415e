package services

import "github.com/DanielPopoola/paypal-checkout/internal/domain"

type StartPaymentCommand struct {
	Price  domain.Price
	Fields domain.OrderFields
}

type CaptureCommand struct {
	OrderID string
	// Override is the amount a caller wants captured instead of the
	// order's amount. The gateway cannot do that, so any non-nil value
	// is rejected.
	Override *domain.Price
}
