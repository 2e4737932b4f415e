package application

import (
	"context"

	"github.com/DanielPopoola/paypal-checkout/internal/domain"
)

// GatewayClient is the port for the payment gateway's order API.
type GatewayClient interface {
	CreateOrder(ctx context.Context, req domain.OrderRequest) (*domain.CreatedOrder, error)
	GetOrder(ctx context.Context, orderID string) (*domain.GatewayOrder, error)
	CaptureOrder(ctx context.Context, orderID string) (*domain.CaptureResult, error)
}

// TokenProvider acquires the bearer token used by the GatewayClient.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}

// AuthorizationStore holds AuthorizedData between callback and capture,
// keyed by gateway order id.
type AuthorizationStore interface {
	Save(ctx context.Context, data *domain.AuthorizedData) error
	Get(ctx context.Context, orderID string) (*domain.AuthorizedData, error)
	// Take atomically removes and returns the entry so only one caller can
	// capture a given order.
	Take(ctx context.Context, orderID string) (*domain.AuthorizedData, error)
}

// StartPaymentResult is returned to the caller after the gateway order
// has been created.
type StartPaymentResult struct {
	OrderID string
	Order   []byte
}

// PaymentMethod is the capability set every gateway variant implements.
type PaymentMethod interface {
	Name() string
	StartPayment(ctx context.Context, price domain.Price, fields domain.OrderFields) (*StartPaymentResult, error)
	HandleResponse(ctx context.Context, cb domain.AuthorizationCallback) (*domain.PaymentStatus, error)
	ExecuteDebit(ctx context.Context, orderID string, override *domain.Price) (*domain.PaymentStatus, error)
	ExecuteCredit(ctx context.Context, price domain.Price, reference, transactionID string) (*domain.PaymentStatus, error)
}
