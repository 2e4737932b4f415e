package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/DanielPopoola/paypal-checkout/internal/application"
	"github.com/DanielPopoola/paypal-checkout/internal/domain"
	"github.com/go-playground/validator"
)

// CheckoutService is the payment method plus the SDK bootstrap helper.
type CheckoutService interface {
	application.PaymentMethod
	SDKLink(currency string) string
}

type AuthorizationQuery interface {
	FindAuthorization(ctx context.Context, orderID string) (*domain.AuthorizedData, error)
}

type Handlers struct {
	checkout CheckoutService
	query    AuthorizationQuery
	validate *validator.Validate
	logger   *slog.Logger
}

func NewHandlers(checkout CheckoutService, query AuthorizationQuery, logger *slog.Logger) *Handlers {
	return &Handlers{
		checkout: checkout,
		query:    query,
		validate: validator.New(),
		logger:   logger,
	}
}

func (h *Handlers) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/checkout/orders", h.HandleStartPayment)
	mux.HandleFunc("POST /api/v1/checkout/callback", h.HandleCallback)
	mux.HandleFunc("POST /api/v1/checkout/orders/{orderID}/capture", h.HandleCapture)
	mux.HandleFunc("GET /api/v1/checkout/orders/{orderID}/authorization", h.HandleGetAuthorization)
	mux.HandleFunc("POST /api/v1/checkout/credits", h.HandleCredit)
	mux.HandleFunc("GET /api/v1/checkout/sdk-link", h.HandleSDKLink)
}
