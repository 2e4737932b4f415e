package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/url"

	"github.com/DanielPopoola/paypal-checkout/internal/application"
	"github.com/DanielPopoola/paypal-checkout/internal/domain"
)

const (
	PaymentMethodName = "PayPalSmartButton"
	defaultSDKHost    = "www.paypal.com"
)

// CheckoutOptions is the per-merchant configuration of the checkout flow.
type CheckoutOptions struct {
	CaptureStrategy    domain.CaptureStrategy
	ShippingPreference domain.ShippingPreference
	UserAction         domain.UserAction
	ClientID           string
	SDKHost            string
	DefaultCurrency    string
}

// CheckoutService composes order creation, callback handling and capture
// behind the PaymentMethod capability set.
type CheckoutService struct {
	gateway    application.GatewayClient
	authorizer *AuthorizeService
	capturer   *CaptureService
	opts       CheckoutOptions
	logger     *slog.Logger
}

var _ application.PaymentMethod = (*CheckoutService)(nil)

func NewCheckoutService(
	gateway application.GatewayClient,
	store application.AuthorizationStore,
	opts CheckoutOptions,
	logger *slog.Logger,
) (*CheckoutService, error) {
	capturer := NewCaptureService(gateway, store, logger)

	authorizer, err := NewAuthorizeService(gateway, store, capturer, opts.CaptureStrategy, logger)
	if err != nil {
		return nil, err
	}

	if opts.SDKHost == "" {
		opts.SDKHost = defaultSDKHost
	}

	return &CheckoutService{
		gateway:    gateway,
		authorizer: authorizer,
		capturer:   capturer,
		opts:       opts,
		logger:     logger,
	}, nil
}

func (s *CheckoutService) Name() string {
	return PaymentMethodName
}

// StartPayment creates the gateway order and hands its body back verbatim.
func (s *CheckoutService) StartPayment(ctx context.Context, price domain.Price, fields domain.OrderFields) (*application.StartPaymentResult, error) {
	return s.startPayment(ctx, StartPaymentCommand{Price: price, Fields: fields})
}

func (s *CheckoutService) startPayment(ctx context.Context, cmd StartPaymentCommand) (*application.StartPaymentResult, error) {
	req, err := domain.BuildOrderRequest(cmd.Price, cmd.Fields, s.applicationContext())
	if err != nil {
		return nil, err
	}

	created, err := s.gateway.CreateOrder(ctx, req)
	if err != nil {
		return nil, err
	}

	if !json.Valid(created.Raw) {
		return nil, domain.NewResponseFormatError("created order is not a JSON document", nil)
	}

	s.logger.Info("gateway order created",
		"order_id", created.ID,
		"internal_payment_id", cmd.Fields.InternalPaymentID,
		"currency", cmd.Price.Currency,
		"amount", cmd.Price.Value(),
	)

	return &application.StartPaymentResult{
		OrderID: created.ID,
		Order:   created.Raw,
	}, nil
}

func (s *CheckoutService) HandleResponse(ctx context.Context, cb domain.AuthorizationCallback) (*domain.PaymentStatus, error) {
	return s.authorizer.Handle(ctx, cb)
}

func (s *CheckoutService) ExecuteDebit(ctx context.Context, orderID string, override *domain.Price) (*domain.PaymentStatus, error) {
	return s.capturer.Capture(ctx, CaptureCommand{OrderID: orderID, Override: override})
}

// ExecuteCredit is not offered by this payment method.
func (s *CheckoutService) ExecuteCredit(ctx context.Context, price domain.Price, reference, transactionID string) (*domain.PaymentStatus, error) {
	return nil, domain.NewNotImplementedError("credit")
}

// SDKLink returns the browser SDK bootstrap URL. An empty currency falls
// back to the configured default.
func (s *CheckoutService) SDKLink(currency string) string {
	if currency == "" {
		currency = s.opts.DefaultCurrency
	}

	query := url.Values{}
	query.Set("client-id", s.opts.ClientID)
	query.Set("currency", currency)

	u := url.URL{
		Scheme:   "https",
		Host:     s.opts.SDKHost,
		Path:     "/sdk/js",
		RawQuery: query.Encode(),
	}
	return u.String()
}

func (s *CheckoutService) applicationContext() domain.ApplicationContext {
	return domain.ApplicationContext{
		ShippingPreference: s.opts.ShippingPreference,
		UserAction:         s.opts.UserAction,
	}
}
