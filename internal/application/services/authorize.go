package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/DanielPopoola/paypal-checkout/internal/application"
	"github.com/DanielPopoola/paypal-checkout/internal/domain"
)

type AuthorizeService struct {
	gateway  application.GatewayClient
	store    application.AuthorizationStore
	capturer *CaptureService
	strategy domain.CaptureStrategy
	logger   *slog.Logger
	now      func() time.Time
}

func NewAuthorizeService(
	gateway application.GatewayClient,
	store application.AuthorizationStore,
	capturer *CaptureService,
	strategy domain.CaptureStrategy,
	logger *slog.Logger,
) (*AuthorizeService, error) {
	if _, err := domain.ParseCaptureStrategy(string(strategy)); err != nil {
		return nil, err
	}

	return &AuthorizeService{
		gateway:  gateway,
		store:    store,
		capturer: capturer,
		strategy: strategy,
		logger:   logger,
		now:      time.Now,
	}, nil
}

// Handle verifies a client callback against the gateway's order record and
// either reports the authorization or captures right away, depending on
// the capture strategy.
func (s *AuthorizeService) Handle(ctx context.Context, cb domain.AuthorizationCallback) (*domain.PaymentStatus, error) {
	if err := cb.Validate(); err != nil {
		return nil, err
	}

	order, err := s.gateway.GetOrder(ctx, cb.OrderID)
	if err != nil {
		return nil, err
	}
	if order.ID != "" && order.ID != cb.OrderID {
		return nil, domain.NewResponseFormatError(
			fmt.Sprintf("gateway returned order %s for callback order %s", order.ID, cb.OrderID), nil,
		)
	}

	data := domain.NewAuthorizedData(cb, order, s.now())
	if err := s.store.Save(ctx, data); err != nil {
		return nil, application.NewInternalError(err)
	}

	s.logger.Info("order authorization verified",
		"order_id", data.OrderID,
		"payer_id", data.PayerID,
		"gateway_status", order.Status,
		"capture_strategy", s.strategy,
	)

	switch s.strategy {
	case domain.CaptureStrategyManual:
		return domain.NewPaymentStatus(data.MerchantReference, cb.OrderID, domain.MapOrderStatus(order.Status)), nil
	case domain.CaptureStrategyAutomatic:
		return s.capturer.Capture(ctx, CaptureCommand{OrderID: cb.OrderID})
	default:
		return nil, domain.NewUnknownCaptureStrategyError(string(s.strategy))
	}
}
