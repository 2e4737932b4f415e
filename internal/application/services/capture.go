package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/DanielPopoola/paypal-checkout/internal/application"
	"github.com/DanielPopoola/paypal-checkout/internal/domain"
)

// restoreTimeout bounds the write that puts a claimed authorization back. The
// write is detached from the request context.
const restoreTimeout = 5 * time.Second

type CaptureService struct {
	gateway application.GatewayClient
	store   application.AuthorizationStore
	logger  *slog.Logger
}

func NewCaptureService(
	gateway application.GatewayClient,
	store application.AuthorizationStore,
	logger *slog.Logger,
) *CaptureService {
	return &CaptureService{
		gateway: gateway,
		store:   store,
		logger:  logger,
	}
}

// Capture transfers the funds of a previously authorized order. The
// authorization is claimed before the gateway call so a second capture of
// the same order fails with INVALID_STATE; it is put back if the call fails.
func (s *CaptureService) Capture(ctx context.Context, cmd CaptureCommand) (*domain.PaymentStatus, error) {
	if cmd.Override != nil {
		return nil, domain.NewUnsupportedOperationError("capturing an amount other than the order amount is not supported by the gateway")
	}
	if cmd.OrderID == "" {
		return nil, domain.NewStateError("capture attempted without prior authorization")
	}

	data, err := s.store.Take(ctx, cmd.OrderID)
	if err != nil {
		if errors.Is(err, domain.ErrAuthorizationNotFound) {
			return nil, domain.NewStateError(fmt.Sprintf("capture attempted without prior authorization for order %s", cmd.OrderID))
		}
		return nil, application.NewInternalError(err)
	}

	result, err := s.gateway.CaptureOrder(ctx, data.OrderID)
	if err != nil {
		s.restore(ctx, data)
		return nil, err
	}

	status := domain.NewPaymentStatus(data.MerchantReference, data.OrderID, domain.MapCaptureStatus(result.Status))

	capture, ok := result.FirstCapture()
	switch {
	case ok:
		if capture.CustomID != "" {
			status.MerchantReference = capture.CustomID
		}
		status.Extra[domain.ExtraTransactionID] = capture.ID
	case status.Kind == domain.StatusCleared:
		return nil, domain.NewResponseFormatError(
			fmt.Sprintf("completed capture of order %s carries no capture record", data.OrderID), nil,
		)
	}

	s.logger.Info("order captured",
		"order_id", data.OrderID,
		"gateway_status", result.Status,
		"status", status.Kind,
		"transaction_id", status.TransactionID(),
	)

	return status, nil
}

func (s *CaptureService) restore(ctx context.Context, data *domain.AuthorizedData) {
	restoreCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), restoreTimeout)
	defer cancel()

	if err := s.store.Save(restoreCtx, data); err != nil {
		s.logger.Error("failed to restore authorization after capture failure",
			"order_id", data.OrderID,
			"error", err,
		)
	}
}
