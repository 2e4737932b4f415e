package services

import (
	"context"

	"github.com/DanielPopoola/paypal-checkout/internal/application"
	"github.com/DanielPopoola/paypal-checkout/internal/domain"
)

type QueryService struct {
	store application.AuthorizationStore
}

func NewQueryService(store application.AuthorizationStore) *QueryService {
	return &QueryService{
		store: store,
	}
}

// FindAuthorization returns the payer identity verified for an order that
// has not been captured yet.
func (s *QueryService) FindAuthorization(ctx context.Context, orderID string) (*domain.AuthorizedData, error) {
	if orderID == "" {
		return nil, domain.NewMissingRequiredFieldError("orderID")
	}
	return s.store.Get(ctx, orderID)
}
