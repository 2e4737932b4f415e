package mocks

import (
	"context"

	"github.com/DanielPopoola/paypal-checkout/internal/domain"
	"github.com/stretchr/testify/mock"
)

// MockGatewayClient is a testify mock of application.GatewayClient.
type MockGatewayClient struct {
	mock.Mock
}

// NewMockGatewayClient registers expectation assertions on test cleanup.
func NewMockGatewayClient(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockGatewayClient {
	m := &MockGatewayClient{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockGatewayClient) CreateOrder(ctx context.Context, req domain.OrderRequest) (*domain.CreatedOrder, error) {
	args := m.Called(ctx, req)
	created, _ := args.Get(0).(*domain.CreatedOrder)
	return created, args.Error(1)
}

func (m *MockGatewayClient) GetOrder(ctx context.Context, orderID string) (*domain.GatewayOrder, error) {
	args := m.Called(ctx, orderID)
	order, _ := args.Get(0).(*domain.GatewayOrder)
	return order, args.Error(1)
}

func (m *MockGatewayClient) CaptureOrder(ctx context.Context, orderID string) (*domain.CaptureResult, error) {
	args := m.Called(ctx, orderID)
	result, _ := args.Get(0).(*domain.CaptureResult)
	return result, args.Error(1)
}
