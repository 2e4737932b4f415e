package e2e

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/DanielPopoola/paypal-checkout/internal/api"
	"github.com/DanielPopoola/paypal-checkout/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type E2ETestSuite struct {
	suite.Suite
	paypal *FakePayPal
}

func TestE2ESuite(t *testing.T) {
	suite.Run(t, new(E2ETestSuite))
}

func (suite *E2ETestSuite) SetupTest() {
	suite.paypal = NewFakePayPal(suite.T())
}

func cart() api.StartPaymentRequest {
	return api.StartPaymentRequest{
		Currency:          "EUR",
		GrossAmount:       "49.99",
		ReturnURL:         "https://shop.example.com/ok",
		CancelURL:         "https://shop.example.com/cancel",
		Description:       "Order 42",
		InternalPaymentID: "INV-42",
	}
}

func (suite *E2ETestSuite) startOrder(client *TestClient) string {
	t := suite.T()

	code, env := client.StartPayment(t, cart())
	require.Equal(t, http.StatusCreated, code)

	var created api.StartPaymentResponse
	require.NoError(t, json.Unmarshal(env.Data, &created))
	require.NotEmpty(t, created.OrderID)
	assert.JSONEq(t, `"CREATED"`, string(mustField(t, created.Order, "status")))
	return created.OrderID
}

func mustField(t *testing.T, doc json.RawMessage, key string) json.RawMessage {
	t.Helper()
	var fields map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(doc, &fields))
	return fields[key]
}

func decodeStatus(t *testing.T, env envelope) domain.PaymentStatus {
	t.Helper()
	var status domain.PaymentStatus
	require.NoError(t, json.Unmarshal(env.Data, &status))
	return status
}

func (suite *E2ETestSuite) Test_ManualFlow_AuthorizeThenCapture() {
	t := suite.T()
	client := NewTestClient(startCheckout(t, suite.paypal.URL(), domain.CaptureStrategyManual))

	orderID := suite.startOrder(client)
	suite.paypal.Approve(orderID)

	code, env := client.Callback(t, domain.AuthorizationCallback{OrderID: orderID, PayerID: "BUYER1"})
	require.Equal(t, http.StatusOK, code)
	status := decodeStatus(t, env)
	assert.Equal(t, domain.StatusAuthorized, status.Kind)
	assert.Equal(t, "INV-42", status.MerchantReference)
	assert.Equal(t, 0, suite.paypal.Captures())

	code, env = client.Authorization(t, orderID)
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `"buyer@example.com"`, string(mustField(t, env.Data, "payer_email")))

	code, env = client.Capture(t, orderID, nil)
	require.Equal(t, http.StatusOK, code)
	status = decodeStatus(t, env)
	assert.Equal(t, domain.StatusCleared, status.Kind)
	assert.Equal(t, "CAP-"+orderID, status.TransactionID())

	code, env = client.Capture(t, orderID, nil)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, domain.ErrCodeInvalidState, env.Error.Code)
	assert.Equal(t, 1, suite.paypal.Captures())

	code, _ = client.Authorization(t, orderID)
	assert.Equal(t, http.StatusNotFound, code)
}

func (suite *E2ETestSuite) Test_AutomaticFlow_CapturesOnCallback() {
	t := suite.T()
	client := NewTestClient(startCheckout(t, suite.paypal.URL(), domain.CaptureStrategyAutomatic))

	orderID := suite.startOrder(client)
	suite.paypal.Approve(orderID)

	code, env := client.Callback(t, domain.AuthorizationCallback{OrderID: orderID, PayerID: "BUYER1"})

	require.Equal(t, http.StatusOK, code)
	status := decodeStatus(t, env)
	assert.Equal(t, domain.StatusCleared, status.Kind)
	assert.Equal(t, "CAP-"+orderID, status.TransactionID())
	assert.Equal(t, 1, suite.paypal.Captures())
}

func (suite *E2ETestSuite) Test_UnapprovedOrderIsCancelled() {
	t := suite.T()
	client := NewTestClient(startCheckout(t, suite.paypal.URL(), domain.CaptureStrategyManual))

	orderID := suite.startOrder(client)

	code, env := client.Callback(t, domain.AuthorizationCallback{OrderID: orderID, PayerID: "BUYER1"})

	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, domain.StatusCancelled, decodeStatus(t, env).Kind)
}

func (suite *E2ETestSuite) Test_AutomaticCaptureOfUnapprovedOrderFails() {
	t := suite.T()
	client := NewTestClient(startCheckout(t, suite.paypal.URL(), domain.CaptureStrategyAutomatic))

	orderID := suite.startOrder(client)

	code, env := client.Callback(t, domain.AuthorizationCallback{OrderID: orderID, PayerID: "BUYER1"})

	assert.Equal(t, http.StatusBadGateway, code)
	assert.Equal(t, domain.ErrCodeGatewayCommunication, env.Error.Code)
	assert.Contains(t, env.Error.Message, "ORDER_NOT_APPROVED")
}

func (suite *E2ETestSuite) Test_MissingFieldsAreReportedTogether() {
	t := suite.T()
	client := NewTestClient(startCheckout(t, suite.paypal.URL(), domain.CaptureStrategyManual))

	code, env := client.StartPayment(t, api.StartPaymentRequest{Currency: "EUR", GrossAmount: "10"})

	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, domain.ErrCodeMissingRequiredField, env.Error.Code)
	assert.Equal(t, []string{"return_url", "cancel_url", "description", "internalPaymentId"}, env.Error.Details)

	code, env = client.Callback(t, domain.AuthorizationCallback{})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, []string{"orderID", "payerID"}, env.Error.Details)
}

func (suite *E2ETestSuite) Test_NullFieldsAreReportedAsMissing() {
	t := suite.T()
	client := NewTestClient(startCheckout(t, suite.paypal.URL(), domain.CaptureStrategyManual))

	code, env := client.do(t, http.MethodPost, "/api/v1/checkout/orders", map[string]any{
		"currency":            "EUR",
		"gross_amount":        "49.99",
		"return_url":          nil,
		"cancel_url":          "https://shop.example.com/cancel",
		"description":         nil,
		"internal_payment_id": "INV-42",
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, domain.ErrCodeMissingRequiredField, env.Error.Code)
	assert.Equal(t, []string{"return_url", "description"}, env.Error.Details)

	code, env = client.do(t, http.MethodPost, "/api/v1/checkout/callback", map[string]any{
		"orderID": nil,
		"payerID": "QYR5Z8XDVJNXQ",
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, domain.ErrCodeMissingRequiredField, env.Error.Code)
	assert.Equal(t, []string{"orderID"}, env.Error.Details)
	assert.Zero(t, suite.paypal.Captures())
}

func (suite *E2ETestSuite) Test_CaptureOverrideIsUnsupported() {
	t := suite.T()
	client := NewTestClient(startCheckout(t, suite.paypal.URL(), domain.CaptureStrategyManual))

	code, env := client.Capture(t, "FAKE000001", &api.CaptureRequest{Currency: "EUR", GrossAmount: "10.00"})

	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Equal(t, domain.ErrCodeUnsupportedOperation, env.Error.Code)

	code, env = client.Capture(t, "FAKE000001", &api.CaptureRequest{Currency: "euro", GrossAmount: "ten"})

	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Equal(t, domain.ErrCodeUnsupportedOperation, env.Error.Code)
}

func (suite *E2ETestSuite) Test_RequestsOutsideTheContractAreRejected() {
	t := suite.T()
	client := NewTestClient(startCheckout(t, suite.paypal.URL(), domain.CaptureStrategyManual))

	req := cart()
	req.Currency = "euro"
	code, env := client.StartPayment(t, req)

	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "INVALID_INPUT", env.Error.Code)
}
