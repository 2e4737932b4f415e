package paypal_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/DanielPopoola/paypal-checkout/internal/config"
	"github.com/DanielPopoola/paypal-checkout/internal/domain"
	"github.com/DanielPopoola/paypal-checkout/internal/infrastructure/metrics"
	"github.com/DanielPopoola/paypal-checkout/internal/infrastructure/paypal"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeGateway serves the token endpoint plus whatever order routes a test
// registers.
type fakeGateway struct {
	mux         *http.ServeMux
	server      *httptest.Server
	tokenCalls  atomic.Int32
	tokenStatus int
	tokenBody   string
}

func newFakeGateway(t *testing.T) *fakeGateway {
	g := &fakeGateway{
		mux:         http.NewServeMux(),
		tokenStatus: http.StatusOK,
		tokenBody:   `{"access_token":"A21AAtoken","token_type":"Bearer","expires_in":32400}`,
	}

	g.mux.HandleFunc("POST /v1/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		g.tokenCalls.Add(1)

		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "client-id", user)
		assert.Equal(t, "client-secret", pass)

		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "client_credentials", r.PostForm.Get("grant_type"))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(g.tokenStatus)
		_, _ = io.WriteString(w, g.tokenBody)
	})

	g.server = httptest.NewServer(g.mux)
	t.Cleanup(g.server.Close)
	return g
}

func (g *fakeGateway) client() *paypal.HTTPGatewayClient {
	client, _ := paypal.NewGatewayClient(config.PayPalConfig{
		Mode:         "sandbox",
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		BaseURL:      g.server.URL,
		Timeout:      5 * time.Second,
	}, testLogger())
	return client
}

func TestGatewayClient_CreateOrder(t *testing.T) {
	g := newFakeGateway(t)
	respBody := `{"id":"5O190127TN364715T","status":"CREATED","links":[{"rel":"approve","href":"https://www.paypal.com/checkoutnow?token=5O190127TN364715T"}]}`

	g.mux.HandleFunc("POST /v2/checkout/orders", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer A21AAtoken", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req domain.OrderRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "CAPTURE", req.Intent)
		if assert.Len(t, req.PurchaseUnits, 1) {
			assert.Equal(t, "INV-42", req.PurchaseUnits[0].CustomID)
			assert.Equal(t, "49.99", req.PurchaseUnits[0].Amount.Value)
		}

		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, respBody)
	})

	price, err := domain.ParsePrice("49.99", "EUR")
	require.NoError(t, err)
	req, err := domain.BuildOrderRequest(price, domain.OrderFields{
		ReturnURL:         "https://x/ok",
		CancelURL:         "https://x/no",
		Description:       "Order 42",
		InternalPaymentID: "INV-42",
	}, domain.ApplicationContext{})
	require.NoError(t, err)

	created, err := g.client().CreateOrder(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, "5O190127TN364715T", created.ID)
	assert.Equal(t, "CREATED", created.Status)
	assert.Equal(t, respBody, string(created.Raw))
}

func TestGatewayClient_CreateOrder_NotJSON(t *testing.T) {
	g := newFakeGateway(t)
	g.mux.HandleFunc("POST /v2/checkout/orders", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, "<html>maintenance</html>")
	})

	success := metrics.GatewayRequestsTotal.WithLabelValues("create_order", metrics.OutcomeSuccess)
	formatErr := metrics.GatewayRequestsTotal.WithLabelValues("create_order", metrics.OutcomeFormatError)
	successBefore := testutil.ToFloat64(success)
	formatBefore := testutil.ToFloat64(formatErr)

	_, err := g.client().CreateOrder(context.Background(), domain.OrderRequest{Intent: "CAPTURE"})

	assert.True(t, domain.IsErrorCode(err, domain.ErrCodeResponseFormat))
	assert.Equal(t, successBefore, testutil.ToFloat64(success))
	assert.Equal(t, formatBefore+1, testutil.ToFloat64(formatErr))
}

func TestGatewayClient_GetOrder(t *testing.T) {
	g := newFakeGateway(t)
	g.mux.HandleFunc("GET /v2/checkout/orders/{id}", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "ORDER/1", r.PathValue("id"))
		assert.Equal(t, "Bearer A21AAtoken", r.Header.Get("Authorization"))

		_, _ = io.WriteString(w, `{
			"id": "ORDER/1",
			"status": "APPROVED",
			"intent": "CAPTURE",
			"payer": {
				"payer_id": "QYR5Z8XDVJNXQ",
				"email_address": "buyer@example.com",
				"name": {"given_name": "Jane", "surname": "Doe"}
			},
			"purchase_units": [{"reference_id": "default", "custom_id": "INV-42"}]
		}`)
	})

	order, err := g.client().GetOrder(context.Background(), "ORDER/1")

	require.NoError(t, err)
	assert.Equal(t, "APPROVED", order.Status)
	require.NotNil(t, order.Payer)
	assert.Equal(t, "buyer@example.com", order.Payer.EmailAddress)
	assert.Equal(t, "Jane", order.Payer.Name.GivenName)
	assert.Equal(t, "Doe", order.Payer.Name.Surname)
	assert.Equal(t, "INV-42", order.PurchaseUnits[0].CustomID)
}

func TestGatewayClient_CaptureOrder(t *testing.T) {
	g := newFakeGateway(t)
	g.mux.HandleFunc("POST /v2/checkout/orders/{id}/capture", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "ORDER-1", r.PathValue("id"))
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{
			"id": "ORDER-1",
			"status": "COMPLETED",
			"purchase_units": [{
				"reference_id": "default",
				"payments": {"captures": [{
					"id": "3C679366HH908993F",
					"status": "COMPLETED",
					"custom_id": "INV-42",
					"amount": {"currency_code": "EUR", "value": "49.99"}
				}]}
			}]
		}`)
	})

	result, err := g.client().CaptureOrder(context.Background(), "ORDER-1")

	require.NoError(t, err)
	assert.Equal(t, "COMPLETED", result.Status)
	capture, ok := result.FirstCapture()
	require.True(t, ok)
	assert.Equal(t, "3C679366HH908993F", capture.ID)
	assert.Equal(t, "INV-42", capture.CustomID)
}

func TestGatewayClient_ErrorResponse(t *testing.T) {
	g := newFakeGateway(t)
	g.mux.HandleFunc("POST /v2/checkout/orders/{id}/capture", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = io.WriteString(w, `{"name":"UNPROCESSABLE_ENTITY","message":"The requested action could not be performed.","debug_id":"f0b1b2"}`)
	})

	_, err := g.client().CaptureOrder(context.Background(), "ORDER-1")

	require.Error(t, err)
	assert.True(t, domain.IsErrorCode(err, domain.ErrCodeGatewayCommunication))

	gwErr, ok := paypal.IsGatewayError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnprocessableEntity, gwErr.StatusCode)
	assert.Equal(t, "UNPROCESSABLE_ENTITY", gwErr.Name)
	assert.Equal(t, "f0b1b2", gwErr.DebugID)
	assert.False(t, gwErr.IsRetryable())
}

func TestGatewayClient_TransportFailure(t *testing.T) {
	g := newFakeGateway(t)
	client := g.client()
	g.server.Close()

	_, err := client.GetOrder(context.Background(), "ORDER-1")

	assert.True(t, domain.IsErrorCode(err, domain.ErrCodeGatewayCommunication))
}

func TestGatewayClient_ReusesToken(t *testing.T) {
	g := newFakeGateway(t)
	g.mux.HandleFunc("GET /v2/checkout/orders/{id}", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"id":"ORDER-1","status":"APPROVED"}`)
	})
	client := g.client()

	for i := 0; i < 3; i++ {
		_, err := client.GetOrder(context.Background(), "ORDER-1")
		require.NoError(t, err)
	}

	assert.Equal(t, int32(1), g.tokenCalls.Load())
}

func TestGatewayClient_UnauthorizedDropsToken(t *testing.T) {
	g := newFakeGateway(t)
	var calls atomic.Int32
	g.mux.HandleFunc("GET /v2/checkout/orders/{id}", func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = io.WriteString(w, `{"error":"invalid_token","error_description":"Token signature verification failed"}`)
			return
		}
		_, _ = io.WriteString(w, `{"id":"ORDER-1","status":"APPROVED"}`)
	})
	client := g.client()

	_, err := client.GetOrder(context.Background(), "ORDER-1")
	require.Error(t, err)

	_, err = client.GetOrder(context.Background(), "ORDER-1")
	require.NoError(t, err)

	assert.Equal(t, int32(2), g.tokenCalls.Load())
}
