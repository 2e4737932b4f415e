package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DanielPopoola/paypal-checkout/internal/api"
	"github.com/DanielPopoola/paypal-checkout/internal/application/services"
	"github.com/DanielPopoola/paypal-checkout/internal/config"
	"github.com/DanielPopoola/paypal-checkout/internal/domain"
	"github.com/DanielPopoola/paypal-checkout/internal/infrastructure/paypal"
	"github.com/DanielPopoola/paypal-checkout/internal/infrastructure/session"
	"github.com/DanielPopoola/paypal-checkout/internal/interfaces/rest/handlers"
	"github.com/DanielPopoola/paypal-checkout/internal/interfaces/rest/middleware"
	"github.com/stretchr/testify/require"
)

// envelope mirrors the response wrapper with a raw payload.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string   `json:"code"`
		Message string   `json:"message"`
		Details []string `json:"details"`
	} `json:"error"`
}

// startCheckout wires the checkout stack against the fake gateway the same
// way main does and serves it over HTTP.
func startCheckout(t *testing.T, gatewayURL string, strategy domain.CaptureStrategy) string {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	gatewayClient, _ := paypal.NewGatewayClient(config.PayPalConfig{
		Mode:         "sandbox",
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		BaseURL:      gatewayURL,
		Timeout:      5 * time.Second,
	}, logger)

	store := session.NewMemoryStore(time.Hour)
	checkout, err := services.NewCheckoutService(gatewayClient, store, services.CheckoutOptions{
		CaptureStrategy:    strategy,
		ShippingPreference: domain.ShippingNoShipping,
		UserAction:         domain.UserActionPayNow,
		ClientID:           "client-id",
		DefaultCurrency:    "EUR",
	}, logger)
	require.NoError(t, err)

	doc, err := api.LoadDocument(context.Background())
	require.NoError(t, err)
	validate, err := middleware.OpenAPIValidator(doc, logger)
	require.NoError(t, err)

	mux := http.NewServeMux()
	api.RegisterDocsRoutes(mux)
	handlers.NewHandlers(checkout, services.NewQueryService(store), logger).RegisterRoutes(mux)

	handler := validate(mux)
	handler = middleware.Recovery(logger)(handler)
	handler = middleware.Logging(logger)(handler)

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server.URL
}

// TestClient wraps HTTP calls to the checkout service
type TestClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewTestClient(baseURL string) *TestClient {
	return &TestClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *TestClient) do(t *testing.T, method, path string, body any) (int, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func (c *TestClient) StartPayment(t *testing.T, req api.StartPaymentRequest) (int, envelope) {
	return c.do(t, http.MethodPost, "/api/v1/checkout/orders", req)
}

func (c *TestClient) Callback(t *testing.T, cb domain.AuthorizationCallback) (int, envelope) {
	return c.do(t, http.MethodPost, "/api/v1/checkout/callback", cb)
}

func (c *TestClient) Capture(t *testing.T, orderID string, override *api.CaptureRequest) (int, envelope) {
	var body any
	if override != nil {
		body = override
	}
	return c.do(t, http.MethodPost, "/api/v1/checkout/orders/"+orderID+"/capture", body)
}

func (c *TestClient) Authorization(t *testing.T, orderID string) (int, envelope) {
	return c.do(t, http.MethodGet, "/api/v1/checkout/orders/"+orderID+"/authorization", nil)
}
