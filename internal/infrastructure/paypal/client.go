package paypal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/DanielPopoola/paypal-checkout/internal/application"
	"github.com/DanielPopoola/paypal-checkout/internal/config"
	"github.com/DanielPopoola/paypal-checkout/internal/domain"
	"github.com/DanielPopoola/paypal-checkout/internal/infrastructure/metrics"
)

const (
	createOrderPath  = "/v2/checkout/orders"
	getOrderPath     = "/v2/checkout/orders/%s"
	captureOrderPath = "/v2/checkout/orders/%s/capture"
)

// tokenInvalidator is implemented by token providers that cache tokens.
type tokenInvalidator interface {
	Invalidate()
}

type HTTPGatewayClient struct {
	baseURL    string
	httpClient *http.Client
	tokens     application.TokenProvider
	logger     *slog.Logger
}

var _ application.GatewayClient = (*HTTPGatewayClient)(nil)

// NewGatewayClient builds the order API client and its token provider from
// the PayPal configuration.
func NewGatewayClient(cfg config.PayPalConfig, logger *slog.Logger) (*HTTPGatewayClient, *OAuthTokenProvider) {
	httpClient := &http.Client{
		Timeout: cfg.Timeout,
	}
	baseURL := cfg.APIBaseURL()

	tokens := NewOAuthTokenProvider(baseURL, cfg.ClientID, cfg.ClientSecret, httpClient, logger)
	return NewHTTPGatewayClient(baseURL, httpClient, tokens, logger), tokens
}

func NewHTTPGatewayClient(baseURL string, httpClient *http.Client, tokens application.TokenProvider, logger *slog.Logger) *HTTPGatewayClient {
	return &HTTPGatewayClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		tokens:     tokens,
		logger:     logger,
	}
}

type createdOrderResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

func (c *HTTPGatewayClient) CreateOrder(ctx context.Context, req domain.OrderRequest) (*domain.CreatedOrder, error) {
	raw, elapsed, err := c.do(ctx, "create_order", http.MethodPost, createOrderPath, req)
	if err != nil {
		return nil, err
	}

	created, err := decode[createdOrderResponse]("create_order", raw, elapsed)
	if err != nil {
		return nil, err
	}

	return &domain.CreatedOrder{
		ID:     created.ID,
		Status: created.Status,
		Raw:    raw,
	}, nil
}

func (c *HTTPGatewayClient) GetOrder(ctx context.Context, orderID string) (*domain.GatewayOrder, error) {
	return sendRequest[domain.GatewayOrder](c, ctx, "get_order", http.MethodGet, fmt.Sprintf(getOrderPath, url.PathEscape(orderID)), nil)
}

func (c *HTTPGatewayClient) CaptureOrder(ctx context.Context, orderID string) (*domain.CaptureResult, error) {
	return sendRequest[domain.CaptureResult](c, ctx, "capture_order", http.MethodPost, fmt.Sprintf(captureOrderPath, url.PathEscape(orderID)), nil)
}

func sendRequest[Resp any](c *HTTPGatewayClient, ctx context.Context, operation, method, path string, reqBody any) (*Resp, error) {
	raw, elapsed, err := c.do(ctx, operation, method, path, reqBody)
	if err != nil {
		return nil, err
	}
	return decode[Resp](operation, raw, elapsed)
}

// decode records the outcome of a call whose 2xx body came back from do.
func decode[Resp any](operation string, raw []byte, elapsed time.Duration) (*Resp, error) {
	var resp Resp
	if err := json.Unmarshal(raw, &resp); err != nil {
		metrics.ObserveGatewayCall(operation, metrics.OutcomeFormatError, elapsed)
		return nil, domain.NewResponseFormatError(fmt.Sprintf("error decoding %s response", operation), err)
	}
	metrics.ObserveGatewayCall(operation, metrics.OutcomeSuccess, elapsed)
	return &resp, nil
}

// do performs one authenticated round trip and returns the raw 2xx body with
// its latency. Failed calls are recorded here; successful ones by decode.
func (c *HTTPGatewayClient) do(ctx context.Context, operation, method, path string, reqBody any) ([]byte, time.Duration, error) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, 0, err
	}

	var bodyReader io.Reader
	if reqBody != nil {
		jsonData, err := json.Marshal(reqBody)
		if err != nil {
			return nil, 0, fmt.Errorf("error marshalling json: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, 0, fmt.Errorf("error creating request: %w", err)
	}

	httpReq.Header.Set("Authorization", "Bearer "+token)
	httpReq.Header.Set("Accept", "application/json")
	if method != http.MethodGet {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		metrics.ObserveGatewayCall(operation, metrics.OutcomeTransportError, time.Since(start))
		c.logger.Error("gateway request failed", "operation", operation, "error", err)
		return nil, 0, domain.NewGatewayCommunicationError(fmt.Sprintf("gateway %s request failed", operation), err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.ObserveGatewayCall(operation, metrics.OutcomeTransportError, time.Since(start))
		return nil, 0, domain.NewGatewayCommunicationError(fmt.Sprintf("error reading %s response", operation), err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.ObserveGatewayCall(operation, metrics.OutcomeGatewayError, time.Since(start))

		if resp.StatusCode == http.StatusUnauthorized {
			if inv, ok := c.tokens.(tokenInvalidator); ok {
				inv.Invalidate()
			}
		}

		gwErr := &GatewayError{StatusCode: resp.StatusCode, Message: string(body)}
		var errResp gatewayErrorResponse
		if err := json.Unmarshal(body, &errResp); err == nil {
			gwErr = errResp.toError(resp.StatusCode)
		}

		c.logger.Warn("gateway returned error",
			"operation", operation,
			"status_code", resp.StatusCode,
			"name", gwErr.Name,
			"debug_id", gwErr.DebugID,
		)
		return nil, 0, domain.NewGatewayCommunicationError(fmt.Sprintf("gateway %s failed", operation), gwErr)
	}

	if len(bytes.TrimSpace(body)) == 0 {
		metrics.ObserveGatewayCall(operation, metrics.OutcomeFormatError, time.Since(start))
		return nil, 0, domain.NewGatewayCommunicationError(fmt.Sprintf("gateway %s returned an empty body", operation), nil)
	}

	return body, time.Since(start), nil
}
