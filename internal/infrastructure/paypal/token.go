package paypal

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/DanielPopoola/paypal-checkout/internal/application"
	"github.com/DanielPopoola/paypal-checkout/internal/domain"
	"github.com/DanielPopoola/paypal-checkout/internal/infrastructure/metrics"
)

const (
	tokenPath = "/v1/oauth2/token"
	// tokens are refreshed this long before the gateway expires them
	tokenExpiryMargin = time.Minute
)

// OAuthTokenProvider acquires client-credentials tokens and caches them
// until shortly before they expire.
type OAuthTokenProvider struct {
	baseURL      string
	clientID     string
	clientSecret string
	httpClient   *http.Client
	logger       *slog.Logger
	now          func() time.Time

	mu        sync.Mutex
	token     string
	expiresAt time.Time
}

var _ application.TokenProvider = (*OAuthTokenProvider)(nil)

func NewOAuthTokenProvider(baseURL, clientID, clientSecret string, httpClient *http.Client, logger *slog.Logger) *OAuthTokenProvider {
	return &OAuthTokenProvider{
		baseURL:      strings.TrimRight(baseURL, "/"),
		clientID:     clientID,
		clientSecret: clientSecret,
		httpClient:   httpClient,
		logger:       logger,
		now:          time.Now,
	}
}

func (p *OAuthTokenProvider) Token(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.token != "" && p.now().Before(p.expiresAt) {
		return p.token, nil
	}

	token, err := p.acquire(ctx)
	if err != nil {
		return "", err
	}

	p.token = token.AccessToken
	p.expiresAt = p.now().Add(time.Duration(token.ExpiresIn)*time.Second - tokenExpiryMargin)

	p.logger.Debug("acquired gateway access token", "expires_in", token.ExpiresIn)
	return p.token, nil
}

// Invalidate drops the cached token so the next call acquires a new one.
func (p *OAuthTokenProvider) Invalidate() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.token = ""
	p.expiresAt = time.Time{}
}

func (p *OAuthTokenProvider) acquire(ctx context.Context) (*domain.AccessToken, error) {
	start := time.Now()
	outcome := metrics.OutcomeTransportError
	defer func() {
		metrics.ObserveGatewayCall("token", outcome, time.Since(start))
	}()

	form := url.Values{}
	form.Set("grant_type", "client_credentials")

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+tokenPath, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, domain.NewGatewayCommunicationError("error creating token request", err)
	}
	httpReq.SetBasicAuth(p.clientID, p.clientSecret)
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return nil, domain.NewGatewayCommunicationError("token acquisition failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.NewGatewayCommunicationError("error reading token response", err)
	}

	var token domain.AccessToken
	if err := json.Unmarshal(body, &token); err != nil {
		outcome = metrics.OutcomeFormatError
		return nil, domain.NewGatewayCommunicationError(
			fmt.Sprintf("token endpoint returned status %d: %s", resp.StatusCode, string(body)), err,
		)
	}

	if token.AccessToken == "" {
		outcome = metrics.OutcomeGatewayError
		gwErr := gatewayErrorResponse{
			Error:            token.Error,
			ErrorDescription: token.ErrorDescription,
		}.toError(resp.StatusCode)
		return nil, domain.NewGatewayCommunicationError(
			fmt.Sprintf("%s check PayPal configuration", token.ErrorDescription), gwErr,
		)
	}

	outcome = metrics.OutcomeSuccess
	return &token, nil
}
