package config_test

import (
	"testing"
	"time"

	"github.com/DanielPopoola/paypal-checkout/internal/config"
	"github.com/DanielPopoola/paypal-checkout/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setCredentials(t *testing.T) {
	t.Setenv("CHECKOUT_PAYPAL__CLIENT_ID", "client-123")
	t.Setenv("CHECKOUT_PAYPAL__CLIENT_SECRET", "secret-456")
}

func TestLoadConfig_Defaults(t *testing.T) {
	setCredentials(t)

	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "sandbox", cfg.PayPal.Mode)
	assert.Equal(t, "NO_SHIPPING", cfg.PayPal.ShippingPreference)
	assert.Equal(t, "PAY_NOW", cfg.PayPal.UserAction)
	assert.Equal(t, "automatic", cfg.PayPal.CaptureStrategy)
	assert.Equal(t, "client-123", cfg.PayPal.ClientID)
	assert.Equal(t, "secret-456", cfg.PayPal.ClientSecret)
	assert.Equal(t, "https://api-m.sandbox.paypal.com", cfg.PayPal.APIBaseURL())
	assert.Equal(t, "memory", cfg.Session.Backend)
	assert.Equal(t, 3*time.Hour, cfg.Session.TTL)
	assert.Equal(t, 5*time.Minute, cfg.Session.PurgeInterval)
	assert.Equal(t, "8080", cfg.Server.Port)
}

func TestLoadConfig_EnvironmentOverrides(t *testing.T) {
	setCredentials(t)
	t.Setenv("CHECKOUT_PAYPAL__MODE", "production")
	t.Setenv("CHECKOUT_PAYPAL__CAPTURE_STRATEGY", "manual")
	t.Setenv("CHECKOUT_PAYPAL__USER_ACTION", "CONTINUE")
	t.Setenv("CHECKOUT_PAYPAL__TIMEOUT", "5s")
	t.Setenv("CHECKOUT_SESSION__BACKEND", "redis")
	t.Setenv("CHECKOUT_SESSION__REDIS_ADDR", "localhost:6379")
	t.Setenv("CHECKOUT_SERVER__PORT", "9090")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.PayPal.Mode)
	assert.Equal(t, "https://api.paypal.com", cfg.PayPal.APIBaseURL())
	assert.Equal(t, "manual", cfg.PayPal.CaptureStrategy)
	assert.Equal(t, "CONTINUE", cfg.PayPal.UserAction)
	assert.Equal(t, 5*time.Second, cfg.PayPal.Timeout)
	assert.Equal(t, "redis", cfg.Session.Backend)
	assert.Equal(t, "localhost:6379", cfg.Session.RedisAddr)
	assert.Equal(t, "9090", cfg.Server.Port)
}

func TestLoadConfig_MissingCredentials(t *testing.T) {
	t.Setenv("CHECKOUT_PAYPAL__CLIENT_ID", "")
	t.Setenv("CHECKOUT_PAYPAL__CLIENT_SECRET", "")

	_, err := config.LoadConfig()

	domainErr, ok := domain.IsDomainError(err)
	require.True(t, ok)
	assert.Equal(t, domain.ErrCodeConfiguration, domainErr.Code)
	assert.Contains(t, domainErr.Fields, "paypal.client_id: must not be empty")
	assert.Contains(t, domainErr.Fields, "paypal.client_secret: must not be empty")
}

func TestValidate_AllowedValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(cfg *config.Config)
		want   string
	}{
		{
			name:   "mode",
			mutate: func(cfg *config.Config) { cfg.PayPal.Mode = "staging" },
			want:   "paypal.mode",
		},
		{
			name:   "shipping preference",
			mutate: func(cfg *config.Config) { cfg.PayPal.ShippingPreference = "SHIP_IT" },
			want:   "paypal.shipping_preference",
		},
		{
			name:   "user action",
			mutate: func(cfg *config.Config) { cfg.PayPal.UserAction = "WAIT" },
			want:   "paypal.user_action",
		},
		{
			name:   "capture strategy",
			mutate: func(cfg *config.Config) { cfg.PayPal.CaptureStrategy = "eventually" },
			want:   "paypal.capture_strategy",
		},
		{
			name:   "redis without address",
			mutate: func(cfg *config.Config) { cfg.Session.Backend = "redis" },
			want:   "session.redis_addr",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := config.Validate(cfg)

			domainErr, ok := domain.IsDomainError(err)
			require.True(t, ok)
			assert.Equal(t, domain.ErrCodeConfiguration, domainErr.Code)
			require.Len(t, domainErr.Fields, 1)
			assert.Contains(t, domainErr.Fields[0], tt.want)
		})
	}
}

func TestValidate_ReportsEveryViolation(t *testing.T) {
	cfg := validConfig()
	cfg.PayPal.Mode = ""
	cfg.PayPal.ClientID = ""
	cfg.PayPal.UserAction = "WAIT"

	err := config.Validate(cfg)

	domainErr, ok := domain.IsDomainError(err)
	require.True(t, ok)
	assert.Len(t, domainErr.Fields, 3)
}

func TestValidate_Valid(t *testing.T) {
	assert.NoError(t, config.Validate(validConfig()))
}

func validConfig() *config.Config {
	return &config.Config{
		Primary: config.Primary{Env: "test"},
		Server: config.ServerConfig{
			Port:         "8080",
			ReadTimeout:  time.Second,
			WriteTimeout: time.Second,
			IdleTimeout:  time.Second,
		},
		PayPal: config.PayPalConfig{
			Mode:               "sandbox",
			ClientID:           "client",
			ClientSecret:       "secret",
			ShippingPreference: "NO_SHIPPING",
			UserAction:         "PAY_NOW",
			CaptureStrategy:    "automatic",
			SDKHost:            "www.paypal.com",
			DefaultCurrency:    "EUR",
			Timeout:            time.Second,
		},
		Session: config.SessionConfig{
			Backend:       "memory",
			TTL:           time.Hour,
			PurgeInterval: time.Minute,
		},
	}
}
