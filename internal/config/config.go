package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/DanielPopoola/paypal-checkout/internal/domain"
	"github.com/go-playground/validator"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
)

const envPrefix = "CHECKOUT_"

type Config struct {
	Primary   Primary         `koanf:"primary"`
	Server    ServerConfig    `koanf:"server"`
	PayPal    PayPalConfig    `koanf:"paypal"`
	Session   SessionConfig   `koanf:"session"`
	Logger    LoggerConfig    `koanf:"logger"`
	RateLimit RateLimitConfig `koanf:"rate_limit"`
}

type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

type ServerConfig struct {
	Port         string        `koanf:"port" validate:"required"`
	ReadTimeout  time.Duration `koanf:"read_timeout" validate:"required"`
	WriteTimeout time.Duration `koanf:"write_timeout" validate:"required"`
	IdleTimeout  time.Duration `koanf:"idle_timeout" validate:"required"`
}

type PayPalConfig struct {
	Mode               string        `koanf:"mode" validate:"required,oneof=sandbox production"`
	ClientID           string        `koanf:"client_id" validate:"required"`
	ClientSecret       string        `koanf:"client_secret" validate:"required"`
	ShippingPreference string        `koanf:"shipping_preference" validate:"required,oneof=GET_FROM_FILE NO_SHIPPING SET_PROVIDED_ADDRESS"`
	UserAction         string        `koanf:"user_action" validate:"required,oneof=CONTINUE PAY_NOW"`
	CaptureStrategy    string        `koanf:"capture_strategy" validate:"required,oneof=manual automatic"`
	BaseURL            string        `koanf:"base_url" validate:"omitempty,url"`
	SDKHost            string        `koanf:"sdk_host" validate:"required"`
	DefaultCurrency    string        `koanf:"default_currency" validate:"required,len=3"`
	Timeout            time.Duration `koanf:"timeout" validate:"required"`
}

type SessionConfig struct {
	Backend       string        `koanf:"backend" validate:"required,oneof=memory redis"`
	TTL           time.Duration `koanf:"ttl" validate:"required"`
	PurgeInterval time.Duration `koanf:"purge_interval" validate:"required"`
	RedisAddr     string        `koanf:"redis_addr"`
	RedisPassword string        `koanf:"redis_password"`
	RedisDB       int           `koanf:"redis_db" validate:"min=0"`
}

type LoggerConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format" validate:"omitempty,oneof=json text"`
}

type RateLimitConfig struct {
	RPS   float64 `koanf:"rps" validate:"min=0"`
	Burst int     `koanf:"burst" validate:"min=0"`
}

const (
	sandboxBaseURL    = "https://api-m.sandbox.paypal.com"
	productionBaseURL = "https://api.paypal.com"
)

// APIBaseURL returns the configured base URL, or the gateway host for the
// configured mode.
func (c PayPalConfig) APIBaseURL() string {
	if c.BaseURL != "" {
		return strings.TrimRight(c.BaseURL, "/")
	}
	if c.Mode == "production" {
		return productionBaseURL
	}
	return sandboxBaseURL
}

// Defaults mirrors the documented defaults of every optional key.
func Defaults() map[string]interface{} {
	return map[string]interface{}{
		"primary.env":                "development",
		"server.port":                "8080",
		"server.read_timeout":        15 * time.Second,
		"server.write_timeout":       15 * time.Second,
		"server.idle_timeout":        60 * time.Second,
		"paypal.mode":                "sandbox",
		"paypal.shipping_preference": string(domain.ShippingNoShipping),
		"paypal.user_action":         string(domain.UserActionPayNow),
		"paypal.capture_strategy":    string(domain.CaptureStrategyAutomatic),
		"paypal.sdk_host":            "www.paypal.com",
		"paypal.default_currency":    "EUR",
		"paypal.timeout":             30 * time.Second,
		"session.backend":            "memory",
		"session.ttl":                3 * time.Hour,
		"session.purge_interval":     5 * time.Minute,
		"session.redis_db":           0,
		"logger.level":               "info",
		"logger.format":              "json",
		"rate_limit.rps":             10.0,
		"rate_limit.burst":           20,
	}
}

func LoadConfig() (*Config, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(Defaults(), "."), nil); err != nil {
		logger.Error("failed to load defaults", "error", err)
		return nil, err
	}

	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, envPrefix)),
			"__",
			".",
		)
	}), nil)
	if err != nil {
		logger.Error("failed to load environment variables", "error", err)
		return nil, err
	}

	mainConfig := &Config{}

	err = k.Unmarshal("", mainConfig)
	if err != nil {
		logger.Error("could not unmarshal main config", "error", err)
		return nil, err
	}

	if err := Validate(mainConfig); err != nil {
		logger.Error("config validation failed", "error", err)
		return nil, err
	}

	return mainConfig, nil
}

// Validate checks cfg and reports every violation in a single
// CONFIGURATION_ERROR.
func Validate(cfg *Config) error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("koanf"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	var violations []string

	err := validate.Struct(cfg)
	if err != nil {
		var validationErrs validator.ValidationErrors
		if !errors.As(err, &validationErrs) {
			return err
		}
		for _, fe := range validationErrs {
			violations = append(violations, violation(fe))
		}
	}

	if cfg.Session.Backend == "redis" && cfg.Session.RedisAddr == "" {
		violations = append(violations, "session.redis_addr: required when session.backend is redis")
	}

	if len(violations) == 0 {
		return nil
	}

	sort.Strings(violations)
	return domain.NewConfigurationError(
		fmt.Sprintf("invalid configuration: %s", strings.Join(violations, "; ")),
		violations...,
	)
}

func violation(fe validator.FieldError) string {
	key := fe.Namespace()
	if i := strings.Index(key, "."); i >= 0 {
		key = key[i+1:]
	}

	switch fe.Tag() {
	case "required":
		return key + ": must not be empty"
	case "oneof":
		return fmt.Sprintf("%s: %q is not one of [%s]", key, fe.Value(), fe.Param())
	default:
		return fmt.Sprintf("%s: failed %s=%s", key, fe.Tag(), fe.Param())
	}
}

// NewLogger builds the process logger from the configured level and format.
func (c LoggerConfig) NewLogger() *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Level)); err != nil {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if c.Format == "text" {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}
