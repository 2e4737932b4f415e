package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DanielPopoola/paypal-checkout/internal/api"
	"github.com/DanielPopoola/paypal-checkout/internal/application"
	"github.com/DanielPopoola/paypal-checkout/internal/application/services"
	"github.com/DanielPopoola/paypal-checkout/internal/config"
	"github.com/DanielPopoola/paypal-checkout/internal/domain"
	"github.com/DanielPopoola/paypal-checkout/internal/infrastructure/paypal"
	"github.com/DanielPopoola/paypal-checkout/internal/infrastructure/session"
	"github.com/DanielPopoola/paypal-checkout/internal/interfaces/rest/handlers"
	"github.com/DanielPopoola/paypal-checkout/internal/interfaces/rest/middleware"
	"github.com/DanielPopoola/paypal-checkout/internal/worker"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// idle rate-limit buckets are forgotten after this long
const visitorIdleTimeout = 3 * time.Minute

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := cfg.Logger.NewLogger()
	slog.SetDefault(logger)

	logger.Info("starting checkout service",
		"port", cfg.Server.Port,
		"log_level", cfg.Logger.Level,
		"paypal_mode", cfg.PayPal.Mode,
		"capture_strategy", cfg.PayPal.CaptureStrategy,
		"session_backend", cfg.Session.Backend,
	)

	ctx := context.Background()

	gatewayClient, tokens := paypal.NewGatewayClient(cfg.PayPal, logger)

	// Fail fast on bad credentials rather than on the first checkout.
	warmupCtx, cancelWarmup := context.WithTimeout(ctx, cfg.PayPal.Timeout)
	_, err = tokens.Token(warmupCtx)
	cancelWarmup()
	if err != nil {
		logger.Error("failed to acquire gateway token", "error", err)
		os.Exit(1)
	}

	janitor := worker.NewJanitor(cfg.Session.PurgeInterval, logger)

	var store application.AuthorizationStore
	switch cfg.Session.Backend {
	case "redis":
		client, err := session.Connect(ctx, &cfg.Session, logger)
		if err != nil {
			logger.Error("failed to connect to redis", "error", err)
			os.Exit(1)
		}
		defer client.Close()
		store = session.NewRedisStore(client, cfg.Session.TTL)
	default:
		memoryStore := session.NewMemoryStore(cfg.Session.TTL)
		janitor.Register("authorizations", memoryStore)
		store = memoryStore
	}

	checkoutService, err := services.NewCheckoutService(gatewayClient, store, services.CheckoutOptions{
		CaptureStrategy:    domain.CaptureStrategy(cfg.PayPal.CaptureStrategy),
		ShippingPreference: domain.ShippingPreference(cfg.PayPal.ShippingPreference),
		UserAction:         domain.UserAction(cfg.PayPal.UserAction),
		ClientID:           cfg.PayPal.ClientID,
		SDKHost:            cfg.PayPal.SDKHost,
		DefaultCurrency:    cfg.PayPal.DefaultCurrency,
	}, logger)
	if err != nil {
		logger.Error("failed to configure checkout", "error", err)
		os.Exit(1)
	}
	queryService := services.NewQueryService(store)

	h := handlers.NewHandlers(checkoutService, queryService, logger)

	doc, err := api.LoadDocument(ctx)
	if err != nil {
		logger.Error("failed to load openapi document", "error", err)
		os.Exit(1)
	}
	validate, err := middleware.OpenAPIValidator(doc, logger)
	if err != nil {
		logger.Error("failed to build request validator", "error", err)
		os.Exit(1)
	}

	mux := http.NewServeMux()
	api.RegisterDocsRoutes(mux)
	h.RegisterRoutes(mux)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	janitor.Register("rate_limit_visitors", worker.PurgerFunc(func() int {
		return limiter.Prune(visitorIdleTimeout)
	}))

	router := http.Handler(mux)

	handler := validate(router)
	handler = middleware.Recovery(logger)(handler)
	handler = limiter.Middleware(logger)(handler)
	handler = middleware.Logging(logger)(handler)
	handler = middleware.Timeout(cfg.Server.ReadTimeout)(handler)

	server := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	defer cancelWorkers()

	go janitor.Start(workerCtx)

	go func() {
		logger.Info("server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	cancelWorkers()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}
