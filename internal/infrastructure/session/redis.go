package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/DanielPopoola/paypal-checkout/internal/config"
	"github.com/DanielPopoola/paypal-checkout/internal/domain"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "checkout:authorization:"

type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client: client,
		ttl:    ttl,
	}
}

// Connect opens a Redis client from the session configuration and verifies
// connectivity.
func Connect(ctx context.Context, cfg *config.SessionConfig, logger *slog.Logger) (*redis.Client, error) {
	logger.Info("connecting to redis",
		"addr", cfg.RedisAddr,
		"db", cfg.RedisDB,
	)

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.RedisAddr,
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		PoolSize:     20,
		MinIdleConns: 5,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("failed to ping redis", "error", err)
		client.Close()
		return nil, err
	}

	logger.Info("successfully connected to redis")
	return client, nil
}

func (s *RedisStore) Save(ctx context.Context, data *domain.AuthorizedData) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("error marshalling authorized data: %w", err)
	}

	if err := s.client.Set(ctx, key(data.OrderID), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save authorized data: %w", err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, orderID string) (*domain.AuthorizedData, error) {
	payload, err := s.client.Get(ctx, key(orderID)).Bytes()
	return decode(payload, err)
}

func (s *RedisStore) Take(ctx context.Context, orderID string) (*domain.AuthorizedData, error) {
	payload, err := s.client.GetDel(ctx, key(orderID)).Bytes()
	return decode(payload, err)
}

func decode(payload []byte, err error) (*domain.AuthorizedData, error) {
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrAuthorizationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read authorized data: %w", err)
	}

	var data domain.AuthorizedData
	if err := json.Unmarshal(payload, &data); err != nil {
		return nil, fmt.Errorf("error decoding authorized data: %w", err)
	}
	return &data, nil
}

func key(orderID string) string {
	return keyPrefix + orderID
}
