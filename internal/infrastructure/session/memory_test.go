package session

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/DanielPopoola/paypal-checkout/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authorized(orderID string) *domain.AuthorizedData {
	return &domain.AuthorizedData{
		OrderID:           orderID,
		PayerID:           "PAYER-1",
		PayerEmail:        "buyer@example.com",
		MerchantReference: "INV-42",
	}
}

func TestMemoryStore_SaveGetTake(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Hour)

	require.NoError(t, store.Save(ctx, authorized("ORDER-1")))

	got, err := store.Get(ctx, "ORDER-1")
	require.NoError(t, err)
	assert.Equal(t, "buyer@example.com", got.PayerEmail)

	taken, err := store.Take(ctx, "ORDER-1")
	require.NoError(t, err)
	assert.Equal(t, "ORDER-1", taken.OrderID)

	_, err = store.Get(ctx, "ORDER-1")
	assert.ErrorIs(t, err, domain.ErrAuthorizationNotFound)

	_, err = store.Take(ctx, "ORDER-1")
	assert.ErrorIs(t, err, domain.ErrAuthorizationNotFound)
}

func TestMemoryStore_KeepsOrdersApart(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Hour)

	require.NoError(t, store.Save(ctx, authorized("ORDER-1")))
	second := authorized("ORDER-2")
	second.PayerEmail = "other@example.com"
	require.NoError(t, store.Save(ctx, second))

	first, err := store.Get(ctx, "ORDER-1")
	require.NoError(t, err)
	assert.Equal(t, "buyer@example.com", first.PayerEmail)

	other, err := store.Get(ctx, "ORDER-2")
	require.NoError(t, err)
	assert.Equal(t, "other@example.com", other.PayerEmail)
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Hour)
	data := authorized("ORDER-1")
	require.NoError(t, store.Save(ctx, data))

	data.PayerEmail = "mutated@example.com"
	got, err := store.Get(ctx, "ORDER-1")
	require.NoError(t, err)
	got.PayerID = "mutated"

	again, err := store.Get(ctx, "ORDER-1")
	require.NoError(t, err)
	assert.Equal(t, "buyer@example.com", again.PayerEmail)
	assert.Equal(t, "PAYER-1", again.PayerID)
}

func TestMemoryStore_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	store := NewMemoryStore(time.Minute)
	store.now = func() time.Time { return now }

	require.NoError(t, store.Save(ctx, authorized("ORDER-1")))
	require.NoError(t, store.Save(ctx, authorized("ORDER-2")))

	now = now.Add(30 * time.Second)
	_, err := store.Get(ctx, "ORDER-1")
	require.NoError(t, err)

	now = now.Add(time.Minute)
	_, err = store.Get(ctx, "ORDER-1")
	assert.ErrorIs(t, err, domain.ErrAuthorizationNotFound)

	assert.Equal(t, 1, store.PurgeExpired())
	assert.Equal(t, 0, store.PurgeExpired())
}

func TestMemoryStore_TakeIsExclusive(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Hour)
	require.NoError(t, store.Save(ctx, authorized("ORDER-1")))

	var wins atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := store.Take(ctx, "ORDER-1"); err == nil {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins.Load())
}
