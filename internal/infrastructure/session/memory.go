package session

import (
	"context"
	"sync"
	"time"

	"github.com/DanielPopoola/paypal-checkout/internal/domain"
)

type memoryEntry struct {
	data      domain.AuthorizedData
	expiresAt time.Time
}

// MemoryStore keeps authorized data in process. It suits a single
// instance; use RedisStore when callback and capture may hit different
// instances.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *MemoryStore) Save(_ context.Context, data *domain.AuthorizedData) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[data.OrderID] = memoryEntry{
		data:      *data,
		expiresAt: s.now().Add(s.ttl),
	}
	return nil
}

func (s *MemoryStore) Get(_ context.Context, orderID string) (*domain.AuthorizedData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.lookup(orderID)
	if !ok {
		return nil, domain.ErrAuthorizationNotFound
	}
	data := entry.data
	return &data, nil
}

func (s *MemoryStore) Take(_ context.Context, orderID string) (*domain.AuthorizedData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.lookup(orderID)
	if !ok {
		return nil, domain.ErrAuthorizationNotFound
	}
	delete(s.entries, orderID)
	data := entry.data
	return &data, nil
}

// PurgeExpired drops expired entries and returns how many were removed.
func (s *MemoryStore) PurgeExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, entry := range s.entries {
		if s.ttl > 0 && !now.Before(entry.expiresAt) {
			delete(s.entries, id)
			removed++
		}
	}
	return removed
}

// lookup must be called with mu held.
func (s *MemoryStore) lookup(orderID string) (memoryEntry, bool) {
	entry, ok := s.entries[orderID]
	if !ok {
		return memoryEntry{}, false
	}
	if s.ttl > 0 && !s.now().Before(entry.expiresAt) {
		delete(s.entries, orderID)
		return memoryEntry{}, false
	}
	return entry, true
}
