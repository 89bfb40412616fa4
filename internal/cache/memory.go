package cache

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	apperrors "github.com/dealbridge/dealbridge/pkg/errors"
)

// entry is one cached value.  A zero expiresAt means no expiry.
type entry struct {
	data      []byte
	expiresAt time.Time
}

func (e entry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// MemoryStore is a mutex-guarded in-process TTL cache with lazy expiry.
// Suitable for a single instance only; multi-instance deployments use
// RedisStore so invalidation reaches every node.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time
}

// MemoryOption configures a MemoryStore.
type MemoryOption func(*MemoryStore)

// WithClock injects the time source, letting tests control expiry.
func WithClock(now func() time.Time) MemoryOption {
	return func(m *MemoryStore) { m.now = now }
}

// NewMemoryStore builds an empty in-memory store.
func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	m := &MemoryStore{
		entries: make(map[string]entry),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *MemoryStore) Get(_ context.Context, key string, dest any) error {
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()

	if !ok {
		return ErrMiss
	}
	if e.expired(m.now()) {
		// Lazy expiry: drop the stale entry so it is never served again.
		m.mu.Lock()
		if cur, still := m.entries[key]; still && cur.expired(m.now()) {
			delete(m.entries, key)
		}
		m.mu.Unlock()
		return ErrMiss
	}

	if err := json.Unmarshal(e.data, dest); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeCacheError, "failed to decode cached value")
	}
	return nil
}

func (m *MemoryStore) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeCacheError, "failed to encode value for cache")
	}

	e := entry{data: data}
	if ttl > 0 {
		e.expiresAt = m.now().Add(ttl)
	}

	m.mu.Lock()
	m.entries[key] = e
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.entries[key]
	delete(m.entries, key)
	return ok, nil
}

func (m *MemoryStore) Clear(_ context.Context, pattern string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if pattern == "" {
		n := len(m.entries)
		m.entries = make(map[string]entry)
		return n, nil
	}

	n := 0
	for key := range m.entries {
		if strings.Contains(key, pattern) {
			delete(m.entries, key)
			n++
		}
	}
	return n, nil
}

func (m *MemoryStore) InvalidateByEvent(ctx context.Context, event string) (int, error) {
	return invalidateByEvent(ctx, m, event)
}

// Len reports the number of live entries, counting out expired ones.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	now := m.now()
	n := 0
	for _, e := range m.entries {
		if !e.expired(now) {
			n++
		}
	}
	return n
}
