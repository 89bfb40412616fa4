package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/dealbridge/dealbridge/pkg/errors"
)

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time          { return f.now }
func (f *fakeClock) Advance(d time.Duration) { f.now = f.now.Add(d) }

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)}
}

type payload struct {
	Score int    `json:"score"`
	Note  string `json:"note"`
}

func TestMemoryStore_SetGet(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Set(ctx, "matches:b1:l1", payload{Score: 88, Note: "good"}, time.Minute))

	var got payload
	require.NoError(t, store.Get(ctx, "matches:b1:l1", &got))
	assert.Equal(t, payload{Score: 88, Note: "good"}, got)
}

func TestMemoryStore_Miss(t *testing.T) {
	t.Parallel()

	var got payload
	err := NewMemoryStore().Get(context.Background(), "nope", &got)
	assert.ErrorIs(t, err, ErrMiss)
}

func TestMemoryStore_LazyExpiry(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	clock := newFakeClock()
	store := NewMemoryStore(WithClock(clock.Now))

	require.NoError(t, store.Set(ctx, "k", payload{Score: 1}, time.Second))

	var got payload
	require.NoError(t, store.Get(ctx, "k", &got))

	clock.Advance(1100 * time.Millisecond)
	assert.ErrorIs(t, store.Get(ctx, "k", &got), ErrMiss)
	// Entry was physically removed on the expired read.
	assert.Equal(t, 0, store.Len())
}

func TestMemoryStore_NoTTLNeverExpires(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	clock := newFakeClock()
	store := NewMemoryStore(WithClock(clock.Now))

	require.NoError(t, store.Set(ctx, "k", payload{Score: 1}, 0))
	clock.Advance(1000 * time.Hour)

	var got payload
	assert.NoError(t, store.Get(ctx, "k", &got))
}

func TestMemoryStore_Delete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Set(ctx, "k", 1, time.Minute))

	existed, err := store.Delete(ctx, "k")
	require.NoError(t, err)
	assert.True(t, existed)

	existed, err = store.Delete(ctx, "k")
	require.NoError(t, err)
	assert.False(t, existed)
}

func TestMemoryStore_ClearPattern(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Set(ctx, "matches:b1:l1", 1, time.Minute))
	require.NoError(t, store.Set(ctx, "matches:b2:l1", 2, time.Minute))
	require.NoError(t, store.Set(ctx, "valuations:v1", 3, time.Minute))

	n, err := store.Clear(ctx, "matches:")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	var got int
	assert.ErrorIs(t, store.Get(ctx, "matches:b1:l1", &got), ErrMiss)
	assert.NoError(t, store.Get(ctx, "valuations:v1", &got))
}

func TestMemoryStore_ClearAll(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Set(ctx, "a", 1, time.Minute))
	require.NoError(t, store.Set(ctx, "b", 2, time.Minute))

	n, err := store.Clear(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 0, store.Len())
}

func TestMemoryStore_InvalidateByEvent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Set(ctx, MatchKey("b1", "l1"), 1, time.Minute))
	require.NoError(t, store.Set(ctx, RecommendationsKey("b1"), 2, time.Minute))
	require.NoError(t, store.Set(ctx, ValuationKey("v1"), 3, time.Minute))

	n, err := store.InvalidateByEvent(ctx, EventBuyerPreferenceUpdate)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	var got int
	assert.NoError(t, store.Get(ctx, ValuationKey("v1"), &got))
}

func TestMemoryStore_InvalidateByEvent_Unknown(t *testing.T) {
	t.Parallel()

	_, err := NewMemoryStore().InvalidateByEvent(context.Background(), "listing_exploded")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeCacheEventUnknown, apperrors.GetCode(err))
}

func TestMemoryStore_ConcurrentAccess(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := NewMemoryStore()

	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func(i int) {
			defer func() { done <- struct{}{} }()
			key := MatchKey("buyer", "listing")
			for j := 0; j < 200; j++ {
				_ = store.Set(ctx, key, payload{Score: i}, time.Minute)
				var got payload
				_ = store.Get(ctx, key, &got)
				_, _ = store.Delete(ctx, key)
			}
		}(i)
	}
	for i := 0; i < 8; i++ {
		<-done
	}
}
