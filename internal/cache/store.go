// Package cache provides the TTL result cache used to avoid recomputing
// match scores and valuations: a Store interface with in-memory and Redis
// implementations, substring-pattern clearing, and event-driven
// invalidation.
package cache

import (
	"context"
	"time"

	apperrors "github.com/dealbridge/dealbridge/pkg/errors"
)

// ErrMiss is returned by Get when the key is absent or has expired.
var ErrMiss = apperrors.New(apperrors.ErrCodeCacheMiss, "cache miss")

// Store is the result-cache contract.  Implementations must be safe for
// concurrent use; reads past an entry's TTL must behave exactly like a
// miss.
type Store interface {
	// Get unmarshals the cached value for key into dest.  Returns ErrMiss
	// when the key is absent or expired.
	Get(ctx context.Context, key string, dest any) error

	// Set stores value under key for ttl.  A non-positive ttl stores the
	// entry without expiry.
	Set(ctx context.Context, key string, value any, ttl time.Duration) error

	// Delete removes key, reporting whether it existed.
	Delete(ctx context.Context, key string) (bool, error)

	// Clear removes every key containing pattern as a substring, or all
	// keys when pattern is empty.  Returns the number of keys removed.
	Clear(ctx context.Context, pattern string) (int, error)

	// InvalidateByEvent clears the key patterns registered for a
	// marketplace event name.  Returns the number of keys removed, or an
	// error for an unrecognized event.
	InvalidateByEvent(ctx context.Context, event string) (int, error)
}

// Key builders keep cache key shapes consistent across services.

// MatchKey is the cache key for one (buyer, listing) match score.
func MatchKey(buyerID, listingID string) string {
	return "matches:" + buyerID + ":" + listingID
}

// ValuationKey is the cache key for a valuation result.
func ValuationKey(fingerprint string) string {
	return "valuations:" + fingerprint
}

// RecommendationsKey is the cache key for a buyer's recommendation list.
func RecommendationsKey(buyerID string) string {
	return "recommendations:" + buyerID
}
