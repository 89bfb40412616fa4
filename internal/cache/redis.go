package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/dealbridge/dealbridge/pkg/errors"
)

// scanBatchSize bounds each SCAN round trip during Clear.
const scanBatchSize = 200

// RedisStore is the shared cache backend: same contract as MemoryStore but
// visible to every instance, with TTL handled by Redis itself.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore wraps an existing client.  prefix namespaces all keys so
// multiple applications can share one Redis.
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

func (r *RedisStore) key(k string) string {
	return r.prefix + k
}

func (r *RedisStore) Get(ctx context.Context, key string, dest any) error {
	data, err := r.client.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrMiss
	}
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeCacheUnavailable, "cache read failed")
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeCacheError, "failed to decode cached value")
	}
	return nil
}

func (r *RedisStore) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeCacheError, "failed to encode value for cache")
	}

	if ttl < 0 {
		ttl = 0 // redis treats 0 as no expiry
	}
	if err := r.client.Set(ctx, r.key(key), data, ttl).Err(); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeCacheUnavailable, "cache write failed")
	}
	return nil
}

func (r *RedisStore) Delete(ctx context.Context, key string) (bool, error) {
	n, err := r.client.Del(ctx, r.key(key)).Result()
	if err != nil {
		return false, apperrors.Wrap(err, apperrors.ErrCodeCacheUnavailable, "cache delete failed")
	}
	return n > 0, nil
}

func (r *RedisStore) Clear(ctx context.Context, pattern string) (int, error) {
	match := r.prefix + "*"
	if pattern != "" {
		match = r.prefix + "*" + pattern + "*"
	}

	total := 0
	var cursor uint64
	for {
		keys, next, err := r.client.Scan(ctx, cursor, match, scanBatchSize).Result()
		if err != nil {
			return total, apperrors.Wrap(err, apperrors.ErrCodeCacheUnavailable, "cache scan failed")
		}
		if len(keys) > 0 {
			n, err := r.client.Del(ctx, keys...).Result()
			if err != nil {
				return total, apperrors.Wrap(err, apperrors.ErrCodeCacheUnavailable, "cache clear failed")
			}
			total += int(n)
		}
		cursor = next
		if cursor == 0 {
			return total, nil
		}
	}
}

func (r *RedisStore) InvalidateByEvent(ctx context.Context, event string) (int, error) {
	return invalidateByEvent(ctx, r, event)
}
