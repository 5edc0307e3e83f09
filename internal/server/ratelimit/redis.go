package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// keyPrefix namespaces quota counters in Redis.
const keyPrefix = "quota:"

// RedisStore keeps quota counters in Redis so that multiple replicas share
// limits. INCR is atomic, which gives the compare-and-increment guarantee;
// the first hit in a window arms the expiry that implements the rolling
// 24-hour reset. The counter may climb past the limit under rejected
// traffic, which is harmless: every request beyond the limit is denied and
// the key still expires on schedule.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a Redis-backed counter store.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Take implements Store.
func (s *RedisStore) Take(ctx context.Context, key string, limit int, window time.Duration) (Decision, error) {
	k := keyPrefix + key

	n, err := s.client.Incr(ctx, k).Result()
	if err != nil {
		return Decision{}, fmt.Errorf("incr %s: %w", k, err)
	}
	if n == 1 {
		if err := s.client.PExpire(ctx, k, window).Err(); err != nil {
			return Decision{}, fmt.Errorf("expire %s: %w", k, err)
		}
	}

	ttl, err := s.client.PTTL(ctx, k).Result()
	if err != nil {
		return Decision{}, fmt.Errorf("pttl %s: %w", k, err)
	}
	if ttl < 0 {
		// Expiry got lost (e.g. the PExpire above raced a flush). Re-arm it
		// rather than leaving an immortal counter.
		ttl = window
		if err := s.client.PExpire(ctx, k, window).Err(); err != nil {
			return Decision{}, fmt.Errorf("re-expire %s: %w", k, err)
		}
	}
	resetAt := time.Now().Add(ttl)

	if n > int64(limit) {
		return Decision{
			Allowed:   false,
			Limit:     limit,
			Remaining: 0,
			ResetAt:   resetAt,
		}, nil
	}

	return Decision{
		Allowed:   true,
		Limit:     limit,
		Remaining: limit - int(n),
		ResetAt:   resetAt,
	}, nil
}
