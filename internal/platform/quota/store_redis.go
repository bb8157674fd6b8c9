package quota

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisUsageStore implements UsageStore using Redis INCR counters that expire
// at the end of their day.
type RedisUsageStore struct {
	client *redis.Client
	prefix string
}

var _ UsageStore = (*RedisUsageStore)(nil)

// NewRedisUsageStore creates a new RedisUsageStore instance.
func NewRedisUsageStore(client *redis.Client, prefix string) *RedisUsageStore {
	if prefix == "" {
		prefix = "quota"
	}
	return &RedisUsageStore{client: client, prefix: prefix}
}

// usageKey returns the Redis key for a day's counter.
func (r *RedisUsageStore) usageKey(day string) string {
	return fmt.Sprintf("%s:%s", r.prefix, day)
}

// Increment adds one request to the day's counter and returns the new total.
// The first increment of a day sets the key to expire after ttl.
func (r *RedisUsageStore) Increment(ctx context.Context, day string, ttl time.Duration) (int64, error) {
	key := r.usageKey(day)

	n, err := r.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to increment usage: %w", err)
	}
	if n == 1 && ttl > 0 {
		if err := r.client.Expire(ctx, key, ttl).Err(); err != nil {
			return n, fmt.Errorf("failed to set usage expiry: %w", err)
		}
	}
	return n, nil
}
