// Package cache provides caching decorators for validation collaborators.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"treasure_backend/internal/feature/validation/domain/entity"
	"treasure_backend/internal/feature/validation/usecase"
)

// CachingDescriber decorates a Describer with Redis caching.
// The same photo submitted again for the same target and color is answered from
// the cache without calling (or being billed by) the vision model.
type CachingDescriber struct {
	inner     usecase.Describer
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.Describer = (*CachingDescriber)(nil)

// NewCachingDescriber decorates a Describer with Redis caching.
// If ttl is 0, it defaults to 24 hours. If namespace is empty, it uses "describe".
func NewCachingDescriber(rdb *redis.Client, ttl time.Duration, inner usecase.Describer, namespace string) *CachingDescriber {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if namespace == "" {
		namespace = "describe"
	}
	return &CachingDescriber{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// Tag returns the tag of the wrapped describer.
func (c *CachingDescriber) Tag() string { return c.inner.Tag() }

// Describe returns a cached description when present, otherwise calls the inner describer.
func (c *CachingDescriber) Describe(ctx context.Context, req usecase.DescribeRequest) (*entity.VisionDescription, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.Describe(ctx, req)
	}

	key := c.cacheKey(req)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out entity.VisionDescription
		if err := json.Unmarshal(b, &out); err == nil {
			logrus.WithField("key", key).Debug("describer cache hit")
			return &out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to the vision model
	out, err := c.inner.Describe(ctx, req)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}

// cacheKey generates a cache key from the target, the expected color and the image digest.
func (c *CachingDescriber) cacheKey(req usecase.DescribeRequest) string {
	sum := sha256.Sum256(req.Image)
	return fmt.Sprintf("%s:%s:%s:%s",
		c.namespace,
		safe(req.TargetID),
		safe(strings.ToLower(string(req.ExpectedColor))),
		hex.EncodeToString(sum[:]),
	)
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	if s == "" {
		return "-"
	}
	return s
}
