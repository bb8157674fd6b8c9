// Package di provides dependency injection factories for creating application components.
package di

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"treasure_backend/internal/feature/validation/adapters/gemini"
	"treasure_backend/internal/feature/validation/adapters/ollama"
	"treasure_backend/internal/feature/validation/adapters/vision"
	"treasure_backend/internal/feature/validation/usecase"
	"treasure_backend/internal/platform/cache"
	"treasure_backend/internal/platform/config"
	infrahttp "treasure_backend/internal/platform/http"
	"treasure_backend/internal/platform/quota"
	"treasure_backend/internal/shared/ratelimiter"
)

// NewBaseDescriber creates the vision describer selected by describer.provider.
// The returned close function releases provider resources and is never nil.
func NewBaseDescriber(ctx context.Context, cfg *config.Config) (usecase.Describer, func() error, error) {
	noop := func() error { return nil }
	httpClient := infrahttp.NewHTTPClient(cfg.Describer.Timeout)

	switch cfg.Describer.Provider {
	case config.ProviderGemini:
		d, err := gemini.NewGeminiDescriber(ctx, gemini.Config{
			APIKey:     cfg.Gemini.APIKey,
			Model:      cfg.Gemini.Model,
			HTTPClient: httpClient,
		})
		if err != nil {
			return nil, noop, err
		}
		return d, noop, nil
	case config.ProviderVision:
		d, err := vision.NewVisionDescriber(ctx)
		if err != nil {
			return nil, noop, err
		}
		return d, d.Close, nil
	case config.ProviderOllama:
		d, err := ollama.NewOllamaDescriber(cfg.Ollama.URL, cfg.Ollama.Model, httpClient)
		if err != nil {
			return nil, noop, err
		}
		return d, noop, nil
	default:
		return nil, noop, fmt.Errorf("unknown describer provider %q", cfg.Describer.Provider)
	}
}

// NewUsageStore creates a quota.UsageStore implementation.
// If Redis is available, it returns a Redis-backed implementation.
// Otherwise, it falls back to the SQL database. With neither it returns nil (no daily limit).
func NewUsageStore(rdb *redis.Client, db *gorm.DB) quota.UsageStore {
	if rdb != nil {
		return quota.NewRedisUsageStore(rdb, "quota")
	}
	if db != nil {
		return quota.NewGormUsageStore(db)
	}
	return nil
}

// WrapDescriber layers the quota limits and the result cache around a base describer.
// Cache hits are served before the quota is consulted.
func WrapDescriber(base usecase.Describer, cfg *config.Config, rdb *redis.Client, db *gorm.DB) usecase.Describer {
	limiter := ratelimiter.NewRateLimiter(cfg.Quota.RequestsPerMinute, time.Minute)
	limited := quota.NewQuotaDescriber(base, limiter, NewUsageStore(rdb, db), cfg.Quota.RequestsPerDay, cfg.Quota.Location())
	return cache.NewCachingDescriber(rdb, cfg.Cache.TTL, limited, cfg.Cache.Namespace)
}
