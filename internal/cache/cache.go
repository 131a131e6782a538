// Package cache is the read-through cache in front of catalog queries that
// change rarely (categories, carousel).
package cache

import (
	"context"
	"time"

	"kloth-be/internal/logger"
	"kloth-be/internal/metrics"

	"go.uber.org/zap"
)

// Cache stores JSON-encodable values under string keys.
type Cache interface {
	// Get decodes the cached value into dst and reports whether it was present.
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

// Fetch returns the cached value for key, or calls load and caches its result.
// Cache failures are logged and never fail the request.
func Fetch[T any](ctx context.Context, c Cache, key string, ttl time.Duration, load func(context.Context) (T, error)) (T, error) {
	log := logger.FromCtx(ctx).With(zap.String("cache_key", key))

	var cached T
	if c != nil {
		hit, err := c.Get(ctx, key, &cached)
		if err != nil {
			log.Warn("cache get failed", zap.Error(err))
		} else if hit {
			log.Debug("cache hit")
			metrics.CacheHits.Inc()
			return cached, nil
		}
		metrics.CacheMisses.Inc()
	}

	v, err := load(ctx)
	if err != nil {
		return v, err
	}

	if c != nil {
		if err := c.Set(ctx, key, v, ttl); err != nil {
			log.Warn("cache set failed", zap.Error(err))
		}
	}

	return v, nil
}
