// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"stock_dashboard/internal/feature/chart/domain/entity"
	"stock_dashboard/internal/feature/chart/usecase"
	"stock_dashboard/internal/platform/metrics"
)

// CachingPredictionRepository decorates a PredictionRepository with Redis caching.
// Only the upstream payload is cached; series and domains are rebuilt by the caller.
type CachingPredictionRepository struct {
	inner     usecase.PredictionRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
	log       *zap.Logger
}

var _ usecase.PredictionRepository = (*CachingPredictionRepository)(nil)

// NewCachingPredictionRepository decorates a PredictionRepository with Redis caching.
// If ttl is 0, it defaults to 1 minute. If namespace is empty, it uses "predictions".
func NewCachingPredictionRepository(rdb *redis.Client, ttl time.Duration, inner usecase.PredictionRepository, namespace string, log *zap.Logger) *CachingPredictionRepository {
	if ttl <= 0 {
		ttl = time.Minute
	}
	if namespace == "" {
		namespace = "predictions"
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &CachingPredictionRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
		log:       log,
	}
}

// Predict returns the cached payload if present, otherwise calls the inner repository.
func (c *CachingPredictionRepository) Predict(ctx context.Context, req entity.PredictRequest) (entity.Prediction, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.Predict(ctx, req)
	}

	key := c.cacheKey(req)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out entity.Prediction
		if err := json.Unmarshal(b, &out); err == nil {
			metrics.PredictionCache.WithLabelValues("hit").Inc()
			return out, nil
		}
		// Delete corrupted cache entry
		c.log.Warn("dropping corrupted prediction cache entry", zap.String("key", key))
		_ = c.rdb.Del(ctx, key).Err()
	}
	metrics.PredictionCache.WithLabelValues("miss").Inc()

	// 2) Fallback to the prediction service
	out, err := c.inner.Predict(ctx, req)
	if err != nil {
		return entity.Prediction{}, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		if err := c.rdb.Set(ctx, key, b, c.ttl).Err(); err != nil {
			c.log.Warn("prediction cache write failed", zap.String("key", key), zap.Error(err))
		}
	}

	return out, nil
}

// Invalidate removes every cached payload for symbol.
func (c *CachingPredictionRepository) Invalidate(ctx context.Context, symbol string) error {
	if c.rdb == nil {
		return nil
	}
	return c.deleteByPattern(ctx, c.cacheKeyPrefix(symbol)+"*")
}

// cacheKey generates a cache key for a specific request.
func (c *CachingPredictionRepository) cacheKey(req entity.PredictRequest) string {
	return fmt.Sprintf("%s:%s:%s:%s",
		c.namespace,
		safe(req.Symbol),
		safe(req.Interval),
		safe(req.Period),
	)
}

// cacheKeyPrefix generates a prefix for invalidating a symbol's entries.
func (c *CachingPredictionRepository) cacheKeyPrefix(symbol string) string {
	return fmt.Sprintf("%s:%s:", c.namespace, safe(symbol))
}

// deleteByPattern deletes all cache keys matching a given pattern using SCAN.
func (c *CachingPredictionRepository) deleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	return nil
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	s = strings.ReplaceAll(s, "*", "_")
	return s
}
