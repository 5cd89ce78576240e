// Package di provides dependency injection factories for creating application components.
package di

import (
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"stock_dashboard/internal/feature/chart/adapters/predictor"
	chartusecase "stock_dashboard/internal/feature/chart/usecase"
	"stock_dashboard/internal/platform/cache"
	"stock_dashboard/internal/platform/config"
	infrahttp "stock_dashboard/internal/platform/http"
	"stock_dashboard/internal/shared/ratelimiter"
)

// NewPredictor creates a prediction service client with its own HTTP client.
// It returns nil when no prediction service is configured.
func NewPredictor(cfg config.PredictorConfig, limiter ratelimiter.Limiter, log *zap.Logger) *predictor.Client {
	pcfg := predictor.Config{BaseURL: cfg.BaseURL, Timeout: cfg.Timeout}
	if !pcfg.Enabled() {
		return nil
	}
	return predictor.NewClient(pcfg, infrahttp.NewHTTPClient(pcfg.Timeout), limiter, log.Named("predictor"))
}

// NewPredictionRepository wraps the client with a Redis cache when Redis is available.
// Without Redis the client is used directly and the returned cache is nil.
// A nil client yields a nil repository, which leaves live mode unavailable.
func NewPredictionRepository(client *predictor.Client, rdb *redis.Client, cfg config.RedisConfig, log *zap.Logger) (chartusecase.PredictionRepository, *cache.CachingPredictionRepository) {
	if client == nil {
		return nil, nil
	}
	if rdb == nil {
		return client, nil
	}
	c := cache.NewCachingPredictionRepository(rdb, cfg.TTL, client, "predictions", log.Named("cache"))
	return c, c
}
