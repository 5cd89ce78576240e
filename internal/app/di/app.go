package di

import (
	"context"
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"stock_dashboard/internal/app/router"
	chartentity "stock_dashboard/internal/feature/chart/domain/entity"
	charthandler "stock_dashboard/internal/feature/chart/transport/handler"
	chartusecase "stock_dashboard/internal/feature/chart/usecase"
	symboladapters "stock_dashboard/internal/feature/symbollist/adapters"
	symbolhandler "stock_dashboard/internal/feature/symbollist/transport/handler"
	symbolusecase "stock_dashboard/internal/feature/symbollist/usecase"
	watchlistadapters "stock_dashboard/internal/feature/watchlist/adapters"
	watchlisthandler "stock_dashboard/internal/feature/watchlist/transport/handler"
	watchlistusecase "stock_dashboard/internal/feature/watchlist/usecase"
	"stock_dashboard/internal/platform/config"
	"stock_dashboard/internal/platform/db"
	"stock_dashboard/internal/platform/http/handler"
	platformredis "stock_dashboard/internal/platform/redis"
	"stock_dashboard/internal/shared/ratelimiter"
)

// Infra holds the shared connections. Redis is nil when not configured.
type Infra struct {
	DB    *gorm.DB
	Redis *redis.Client
}

// OpenInfra connects to the database (seeding the default catalog) and,
// when configured, to Redis.
func OpenInfra(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Infra, error) {
	gdb, err := db.Open(ctx, db.Config{
		Driver:         cfg.DB.Driver,
		DSN:            cfg.DB.DSN,
		Host:           cfg.DB.Host,
		Port:           cfg.DB.Port,
		User:           cfg.DB.User,
		Password:       cfg.DB.Password,
		Name:           cfg.DB.Name,
		SSLMode:        cfg.DB.SSLMode,
		ConnectTimeout: cfg.DB.ConnectTimeout,
		RunMigrations:  cfg.DB.RunMigrations,
	}, log.Named("db"))
	if err != nil {
		return nil, err
	}
	infra := &Infra{DB: gdb}

	seeded, err := symboladapters.NewSymbolRepository(gdb).SeedDefaults(ctx)
	if err != nil {
		_ = infra.Close()
		return nil, fmt.Errorf("seed symbols: %w", err)
	}
	if seeded > 0 {
		log.Info("seeded default symbols", zap.Int("count", seeded))
	}

	rcfg := platformredis.Config{
		Host:           cfg.Redis.Host,
		Port:           cfg.Redis.Port,
		Password:       cfg.Redis.Password,
		DB:             cfg.Redis.DB,
		ConnectTimeout: cfg.Redis.ConnectTimeout,
	}
	if rcfg.Enabled() {
		rdb, err := platformredis.NewRedisClient(ctx, rcfg, log.Named("redis"))
		if err != nil {
			_ = infra.Close()
			return nil, err
		}
		infra.Redis = rdb
	} else {
		log.Info("redis not configured, prediction cache disabled")
	}
	return infra, nil
}

// Checks returns the readiness probes for the open connections.
func (i *Infra) Checks() map[string]handler.Check {
	checks := map[string]handler.Check{
		"db": func(ctx context.Context) error {
			sqlDB, err := i.DB.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}
	if i.Redis != nil {
		checks["redis"] = func(ctx context.Context) error {
			return i.Redis.Ping(ctx).Err()
		}
	}
	return checks
}

// Close releases the connections.
func (i *Infra) Close() error {
	var errs []error
	if i.Redis != nil {
		errs = append(errs, i.Redis.Close())
	}
	if i.DB != nil {
		if sqlDB, err := i.DB.DB(); err == nil {
			errs = append(errs, sqlDB.Close())
		}
	}
	return errors.Join(errs...)
}

// NewRateLimiter creates the limiter shared by all calls to the prediction service.
func NewRateLimiter(cfg config.RateLimitConfig, log *zap.Logger) ratelimiter.Limiter {
	return ratelimiter.NewRateLimiter(cfg.Limit, cfg.Interval, log.Named("ratelimiter"))
}

// NewRouter wires every feature into the HTTP router.
func NewRouter(cfg *config.Config, infra *Infra, log *zap.Logger) *gin.Engine {
	client := NewPredictor(cfg.Predictor, NewRateLimiter(cfg.RateLimit, log), log)
	predictions, _ := NewPredictionRepository(client, infra.Redis, cfg.Redis, log)
	if predictions == nil {
		log.Info("prediction service not configured, live mode disabled")
	}

	chartUC := chartusecase.NewChartUsecase(predictions, chartentity.Mode(cfg.Chart.DefaultMode), log.Named("chart"))

	symbolRepo := symboladapters.NewSymbolRepository(infra.DB)
	symbolUC := symbolusecase.NewSymbolUsecase(symbolRepo)

	watchlistUC := watchlistusecase.NewWatchlistUsecase(symbolRepo, watchlistadapters.NewMemoryStore(), log.Named("watchlist"))

	return router.NewRouter(router.Handlers{
		Chart:     charthandler.NewChartHandler(chartUC),
		Symbol:    symbolhandler.NewSymbolHandler(symbolUC),
		Watchlist: watchlisthandler.NewWatchlistHandler(watchlistUC),
		Ready:     infra.Checks(),
	}, router.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Log:            log.Named("http"),
	})
}

// NewRefreshUsecase wires the quote refresh used by cmd/ingest.
// The limiter paces the refresh loop, so the client itself is not limited.
func NewRefreshUsecase(cfg *config.Config, infra *Infra, log *zap.Logger) (*symbolusecase.RefreshUsecase, error) {
	client := NewPredictor(cfg.Predictor, nil, log)
	if client == nil {
		return nil, errors.New("predictor.base_url is required for quote refresh")
	}
	_, cache := NewPredictionRepository(client, infra.Redis, cfg.Redis, log)

	var invalidator symbolusecase.CacheInvalidator
	if cache != nil {
		invalidator = cache
	}
	return symbolusecase.NewRefreshUsecase(
		client,
		symboladapters.NewSymbolRepository(infra.DB),
		invalidator,
		NewRateLimiter(cfg.RateLimit, log),
		log.Named("refresh"),
	), nil
}
