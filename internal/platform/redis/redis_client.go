package redis

import (
	"context"
	"net"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"stock_dashboard/internal/shared/retry"
)

// Config はRedis接続設定です。Host が空の場合キャッシュは無効になります。
type Config struct {
	Host           string
	Port           string
	Password       string
	DB             int
	ConnectTimeout time.Duration
}

// Enabled はRedisが設定されているかを返します。
func (c Config) Enabled() bool { return c.Host != "" }

// Addr は host:port を返します。
func (c Config) Addr() string { return net.JoinHostPort(c.Host, c.Port) }

// NewRedisClient はクライアントを作成し、接続確認が取れるまで待ちます。
func NewRedisClient(ctx context.Context, cfg Config, log *zap.Logger) (*redis.Client, error) {
	if log == nil {
		log = zap.NewNop()
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// 接続確認
	if err := PingWithRetry(ctx, rdb, cfg.ConnectTimeout, log); err != nil {
		log.Error("Redis connection failed", zap.String("address", cfg.Addr()), zap.Error(err))
		_ = rdb.Close()
		return nil, err
	}

	log.Info("Redis connection successful", zap.String("address", cfg.Addr()))
	return rdb, nil
}

// PingWithRetry は timeout に達するまでバックオフ付きでPINGを再試行します。
func PingWithRetry(ctx context.Context, rdb *redis.Client, timeout time.Duration, log *zap.Logger) error {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return retry.Do(ctx, retry.Config{MaxElapsedTime: timeout}, "redis", log, func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	})
}
