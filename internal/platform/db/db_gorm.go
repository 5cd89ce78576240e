package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"stock_dashboard/internal/feature/symbollist/domain/entity"
	"stock_dashboard/internal/shared/retry"
)

// Config はデータベース接続設定です。
type Config struct {
	Driver         string // "sqlite" | "postgres"
	DSN            string // 指定時はそのまま使う
	Host           string
	Port           string
	User           string
	Password       string
	Name           string
	SSLMode        string
	ConnectTimeout time.Duration
	RunMigrations  bool
}

// Opener は DSN からDB接続を開く関数です。テストで差し替えます。
type Opener func(dsn string) (*gorm.DB, error)

// BuildDSN は設定から接続文字列を組み立てます。
func BuildDSN(cfg Config) string {
	if cfg.DSN != "" {
		return cfg.DSN
	}
	if cfg.Driver == "postgres" {
		parts := []string{
			"host=" + cfg.Host,
			"port=" + cfg.Port,
			"user=" + cfg.User,
			"password=" + cfg.Password,
			"dbname=" + cfg.Name,
		}
		if cfg.SSLMode != "" {
			parts = append(parts, "sslmode="+cfg.SSLMode)
		}
		parts = append(parts, "TimeZone=UTC")
		return strings.Join(parts, " ")
	}
	return "stock_dashboard.db"
}

// OpenerFor はドライバー名に対応する Opener を返します。
func OpenerFor(driver string) (Opener, error) {
	switch driver {
	case "sqlite":
		return func(dsn string) (*gorm.DB, error) {
			return gorm.Open(sqlite.Open(dsn), &gorm.Config{})
		}, nil
	case "postgres":
		return func(dsn string) (*gorm.DB, error) {
			return gorm.Open(postgres.Open(dsn), &gorm.Config{})
		}, nil
	default:
		return nil, fmt.Errorf("unsupported db driver %q", driver)
	}
}

// ConnectWithRetry は timeout に達するまでバックオフ付きで接続を再試行します。
func ConnectWithRetry(ctx context.Context, dsn string, timeout time.Duration, opener Opener, log *zap.Logger) (*gorm.DB, error) {
	var db *gorm.DB
	err := retry.Do(ctx, retry.Config{MaxElapsedTime: timeout}, "db", log, func(ctx context.Context) error {
		conn, err := opener(dsn)
		if err != nil {
			return err
		}
		db = conn
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("db connect failed after %s: %w", timeout, err)
	}
	return db, nil
}

// Migrate はスキーマを最新化します。
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&entity.Symbol{}); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}

// Open は接続・マイグレーションまでを行います。
func Open(ctx context.Context, cfg Config, log *zap.Logger) (*gorm.DB, error) {
	opener, err := OpenerFor(cfg.Driver)
	if err != nil {
		return nil, err
	}
	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	db, err := ConnectWithRetry(ctx, BuildDSN(cfg), timeout, opener, log)
	if err != nil {
		return nil, err
	}
	if cfg.RunMigrations {
		if err := Migrate(db); err != nil {
			return nil, err
		}
	}
	if log != nil {
		log.Info("database connected", zap.String("driver", cfg.Driver), zap.Bool("migrated", cfg.RunMigrations))
	}
	return db, nil
}
