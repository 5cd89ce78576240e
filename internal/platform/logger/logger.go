// Package logger はzapロガーの初期化とcontextへの埋め込みを提供します。
package logger

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type contextKey string

const requestIDKey contextKey = "request_id"

// Config はロガーの設定です。
// Level は "debug" | "info" | "warn" | "error"、DevMode=true でコンソール出力になります。
type Config struct {
	Level   string
	DevMode bool
}

// New は Config から *zap.Logger を作成します。
func New(cfg Config) (*zap.Logger, error) {
	if cfg.Level == "" {
		cfg.Level = "info"
	}

	zapCfg := buildZapConfig(cfg.DevMode)
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(cfg.Level)); err != nil {
		return nil, fmt.Errorf("logger: invalid level %q: %w", cfg.Level, err)
	}
	zapCfg.Level = zap.NewAtomicLevelAt(lvl)

	zl, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("logger: build zap: %w", err)
	}
	return zl, nil
}

func buildZapConfig(dev bool) zap.Config {
	var cfg zap.Config
	if dev {
		cfg = zap.NewDevelopmentConfig()
	} else {
		// 本番: JSON + サンプリング
		cfg = zap.NewProductionConfig()
		cfg.Sampling = &zap.SamplingConfig{Initial: 100, Thereafter: 100}
		cfg.EncoderConfig.StacktraceKey = "stacktrace"
	}

	ec := &cfg.EncoderConfig
	ec.TimeKey = "ts"
	ec.EncodeTime = zapcore.ISO8601TimeEncoder
	ec.CallerKey = "caller"
	ec.EncodeCaller = zapcore.ShortCallerEncoder
	return cfg
}

// ContextWithRequestID はリクエストIDを埋め込んだcontextを返します。
func ContextWithRequestID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, requestIDKey, rid)
}

// RequestID はcontextからリクエストIDを取り出します。
func RequestID(ctx context.Context) (string, bool) {
	rid, ok := ctx.Value(requestIDKey).(string)
	return rid, ok && rid != ""
}

// WithContext はcontextのリクエストIDをフィールドとして付与したロガーを返します。
func WithContext(ctx context.Context, log *zap.Logger) *zap.Logger {
	if rid, ok := RequestID(ctx); ok {
		return log.With(zap.String(string(requestIDKey), rid))
	}
	return log
}
