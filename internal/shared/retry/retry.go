// Package retry runs an operation with exponential back-off until it succeeds,
// the time budget runs out or the context is cancelled.
package retry

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"stock_dashboard/internal/platform/metrics"
)

// Config tunes the back-off. Zero values use defaults.
type Config struct {
	InitialInterval time.Duration
	MaxInterval     time.Duration
	// MaxElapsedTime is the total budget for all attempts. Zero means no limit.
	MaxElapsedTime time.Duration
}

func (c *Config) applyDefaults() {
	if c.InitialInterval <= 0 {
		c.InitialInterval = 500 * time.Millisecond
	}
	if c.MaxInterval <= 0 {
		c.MaxInterval = 3 * time.Second
	}
}

// Permanent marks err as non-retryable.
func Permanent(err error) error { return backoff.Permanent(err) }

// Do calls fn until it returns nil. target labels logs and the retry metric.
func Do(ctx context.Context, cfg Config, target string, log *zap.Logger, fn func(ctx context.Context) error) error {
	cfg.applyDefaults()
	if log == nil {
		log = zap.NewNop()
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = cfg.InitialInterval
	bo.MaxInterval = cfg.MaxInterval
	bo.MaxElapsedTime = cfg.MaxElapsedTime

	attempts := 0
	operation := func() error {
		attempts++
		return fn(ctx)
	}
	notify := func(err error, delay time.Duration) {
		metrics.Retries.WithLabelValues(target).Inc()
		log.Warn("back-off retry",
			zap.String("target", target),
			zap.Int("attempt", attempts),
			zap.Duration("delay", delay),
			zap.Error(err),
		)
	}

	if err := backoff.RetryNotify(operation, backoff.WithContext(bo, ctx), notify); err != nil {
		return fmt.Errorf("%s: gave up after %d attempt(s): %w", target, attempts, err)
	}
	return nil
}
