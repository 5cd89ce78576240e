package ratelimiter

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Limiter は、API呼び出しなどの操作の頻度を制限するインターフェースです。
type Limiter interface {
	Wait(ctx context.Context) error
}

// RateLimiter は interval あたり limit 回のペースで操作の頻度を制限します。
// 最大 limit 回までは連続して通し、それ以降はトークンが補充されるまで待機させます。
// 複数のgoroutineから安全に利用できます。
type RateLimiter struct {
	limiter *rate.Limiter // nil の場合は無制限
	limit   int
	now     func() time.Time
	log     *zap.Logger
}

// NewRateLimiter は新しいRateLimiterのインスタンスを生成します。
// limit が0以下の場合は制限しません。
func NewRateLimiter(limit int, interval time.Duration, log *zap.Logger) *RateLimiter {
	if log == nil {
		log = zap.NewNop()
	}
	rl := &RateLimiter{limit: limit, now: time.Now, log: log}
	if limit > 0 && interval > 0 {
		rl.limiter = rate.NewLimiter(rate.Every(interval/time.Duration(limit)), limit)
	}
	return rl
}

// Wait は枠を1つ予約し、必要であれば予約した時刻まで待機します。
// 待機中に ctx がキャンセルされた場合は予約を取り消して ctx のエラーを返します。
// 待機はロックの外で行うため、後続の呼び出しも各自の ctx に従います。
func (rl *RateLimiter) Wait(ctx context.Context) error {
	if err := ctx.Err(); err != nil || rl.limiter == nil {
		return err
	}

	now := rl.now()
	r := rl.limiter.ReserveN(now, 1)
	if !r.OK() {
		return fmt.Errorf("ratelimiter: cannot reserve within burst %d", rl.limit)
	}
	delay := r.DelayFrom(now)
	if delay <= 0 {
		return nil
	}

	rl.log.Info("rate limit reached, waiting",
		zap.Int("limit", rl.limit),
		zap.Duration("sleep", delay),
	)
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		r.CancelAt(rl.now())
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
