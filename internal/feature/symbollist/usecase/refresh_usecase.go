package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	chartentity "stock_dashboard/internal/feature/chart/domain/entity"
	"stock_dashboard/internal/feature/symbollist/domain/entity"
	"stock_dashboard/internal/platform/metrics"
	"stock_dashboard/internal/shared/ratelimiter"
)

const (
	refreshInterval = "1d" // 気配値取得に使う足
	refreshPeriod   = "5d" // 前日比を出すのに十分な期間
)

// QuoteSource は予測サービスから銘柄の気配値を取得するインターフェースです。
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type QuoteSource interface {
	Predict(ctx context.Context, req chartentity.PredictRequest) (chartentity.Prediction, error)
}

// CacheInvalidator は銘柄単位で予測キャッシュを破棄します。
type CacheInvalidator interface {
	Invalidate(ctx context.Context, symbol string) error
}

// RefreshUsecase は予測サービスから最新の気配値を取得し、銘柄カタログに書き戻します。
type RefreshUsecase struct {
	source      QuoteSource
	repo        SymbolRepository
	cache       CacheInvalidator
	rateLimiter ratelimiter.Limiter
	log         *zap.Logger
}

// NewRefreshUsecase は新しい RefreshUsecase を作成します。cache と rateLimiter は nil でも構いません。
func NewRefreshUsecase(source QuoteSource, repo SymbolRepository, cache CacheInvalidator, rateLimiter ratelimiter.Limiter, log *zap.Logger) *RefreshUsecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &RefreshUsecase{source: source, repo: repo, cache: cache, rateLimiter: rateLimiter, log: log}
}

// refreshOne は1銘柄の気配値を取得してカタログを更新します。
func (ru *RefreshUsecase) refreshOne(ctx context.Context, code string) error {
	pred, err := ru.source.Predict(ctx, chartentity.PredictRequest{
		Symbol:   code,
		Interval: refreshInterval,
		Period:   refreshPeriod,
	})
	if err != nil {
		return fmt.Errorf("fetch quote: %w", err)
	}

	q := pred.Quote
	if err := ru.repo.UpdateQuote(ctx, code, entity.Quote{
		Price:         q.Price,
		Change:        q.Change,
		ChangePercent: q.ChangePercent,
	}); err != nil {
		return fmt.Errorf("update quote: %w", err)
	}

	if ru.cache != nil {
		if err := ru.cache.Invalidate(ctx, code); err != nil {
			// キャッシュ破棄の失敗は更新自体を失敗させない
			ru.log.Warn("failed to invalidate prediction cache", zap.String("symbol", code), zap.Error(err))
		}
	}
	return nil
}

// RefreshAll はアクティブな全銘柄の気配値を更新し、成功した件数を返します。
// 1銘柄の失敗はログに出力して次へ進みます。ctx がキャンセルされた場合のみエラーを返します。
func (ru *RefreshUsecase) RefreshAll(ctx context.Context) (int, error) {
	codes, err := ru.repo.ListActiveCodes(ctx)
	if err != nil {
		return 0, fmt.Errorf("list active codes: %w", err)
	}

	refreshed := 0
	for _, code := range codes {
		if ru.rateLimiter != nil {
			if err := ru.rateLimiter.Wait(ctx); err != nil {
				return refreshed, err
			}
		}
		if err := ru.refreshOne(ctx, code); err != nil {
			if ctx.Err() != nil {
				return refreshed, ctx.Err()
			}
			metrics.SymbolRefreshes.WithLabelValues("error").Inc()
			ru.log.Error("failed to refresh quote", zap.String("symbol", code), zap.Error(err))
			continue
		}
		metrics.SymbolRefreshes.WithLabelValues("ok").Inc()
		refreshed++
	}

	ru.log.Info("quote refresh finished", zap.Int("symbols", len(codes)), zap.Int("refreshed", refreshed))
	return refreshed, nil
}
