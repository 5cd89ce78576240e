// Package usecase builds chart payloads from mock or fetched data.
package usecase

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"stock_dashboard/internal/feature/chart/domain/entity"
	"stock_dashboard/internal/feature/chart/domain/series"
	"stock_dashboard/internal/platform/metrics"
)

const (
	// DefaultInterval is the overall range used when none is given.
	DefaultInterval = "1m"
	// DefaultBucket is the bucket size used when none is given.
	DefaultBucket = "1h"
)

// PredictionRepository fetches candles, a quote and predicted closes for a symbol.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type PredictionRepository interface {
	Predict(ctx context.Context, req entity.PredictRequest) (entity.Prediction, error)
}

// ChartQuery selects the chart to build. Empty fields take defaults.
type ChartQuery struct {
	Symbol   string
	Interval string
	Bucket   string
	Mode     entity.Mode
}

// ChartUsecase builds chart series and axis domains.
type ChartUsecase struct {
	predictions PredictionRepository
	defaultMode entity.Mode
	now         func() time.Time
	log         *zap.Logger
}

// NewChartUsecase creates a ChartUsecase. predictions may be nil, in which
// case live mode reports ErrPredictionUnavailable.
func NewChartUsecase(predictions PredictionRepository, defaultMode entity.Mode, log *zap.Logger) *ChartUsecase {
	if defaultMode == "" {
		defaultMode = entity.ModeMock
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &ChartUsecase{
		predictions: predictions,
		defaultMode: defaultMode,
		now:         time.Now,
		log:         log,
	}
}

// WithClock replaces the wall clock used to anchor mock series.
func (u *ChartUsecase) WithClock(now func() time.Time) *ChartUsecase {
	u.now = now
	return u
}

// BuildChart builds the series, domain and quote for one chart render.
// Nothing is cached; every call recomputes from its inputs.
func (u *ChartUsecase) BuildChart(ctx context.Context, q ChartQuery) (entity.Chart, error) {
	q = u.normalize(q)
	if q.Symbol == "" {
		return entity.Chart{}, ErrEmptySymbol
	}

	var (
		chart entity.Chart
		err   error
	)
	switch q.Mode {
	case entity.ModeMock:
		chart = u.buildMock(q)
	case entity.ModeLive:
		chart, err = u.buildLive(ctx, q)
	default:
		return entity.Chart{}, fmt.Errorf("%w: %q", ErrUnknownMode, q.Mode)
	}
	if err != nil {
		metrics.ChartBuilds.WithLabelValues(string(q.Mode), "error").Inc()
		return entity.Chart{}, err
	}

	if d, ok := series.ComputeDomain(chart.Series); ok {
		chart.Domain = &d
	}

	metrics.ChartBuilds.WithLabelValues(string(q.Mode), "ok").Inc()
	metrics.ChartPoints.Observe(float64(len(chart.Series)))
	u.log.Debug("chart built",
		zap.String("symbol", q.Symbol),
		zap.String("interval", q.Interval),
		zap.String("bucket", q.Bucket),
		zap.String("mode", string(q.Mode)),
		zap.Int("points", len(chart.Series)),
	)
	return chart, nil
}

func (u *ChartUsecase) normalize(q ChartQuery) ChartQuery {
	q.Symbol = strings.ToUpper(strings.TrimSpace(q.Symbol))
	if q.Interval == "" {
		q.Interval = DefaultInterval
	}
	if q.Bucket == "" {
		q.Bucket = DefaultBucket
	}
	if q.Mode == "" {
		q.Mode = u.defaultMode
	}
	return q
}

func (u *ChartUsecase) buildMock(q ChartQuery) entity.Chart {
	bucket := series.ParseBucket(q.Bucket).Bucket
	count := series.ResolveBucketCount(q.Interval, q.Bucket)
	// アンカーをバケット境界に揃えることで同一バケット内の再描画は同じ系列になる
	anchor := u.now().UTC().Truncate(bucket)

	candles := series.Synthesize(q.Symbol, count, q.Bucket, anchor)
	return entity.Chart{
		Symbol:   q.Symbol,
		Interval: q.Interval,
		Bucket:   q.Bucket,
		Mode:     q.Mode,
		Series:   candles,
		Quote:    quoteFromSeries(q.Symbol, candles),
	}
}

func (u *ChartUsecase) buildLive(ctx context.Context, q ChartQuery) (entity.Chart, error) {
	if u.predictions == nil {
		return entity.Chart{}, ErrPredictionUnavailable
	}

	pred, err := u.predictions.Predict(ctx, entity.PredictRequest{
		Symbol:   q.Symbol,
		Interval: q.Bucket,
		Period:   fmt.Sprintf("%dd", series.OverallDays(q.Interval)),
	})
	if err != nil {
		return entity.Chart{}, fmt.Errorf("%w: %w", ErrPredictionUnavailable, err)
	}

	fetched := latest(pred.Candles, series.ResolveBucketCount(q.Interval, q.Bucket))
	quote := pred.Quote
	if quote.Symbol == "" {
		quote.Symbol = q.Symbol
	}

	return entity.Chart{
		Symbol:   q.Symbol,
		Interval: q.Interval,
		Bucket:   q.Bucket,
		Mode:     q.Mode,
		Series:   series.Adapt(fetched, pred.PredictedPrices, q.Bucket),
		Quote:    &quote,
	}, nil
}

// latest returns the n most recent candles in chronological order.
func latest(candles []entity.Candle, n int) []entity.Candle {
	sorted := make([]entity.Candle, len(candles))
	copy(sorted, candles)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Time.Before(sorted[j].Time) })
	if len(sorted) > n {
		sorted = sorted[len(sorted)-n:]
	}
	return sorted
}

// quoteFromSeries derives the details-panel quote from the last two candles.
func quoteFromSeries(symbol string, candles []entity.Candle) *entity.Quote {
	if len(candles) == 0 {
		return nil
	}
	last := candles[len(candles)-1]
	prev := last.Open
	if len(candles) > 1 {
		prev = candles[len(candles)-2].Close
	}

	q := &entity.Quote{
		Symbol:        symbol,
		Price:         last.Close,
		Change:        roundCents(last.Close - prev),
		Open:          last.Open,
		High:          last.High,
		Low:           last.Low,
		PreviousClose: prev,
		Volume:        last.Volume,
	}
	if prev != 0 {
		q.ChangePercent = roundCents((last.Close - prev) / prev * 100)
	}
	return q
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
