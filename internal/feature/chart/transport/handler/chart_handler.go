// Package handler はchartフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"stock_dashboard/internal/feature/chart/domain/entity"
	"stock_dashboard/internal/feature/chart/domain/series"
	"stock_dashboard/internal/feature/chart/transport/http/dto"
	"stock_dashboard/internal/feature/chart/usecase"
	"stock_dashboard/internal/platform/http/response"
)

// ChartUsecase はチャート構築のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type ChartUsecase interface {
	BuildChart(ctx context.Context, q usecase.ChartQuery) (entity.Chart, error)
}

// ChartHandler はチャートのHTTPリクエストを処理します。
type ChartHandler struct {
	uc ChartUsecase
}

// NewChartHandler は指定されたusecaseでChartHandlerの新しいインスタンスを生成します。
func NewChartHandler(uc ChartUsecase) *ChartHandler {
	return &ChartHandler{uc: uc}
}

// GetChart は銘柄コードと期間・バケット・モードを受け取り、系列とY軸範囲をJSONで返します。
//
// エンドポイント例:
// GET /charts/:code?interval=1m&bucket=1h&mode=mock
func (h *ChartHandler) GetChart(c *gin.Context) {
	q := usecase.ChartQuery{
		Symbol:   c.Param("code"),
		Interval: c.Query("interval"),
		Bucket:   c.Query("bucket"),
		Mode:     entity.Mode(c.Query("mode")),
	}

	chart, err := h.uc.BuildChart(c.Request.Context(), q)
	if err != nil {
		response.Error(c, statusFor(err), err)
		return
	}

	c.JSON(http.StatusOK, toChartResponse(chart))
}

// GetIntervals は時間セレクタとバケット選択肢のラベルを返します。
func (h *ChartHandler) GetIntervals(c *gin.Context) {
	c.JSON(http.StatusOK, dto.IntervalsResponse{
		Intervals:       series.OverallLabels,
		Buckets:         series.BucketLabels,
		DefaultInterval: usecase.DefaultInterval,
		DefaultBucket:   usecase.DefaultBucket,
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, usecase.ErrEmptySymbol), errors.Is(err, usecase.ErrUnknownMode):
		return http.StatusBadRequest
	case errors.Is(err, usecase.ErrPredictionUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func toChartResponse(ch entity.Chart) dto.ChartResponse {
	out := dto.ChartResponse{
		Symbol:   ch.Symbol,
		Interval: ch.Interval,
		Bucket:   ch.Bucket,
		Mode:     string(ch.Mode),
		Series:   make([]dto.CandleResponse, 0, len(ch.Series)),
	}
	for _, x := range ch.Series {
		out.Series = append(out.Series, dto.CandleResponse{
			Timestamp:      x.Time.UnixMilli(),
			Open:           x.Open,
			High:           x.High,
			Low:            x.Low,
			Close:          x.Close,
			Volume:         x.Volume,
			PredictedClose: x.PredictedClose,
		})
	}
	if ch.Domain != nil {
		out.Domain = &dto.DomainResponse{Min: ch.Domain.Min, Max: ch.Domain.Max}
	}
	if q := ch.Quote; q != nil {
		out.Quote = &dto.QuoteResponse{
			Symbol:        q.Symbol,
			Name:          q.Name,
			Price:         q.Price,
			Change:        q.Change,
			ChangePercent: q.ChangePercent,
			Open:          q.Open,
			High:          q.High,
			Low:           q.Low,
			PreviousClose: q.PreviousClose,
			Volume:        q.Volume,
		}
	}
	return out
}
