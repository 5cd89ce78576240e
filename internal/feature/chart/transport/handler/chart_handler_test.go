package handler_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"stock_dashboard/internal/feature/chart/domain/entity"
	"stock_dashboard/internal/feature/chart/transport/handler"
	"stock_dashboard/internal/feature/chart/usecase"
)

// mockChartUsecase はChartUsecaseインターフェースのモック実装です。
type mockChartUsecase struct {
	BuildChartFunc func(ctx context.Context, q usecase.ChartQuery) (entity.Chart, error)
}

func (m *mockChartUsecase) BuildChart(ctx context.Context, q usecase.ChartQuery) (entity.Chart, error) {
	return m.BuildChartFunc(ctx, q)
}

func newRouter(uc handler.ChartUsecase) *gin.Engine {
	h := handler.NewChartHandler(uc)
	router := gin.New()
	router.GET("/charts/:code", h.GetChart)
	router.GET("/intervals", h.GetIntervals)
	return router
}

// TestChartHandler_GetChart はGetChartのHTTPリクエスト/レスポンス処理をテストします。
func TestChartHandler_GetChart(t *testing.T) {
	gin.SetMode(gin.TestMode)

	testTime := time.Date(2024, 6, 14, 15, 0, 0, 0, time.UTC)
	predicted := 101.5

	tests := []struct {
		name           string
		url            string
		mockBuildChart func(ctx context.Context, q usecase.ChartQuery) (entity.Chart, error)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "success: all parameters specified",
			url:  "/charts/AAPL?interval=1d&bucket=1h&mode=live",
			mockBuildChart: func(ctx context.Context, q usecase.ChartQuery) (entity.Chart, error) {
				assert.Equal(t, usecase.ChartQuery{Symbol: "AAPL", Interval: "1d", Bucket: "1h", Mode: entity.ModeLive}, q)
				return entity.Chart{
					Symbol: "AAPL", Interval: "1d", Bucket: "1h", Mode: entity.ModeLive,
					Series: []entity.Candle{
						{Time: testTime, Open: 100, High: 102, Low: 99, Close: 101, Volume: 1000},
						{Time: testTime, Open: 101, High: 101.5, Low: 101, Close: 101.5, PredictedClose: &predicted},
					},
					Domain: &entity.AxisDomain{Min: 98, Max: 104},
					Quote:  &entity.Quote{Symbol: "AAPL", Name: "Apple Inc.", Price: 101, Change: 1, ChangePercent: 1},
				}, nil
			},
			expectedStatus: http.StatusOK,
			expectedBody: fmt.Sprintf(`{
				"symbol":"AAPL","interval":"1d","bucket":"1h","mode":"live",
				"series":[
					{"timestamp":%[1]d,"open":100,"high":102,"low":99,"close":101,"volume":1000,"predictedClose":null},
					{"timestamp":%[1]d,"open":101,"high":101.5,"low":101,"close":101.5,"volume":0,"predictedClose":101.5}
				],
				"domain":{"min":98,"max":104},
				"quote":{"symbol":"AAPL","name":"Apple Inc.","price":101,"change":1,"changePercent":1}
			}`, testTime.UnixMilli()),
		},
		{
			name: "success: empty series has null domain",
			url:  "/charts/JPM",
			mockBuildChart: func(ctx context.Context, q usecase.ChartQuery) (entity.Chart, error) {
				assert.Equal(t, "JPM", q.Symbol)
				assert.Empty(t, q.Interval, "defaults are applied by the usecase")
				return entity.Chart{Symbol: "JPM", Interval: "1m", Bucket: "1h", Mode: entity.ModeLive}, nil
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"symbol":"JPM","interval":"1m","bucket":"1h","mode":"live","series":[],"domain":null,"quote":null}`,
		},
		{
			name: "error: unknown mode",
			url:  "/charts/AAPL?mode=replay",
			mockBuildChart: func(ctx context.Context, q usecase.ChartQuery) (entity.Chart, error) {
				return entity.Chart{}, fmt.Errorf("%w: %q", usecase.ErrUnknownMode, q.Mode)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"unknown chart mode: \"replay\""}`,
		},
		{
			name: "error: prediction service unavailable",
			url:  "/charts/AAPL?mode=live",
			mockBuildChart: func(ctx context.Context, q usecase.ChartQuery) (entity.Chart, error) {
				return entity.Chart{}, fmt.Errorf("%w: %w", usecase.ErrPredictionUnavailable, errors.New("predictor http 503"))
			},
			expectedStatus: http.StatusBadGateway,
			expectedBody:   `{"error":"prediction service unavailable: predictor http 503"}`,
		},
		{
			name: "error: unexpected",
			url:  "/charts/AAPL",
			mockBuildChart: func(ctx context.Context, q usecase.ChartQuery) (entity.Chart, error) {
				return entity.Chart{}, errors.New("boom")
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"boom"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newRouter(&mockChartUsecase{BuildChartFunc: tt.mockBuildChart})

			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodGet, tt.url, nil)
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}

// TestChartHandler_GetIntervals はUIコントロール用ラベルの応答をテストします。
func TestChartHandler_GetIntervals(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := newRouter(&mockChartUsecase{})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/intervals", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"intervals":["1d","1w","1m","3m","6m","1y","5y"],
		"buckets":["5m","15m","30m","1h","4h","1d"],
		"defaultInterval":"1m",
		"defaultBucket":"1h"
	}`, w.Body.String())
}
