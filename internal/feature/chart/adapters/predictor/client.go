package predictor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"stock_dashboard/internal/feature/chart/adapters/predictor/dto"
	"stock_dashboard/internal/feature/chart/domain/entity"
	"stock_dashboard/internal/feature/chart/usecase"
	"stock_dashboard/internal/shared/ratelimiter"
)

// timeLayouts は文字列タイムスタンプとして受け付けるフォーマットです。
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Client は予測サービスからローソク足・気配値・予測終値を取得するPredictionRepository実装です。
type Client struct {
	cfg     Config
	client  *http.Client
	limiter ratelimiter.Limiter
	log     *zap.Logger
}

// ClientがPredictionRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.PredictionRepository = (*Client)(nil)

// NewClient は指定された設定とHTTPクライアントでClientを生成します。
// limiter が nil の場合は呼び出し頻度を制限しません。
func NewClient(cfg Config, client *http.Client, limiter ratelimiter.Limiter, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{cfg: cfg, client: client, limiter: limiter, log: log}
}

// Predict は POST /predict を呼び出し、レスポンスをドメインエンティティに変換します。
func (c *Client) Predict(ctx context.Context, req entity.PredictRequest) (entity.Prediction, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return entity.Prediction{}, err
		}
	}

	payload, err := json.Marshal(dto.PredictRequest{
		StockSymbol: req.Symbol,
		Interval:    req.Interval,
		Period:      req.Period,
	})
	if err != nil {
		return entity.Prediction{}, err
	}

	u := strings.TrimRight(c.cfg.BaseURL, "/") + "/predict"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(payload))
	if err != nil {
		return entity.Prediction{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	res, err := c.client.Do(httpReq)
	if err != nil {
		return entity.Prediction{}, err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			c.log.Warn("failed to close response body", zap.Error(err))
		}
	}()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return entity.Prediction{}, fmt.Errorf("predictor http %d", res.StatusCode)
	}

	var body dto.PredictResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return entity.Prediction{}, fmt.Errorf("decode predictor response: %w", err)
	}

	candles := make([]entity.Candle, 0, len(body.ChartData))
	for i, p := range body.ChartData {
		tm, err := parsePointTime(p)
		if err != nil {
			return entity.Prediction{}, fmt.Errorf("chartData[%d]: %w", i, err)
		}
		candles = append(candles, entity.Candle{
			Time:   tm,
			Open:   p.Open,
			High:   p.High,
			Low:    p.Low,
			Close:  p.Close,
			Volume: int64(math.Round(p.Volume)),
		})
	}

	q := body.QuoteData
	quote := entity.Quote{
		Symbol:        q.Symbol,
		Name:          q.Name,
		Price:         q.Price,
		Change:        q.Change,
		ChangePercent: q.ChangePercent,
		Open:          q.Open,
		High:          q.High,
		Low:           q.Low,
		PreviousClose: q.PreviousClose,
		Volume:        int64(math.Round(q.Volume)),
	}
	if quote.Symbol == "" {
		quote.Symbol = req.Symbol
	}

	c.log.Debug("prediction fetched",
		zap.String("symbol", req.Symbol),
		zap.String("interval", req.Interval),
		zap.Int("candles", len(candles)),
		zap.Int("predicted", len(body.Prediction.PredictedPrices)),
	)

	return entity.Prediction{
		Candles:         candles,
		Quote:           quote,
		PredictedPrices: body.Prediction.PredictedPrices,
	}, nil
}

// parsePointTime は timestamp / time / date の順に時刻を解決します。
func parsePointTime(p dto.ChartPoint) (time.Time, error) {
	if len(p.Timestamp) > 0 && string(p.Timestamp) != "null" {
		var ms float64
		if err := json.Unmarshal(p.Timestamp, &ms); err == nil {
			return time.UnixMilli(int64(ms)).UTC(), nil
		}
		var s string
		if err := json.Unmarshal(p.Timestamp, &s); err != nil {
			return time.Time{}, fmt.Errorf("parse timestamp %s: %w", p.Timestamp, err)
		}
		return parseTimeString(s)
	}
	if p.Time != "" {
		return parseTimeString(p.Time)
	}
	if p.Date != "" {
		return parseTimeString(p.Date)
	}
	return time.Time{}, errors.New("missing timestamp")
}

func parseTimeString(s string) (time.Time, error) {
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.UnixMilli(ms).UTC(), nil
	}
	for _, layout := range timeLayouts {
		if tm, err := time.Parse(layout, s); err == nil {
			return tm.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("parse time %q: unsupported format", s)
}
