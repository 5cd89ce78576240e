package dto

// CandleResponse はチャート系列の1点を表すレスポンスDTOです。
type CandleResponse struct {
	Timestamp      int64    `json:"timestamp"`      // バケット開始時刻（エポックミリ秒）
	Open           float64  `json:"open"`           // 始値
	High           float64  `json:"high"`           // 高値
	Low            float64  `json:"low"`            // 安値
	Close          float64  `json:"close"`          // 終値
	Volume         int64    `json:"volume"`         // 出来高（予測点は0）
	PredictedClose *float64 `json:"predictedClose"` // 予測終値（なければnull）
}

// DomainResponse はY軸の表示範囲です。
type DomainResponse struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// QuoteResponse は詳細パネル用の気配値です。
type QuoteResponse struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name,omitempty"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
	Open          float64 `json:"open,omitempty"`
	High          float64 `json:"high,omitempty"`
	Low           float64 `json:"low,omitempty"`
	PreviousClose float64 `json:"previousClose,omitempty"`
	Volume        int64   `json:"volume,omitempty"`
}

// ChartResponse は GET /charts/:code のレスポンスです。
type ChartResponse struct {
	Symbol   string           `json:"symbol"`
	Interval string           `json:"interval"`
	Bucket   string           `json:"bucket"`
	Mode     string           `json:"mode"`
	Series   []CandleResponse `json:"series"`
	Domain   *DomainResponse  `json:"domain"`
	Quote    *QuoteResponse   `json:"quote"`
}

// IntervalsResponse は GET /intervals のレスポンスです。
type IntervalsResponse struct {
	Intervals       []string `json:"intervals"`
	Buckets         []string `json:"buckets"`
	DefaultInterval string   `json:"defaultInterval"`
	DefaultBucket   string   `json:"defaultBucket"`
}
