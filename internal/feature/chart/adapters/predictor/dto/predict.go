// Package dto は予測サービスAPIのデータ転送オブジェクトを定義します。
package dto

import "encoding/json"

// PredictRequest は POST /predict のリクエストボディです。
type PredictRequest struct {
	StockSymbol string `json:"stockSymbol"`
	Interval    string `json:"interval"`
	Period      string `json:"period"`
}

// PredictResponse は POST /predict のJSONレスポンスを表します。
type PredictResponse struct {
	ChartData  []ChartPoint `json:"chartData"`
	QuoteData  QuoteData    `json:"quoteData"`
	Prediction struct {
		PredictedPrices []float64 `json:"predictedPrices"`
	} `json:"prediction"`
}

// ChartPoint は1本のローソク足です。
// 時刻は timestamp（エポックミリ秒または文字列）、time、date のいずれかで届きます。
type ChartPoint struct {
	Timestamp json.RawMessage `json:"timestamp,omitempty"`
	Time      string          `json:"time,omitempty"`
	Date      string          `json:"date,omitempty"`
	Open      float64         `json:"open"`
	High      float64         `json:"high"`
	Low       float64         `json:"low"`
	Close     float64         `json:"close"`
	Volume    float64         `json:"volume"`
}

// QuoteData は詳細パネル用の気配値です。
type QuoteData struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
	Open          float64 `json:"open"`
	High          float64 `json:"high"`
	Low           float64 `json:"low"`
	PreviousClose float64 `json:"previousClose"`
	Volume        float64 `json:"volume"`
}
