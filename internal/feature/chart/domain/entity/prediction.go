package entity

// Quote holds the latest price snapshot shown in the details panel.
type Quote struct {
	Symbol        string
	Name          string
	Price         float64
	Change        float64
	ChangePercent float64
	Open          float64
	High          float64
	Low           float64
	PreviousClose float64
	Volume        int64
}

// Prediction is the payload returned by the external prediction service.
type Prediction struct {
	Candles         []Candle
	Quote           Quote
	PredictedPrices []float64
}

// PredictRequest is the body sent to the prediction service.
type PredictRequest struct {
	Symbol   string // ticker, e.g. "AAPL"
	Interval string // bucket label, e.g. "5m"
	Period   string // lookback window, e.g. "25d"
}
