// Package entity defines the domain models for the chart feature.
package entity

import "time"

// Candle represents one OHLCV bucket of a chart series.
// Trailing prediction-only points carry Volume 0 and a PredictedClose.
type Candle struct {
	Time           time.Time // Start of the bucket
	Open           float64   // Opening price
	High           float64   // Highest price during this bucket
	Low            float64   // Lowest price during this bucket
	Close          float64   // Closing price
	Volume         int64     // Trading volume (0 for prediction points)
	PredictedClose *float64  // Forecast close, nil when absent
}

// IsPrediction reports whether the candle is a synthetic prediction-only point.
func (c Candle) IsPrediction() bool {
	return c.PredictedClose != nil && c.Volume == 0
}

// AxisDomain is the padded vertical range of a chart.
type AxisDomain struct {
	Min float64
	Max float64
}

// Mode selects where a chart's series comes from.
type Mode string

const (
	// ModeMock builds the series with the deterministic synthesizer.
	ModeMock Mode = "mock"
	// ModeLive builds the series from the prediction service.
	ModeLive Mode = "live"
)

// Chart is everything a chart view needs for one render.
type Chart struct {
	Symbol   string
	Interval string // overall range label, e.g. "1m"
	Bucket   string // bucket label, e.g. "1h"
	Mode     Mode
	Series   []Candle
	Domain   *AxisDomain // nil means the client should auto-scale
	Quote    *Quote
}
