package series

import (
	"math"
	"time"
	"unicode/utf16"

	"stock_dashboard/internal/feature/chart/domain/entity"
)

// bucketSeedMultiplier scales the symbol seed so each bucket size gets its own series.
var bucketSeedMultiplier = map[string]uint32{
	"15m": 15,
	"30m": 30,
	"1h":  60,
	"4h":  240,
	"1d":  1440,
}

// bucketVolatility damps price movement for short buckets.
var bucketVolatility = map[string]float64{
	"15m": 0.3,
	"30m": 0.4,
	"1h":  0.5,
	"4h":  0.7,
}

const (
	maxPredictionWindow = 5
	minPrice            = 0.1
)

// lcg is the 32-bit linear congruential generator used for mock data.
type lcg struct {
	state uint32
}

func (g *lcg) next() float64 {
	g.state = 1664525*g.state + 1013904223
	return float64(g.state) / 4294967296
}

// Seed folds a symbol into the generator seed for a bucket label.
// The symbol is folded as UTF-16 code units, so a character outside the BMP
// contributes both halves of its surrogate pair.
func Seed(symbol, bucketLabel string) uint32 {
	seed := uint32(1)
	for i, c := range utf16.Encode([]rune(symbol)) {
		seed = seed*31 + uint32(c) + uint32(i+1)*7
	}
	mult, ok := bucketSeedMultiplier[bucketLabel]
	if !ok {
		mult = 1
	}
	return seed * mult
}

// Synthesize derives a deterministic mock series for symbol. The last bucket
// starts at now; identical inputs always produce identical output.
// The trailing min(5, 10% of bucketCount) candles carry a PredictedClose.
func Synthesize(symbol string, bucketCount int, bucketLabel string, now time.Time) []entity.Candle {
	if bucketCount <= 0 {
		return []entity.Candle{}
	}

	seed := Seed(symbol, bucketLabel)
	bucket := ParseBucket(bucketLabel).Bucket

	basePrice := 100 + float64(seed%150)
	if basePrice < 50 {
		basePrice = 50 + float64(seed%50)
	} else if basePrice > 250 {
		basePrice = 200 + float64(seed%50)
	}

	factor, ok := bucketVolatility[bucketLabel]
	if !ok {
		factor = 1.0
	}

	window := bucketCount / 10
	if window > maxPredictionWindow {
		window = maxPredictionWindow
	}
	predictFrom := bucketCount - window

	rng := &lcg{state: seed}
	out := make([]entity.Candle, 0, bucketCount)
	for i := 0; i < bucketCount; i++ {
		volatility := (rng.next()*3 + 1.0) * factor
		trend := rng.next() - 0.49

		open := basePrice
		closePrice := open + trend*volatility
		if closePrice <= minPrice {
			closePrice = open * (0.95 + rng.next()*0.1)
		}

		high := math.Max(open, closePrice) + rng.next()*volatility*0.5
		low := math.Min(open, closePrice) - rng.next()*volatility*0.5
		if low <= minPrice {
			low = 0.9 * math.Min(open, closePrice)
		}
		if high <= low {
			high = low + 0.01
		}

		volume := int64(math.Floor(rng.next()*1e7)) + 1_000_000

		c := entity.Candle{
			Time:   now.Add(-time.Duration(bucketCount-1-i) * bucket),
			Open:   round2(open),
			High:   round2(high),
			Low:    round2(low),
			Close:  round2(closePrice),
			Volume: volume,
		}
		if i >= predictFrom {
			p := round2(closePrice + (rng.next()-0.3)*volatility)
			c.PredictedClose = &p
		}
		out = append(out, c)

		basePrice = closePrice
		if basePrice <= minPrice {
			basePrice = float64(seed%10) + 1
		}
	}
	return out
}

// round2 rounds to two decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
