package series

import (
	"sort"
	"time"

	"stock_dashboard/internal/feature/chart/domain/entity"
)

// PredictionPoints is the number of prediction-only points appended after
// the last real candle.
const PredictionPoints = 5

// Adapt converts fetched candles plus predicted closes into a chart series.
// Real candles are copied in chronological order with no PredictedClose.
// Candles sharing a timestamp collapse to the last one given, and each real
// candle's High and Low are widened to cover its Open and Close.
// When at least PredictionPoints predictions are given and there is at least
// one real candle, PredictionPoints zero-volume points follow the last real
// candle, one bucket apart, each flat at the previous point's close.
func Adapt(fetched []entity.Candle, predicted []float64, bucketLabel string) []entity.Candle {
	sorted := make([]entity.Candle, len(fetched))
	copy(sorted, fetched)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Time.Before(sorted[j].Time) })

	out := make([]entity.Candle, 0, len(sorted)+PredictionPoints)
	for _, c := range sorted {
		c.PredictedClose = nil
		c.High = max(c.High, c.Open, c.Close)
		c.Low = min(c.Low, c.Open, c.Close)
		if n := len(out); n > 0 && out[n-1].Time.Equal(c.Time) {
			out[n-1] = c
			continue
		}
		out = append(out, c)
	}

	if len(out) == 0 || len(predicted) < PredictionPoints {
		return out
	}

	bucket := ParseBucket(bucketLabel).Bucket
	last := out[len(out)-1]
	running := last.Close
	for j := 0; j < PredictionPoints; j++ {
		p := round2(predicted[j])
		out = append(out, entity.Candle{
			Time:           last.Time.Add(time.Duration(j+1) * bucket),
			Open:           running,
			High:           running,
			Low:            running,
			Close:          running,
			Volume:         0,
			PredictedClose: &p,
		})
		running = p
	}
	return out
}
