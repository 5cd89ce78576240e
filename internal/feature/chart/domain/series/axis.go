package series

import (
	"math"

	"stock_dashboard/internal/feature/chart/domain/entity"
)

const (
	flatRangePadding = 10
	paddingRatio     = 0.10
	collapseWidening = 5
)

// ComputeDomain returns the padded y-axis range of a series. Predicted closes
// count toward the range when they fall outside a candle's low/high.
// ok is false for an empty series; the caller should auto-scale.
func ComputeDomain(candles []entity.Candle) (d entity.AxisDomain, ok bool) {
	if len(candles) == 0 {
		return entity.AxisDomain{}, false
	}

	lo := math.Inf(1)
	hi := math.Inf(-1)
	for _, c := range candles {
		low, high := c.Low, c.High
		if c.PredictedClose != nil {
			p := *c.PredictedClose
			if p < low {
				low = p
			}
			if p > high {
				high = p
			}
		}
		lo = math.Min(lo, low)
		hi = math.Max(hi, high)
	}

	rng := hi - lo
	padding := rng * paddingRatio
	if rng == 0 {
		padding = flatRangePadding
	}

	d = entity.AxisDomain{
		Min: math.Floor(lo - padding/2),
		Max: math.Ceil(hi + padding/2),
	}
	if d.Min == d.Max {
		d.Min -= collapseWidening
		d.Max += collapseWidening
	}
	return d, true
}
