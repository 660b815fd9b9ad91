package calculator

import (
	"slices"
	"time"

	"MarketPulse/internal/model"
)

var day0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// barsFromCloses builds consecutive daily bars with a +/-1 range around each close.
func barsFromCloses(closes ...float64) []model.OHLCV {
	bars := make([]model.OHLCV, len(closes))
	for i, c := range closes {
		bars[i] = model.OHLCV{
			Time:   day0.AddDate(0, 0, i),
			Open:   c,
			High:   c + 1,
			Low:    c - 1,
			Close:  c,
			Volume: 1000,
		}
	}
	return bars
}

func constant(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func reversed(bars []model.OHLCV) []model.OHLCV {
	cp := slices.Clone(bars)
	slices.Reverse(cp)
	return cp
}
