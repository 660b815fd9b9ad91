package calculator

import (
	"errors"
	"math"

	"MarketPulse/internal/model"
)

// Days52w is the 52-week lookback in trading days.
const Days52w = 252

// HighLow returns the highest high and lowest low over the last lookback bars.
// Shorter histories use every bar available.
func HighLow(bars []model.OHLCV, lookback int) (high, low float64, err error) {
	if len(bars) == 0 {
		return 0, 0, insufficient("RANGE", 1, 0)
	}
	bars = ordered(bars)
	start := max(len(bars)-lookback, 0)
	high = math.Inf(-1)
	low = math.Inf(1)
	for _, b := range bars[start:] {
		high = math.Max(high, b.High)
		low = math.Min(low, b.Low)
	}
	return high, low, nil
}

// Calculate52WeekRange returns the 52-week high and low.
func Calculate52WeekRange(bars []model.OHLCV) (high, low float64, err error) {
	return HighLow(bars, Days52w)
}

// RangePosition returns where current sits within [low, high], clamped to 0.0~1.0.
func RangePosition(current, high, low float64) (float64, error) {
	if high == low {
		return 0.5, nil
	}
	if high < low {
		return 0, errors.New("high must be >= low")
	}
	pos := (current - low) / (high - low)
	return math.Min(math.Max(pos, 0), 1), nil
}
