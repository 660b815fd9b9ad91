package calculator

import (
	"math"

	"MarketPulse/internal/model"
)

// dailyRangePercent is 100*(high-low)/close, or 0 when close is zero or missing.
func dailyRangePercent(b model.OHLCV) float64 {
	if b.Close == 0 || math.IsNaN(b.Close) {
		return 0
	}
	return 100 * (b.High - b.Low) / b.Close
}

// ADRPercent returns the average daily range percent over the last period bars.
func ADRPercent(candles []model.OHLCV, period int) (float64, error) {
	if err := checkWindow("ADR%", period, len(candles)); err != nil {
		return 0, err
	}
	bars := ordered(candles)
	sum := 0.0
	for _, b := range bars[len(bars)-period:] {
		sum += dailyRangePercent(b)
	}
	return sum / float64(period), nil
}

// ADRPercentSeries returns the ADR% of every trailing window of period bars,
// each point stamped with the window's last bar.
func ADRPercentSeries(candles []model.OHLCV, period int) ([]model.LinePoint, error) {
	if err := checkWindow("ADR%", period, len(candles)); err != nil {
		return nil, err
	}
	bars := ordered(candles)
	out := make([]model.LinePoint, 0, len(bars)-period+1)
	for end := period - 1; end < len(bars); end++ {
		sum := 0.0
		for _, b := range bars[end-period+1 : end+1] {
			sum += dailyRangePercent(b)
		}
		out = append(out, model.LinePoint{Time: bars[end].Label(), Value: sum / float64(period)})
	}
	return out, nil
}
