package calculator

import (
	"math"

	"MarketPulse/internal/model"
)

// trueRange is max(h-l, |h-prevClose|, |l-prevClose|).
func trueRange(b model.OHLCV, prevClose float64) float64 {
	return math.Max(b.High-b.Low, math.Max(math.Abs(b.High-prevClose), math.Abs(b.Low-prevClose)))
}

// ATR returns the Average True Range line. The first bar uses its own close
// as the previous close, so its true range is high-low.
func ATR(candles []model.OHLCV, period int) (*model.ATRLine, error) {
	if err := checkWindow("ATR", period, len(candles)); err != nil {
		return nil, err
	}
	bars := ordered(candles)

	line := &model.ATRLine{
		Period:     period,
		Timeseries: make([]model.LinePoint, 0, len(bars)-period+1),
	}
	tr := make([]float64, len(bars))
	sum := 0.0
	for i, b := range bars {
		prev := b.Close
		if i > 0 {
			prev = bars[i-1].Close
		}
		tr[i] = trueRange(b, prev)
		sum += tr[i]
		if i >= period-1 {
			line.Timeseries = append(line.Timeseries, model.LinePoint{
				Time:  b.Label(),
				Value: sum / float64(period),
			})
			sum -= tr[i-period+1]
		}
	}
	return line, nil
}
