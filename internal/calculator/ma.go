package calculator

import "MarketPulse/internal/model"

// SMA computes the simple moving average of the trailing period values.
func SMA(data []float64, period int) (float64, error) {
	if err := checkWindow("SMA", period, len(data)); err != nil {
		return 0, err
	}
	sum := 0.0
	for i := len(data) - period; i < len(data); i++ {
		sum += data[i]
	}
	return sum / float64(period), nil
}

// EMA computes the exponential moving average seeded with data[0].
// Smoothing starts at the first point; there is no warm-up window, so the
// result differs from the last value of CalculateEMA on the same data.
func EMA(data []float64, period int) (float64, error) {
	if err := checkWindow("EMA", period, len(data)); err != nil {
		return 0, err
	}
	alpha := 2.0 / float64(period+1)
	ema := data[0]
	for _, x := range data[1:] {
		ema = alpha*x + (1-alpha)*ema
	}
	return ema, nil
}

// SMAValues returns the sliding-window SMA of data, one value per index
// from period-1 onward.
func SMAValues(data []float64, period int) ([]float64, error) {
	if err := checkWindow("SMA", period, len(data)); err != nil {
		return nil, err
	}
	out := make([]float64, 0, len(data)-period+1)
	sum := 0.0
	for i, x := range data {
		sum += x
		if i >= period {
			sum -= data[i-period]
		}
		if i >= period-1 {
			out = append(out, sum/float64(period))
		}
	}
	return out, nil
}

// CalculateSMA returns the SMA line of the extracted values (Close when
// extract is nil). One point per bar from index period-1 onward.
func CalculateSMA(candles []model.OHLCV, period int, extract Extractor) (*model.MovingAverageLine, error) {
	if err := checkWindow("SMA", period, len(candles)); err != nil {
		return nil, err
	}
	bars := ordered(candles)
	extract = orClose(extract)

	line := &model.MovingAverageLine{
		Period:     period,
		Timeseries: make([]model.LinePoint, 0, len(bars)-period+1),
	}
	sum := 0.0
	for i, b := range bars {
		sum += extract(b)
		if i >= period {
			sum -= extract(bars[i-period])
		}
		if i >= period-1 {
			line.Timeseries = append(line.Timeseries, model.LinePoint{
				Time:  b.Label(),
				Value: sum / float64(period),
			})
		}
	}
	return line, nil
}

// CalculateEMA returns the EMA line of the extracted values. The seed is the
// plain mean of the first period values; points are emitted for every bar
// from index period onward, so the line is period points shorter than the input.
func CalculateEMA(candles []model.OHLCV, period int, extract Extractor) (*model.MovingAverageLine, error) {
	if err := checkWindow("EMA", period, len(candles)); err != nil {
		return nil, err
	}
	bars := ordered(candles)
	extract = orClose(extract)

	seed := 0.0
	for _, b := range bars[:period] {
		seed += extract(b)
	}
	ema := seed / float64(period)
	alpha := 2.0 / float64(period+1)

	line := &model.MovingAverageLine{
		Period:     period,
		Timeseries: make([]model.LinePoint, 0, len(bars)-period),
	}
	for _, b := range bars[period:] {
		ema = alpha*extract(b) + (1-alpha)*ema
		line.Timeseries = append(line.Timeseries, model.LinePoint{Time: b.Label(), Value: ema})
	}
	return line, nil
}
