package model

import "time"

// SymbolAnalytics holds everything computed for one symbol in a refresh.
// Pointer fields are nil when the history was too short for that engine.
type SymbolAnalytics struct {
	Symbol       string    `json:"symbol"`
	Benchmark    string    `json:"benchmark"`
	AsOf         string    `json:"asOf"`
	ComputedAt   time.Time `json:"computedAt"`
	CurrentPrice float64   `json:"currentPrice"`
	PrevClose    float64   `json:"prevClose"`
	DayHigh      float64   `json:"dayHigh"`
	DayLow       float64   `json:"dayLow"`

	SMA []MovingAverageLine `json:"sma"`
	EMA []MovingAverageLine `json:"ema"`

	ADRPercent *float64    `json:"adrPercent,omitempty"`
	ADRSeries  []LinePoint `json:"adrSeries,omitempty"`
	ATR        *ATRLine    `json:"atr,omitempty"`
	Trend      *Regression `json:"trend,omitempty"`
	RSI        float64     `json:"rsi"`

	High52w     float64 `json:"high52w"`
	Low52w      float64 `json:"low52w"`
	Position52w float64 `json:"position52w"` // 0.0 ~ 1.0

	Strength *RelativeStrength `json:"strength,omitempty"`
	Rotation *Rotation         `json:"rotation,omitempty"`
	RSRating int               `json:"rsRating,omitempty"`
}

// LastSMA returns the most recent value of the SMA line with the given period.
func (a *SymbolAnalytics) LastSMA(period int) (float64, bool) {
	return lastOf(a.SMA, period)
}

// LastEMA returns the most recent value of the EMA line with the given period.
func (a *SymbolAnalytics) LastEMA(period int) (float64, bool) {
	return lastOf(a.EMA, period)
}

func lastOf(lines []MovingAverageLine, period int) (float64, bool) {
	for _, l := range lines {
		if l.Period == period && len(l.Timeseries) > 0 {
			return l.Timeseries[len(l.Timeseries)-1].Value, true
		}
	}
	return 0, false
}
