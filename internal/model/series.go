package model

// LinePoint is one scalar observation aligned to a bar's display timestamp.
type LinePoint struct {
	Time  string  `json:"time"`
	Value float64 `json:"value"`
}

// MovingAverageLine is an SMA or EMA series for a single period.
type MovingAverageLine struct {
	Period     int         `json:"period"`
	Timeseries []LinePoint `json:"timeseries"`
}

// ATRLine is an Average True Range series for a single period.
type ATRLine struct {
	Period     int         `json:"period"`
	Timeseries []LinePoint `json:"timeseries"`
}

// Regression is an ordinary least-squares fit over synthetic x = 1..n.
type Regression struct {
	Slope      float64 `json:"slope"`
	YIntercept float64 `json:"yIntercept"`
}

// Values returns the values of a point series in order.
func Values(points []LinePoint) []float64 {
	out := make([]float64, len(points))
	for i, p := range points {
		out[i] = p.Value
	}
	return out
}
