package model

import "time"

// Display layouts for daily and intraday bars.
const (
	DateLayout   = "2006-01-02"
	MinuteLayout = "2006-01-02 15:04"
)

// OHLCV represents a single candlestick bar.
// Date is the display string; when empty it is derived from Time.
type OHLCV struct {
	Time   time.Time `json:"time"`
	Date   string    `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// Label returns the display timestamp of the bar. Without an explicit Date,
// bars stamped at midnight render as a day and any other bar as a minute.
func (b OHLCV) Label() string {
	if b.Date != "" {
		return b.Date
	}
	if h, m, s := b.Time.Clock(); h == 0 && m == 0 && s == 0 {
		return b.Time.Format(DateLayout)
	}
	return b.Time.Format(MinuteLayout)
}
