package collector

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"MarketPulse/internal/model"
)

// MockFetcher returns deterministic daily bars for development and testing.
// Every symbol shares the same weekday calendar ending at End, so mock
// symbols always align with the mock benchmark.
type MockFetcher struct {
	End       time.Time
	BasePrice float64
	Drift     float64                  // daily log drift applied to every symbol
	Drifts    map[string]float64       // per-symbol drift overrides
	Bars      map[string][]model.OHLCV // fixed series per symbol
	Errors    map[string]error         // forced failures per symbol
	Quotes    map[string]float64       // live prices; default is the last close
}

// NewMockFetcher creates a mock ending at end with a flat default drift.
func NewMockFetcher(end time.Time) *MockFetcher {
	return &MockFetcher{End: end, BasePrice: 100}
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyBars(_ context.Context, symbol string, days int) ([]model.OHLCV, error) {
	symbol = strings.ToUpper(symbol)
	if err, ok := m.Errors[symbol]; ok {
		return nil, err
	}
	if bars, ok := m.Bars[symbol]; ok {
		if len(bars) == 0 {
			return nil, fmt.Errorf("mock %s: %w", symbol, ErrNoData)
		}
		if len(bars) > days {
			bars = bars[len(bars)-days:]
		}
		out := make([]model.OHLCV, len(bars))
		copy(out, bars)
		return out, nil
	}
	drift := m.Drift
	if d, ok := m.Drifts[symbol]; ok {
		drift = d
	}
	return generateMockBars(m.End, m.BasePrice, drift, days), nil
}

func (m *MockFetcher) FetchCurrentPrice(ctx context.Context, symbol string) (float64, error) {
	if p, ok := m.Quotes[strings.ToUpper(symbol)]; ok {
		return p, nil
	}
	bars, err := m.FetchDailyBars(ctx, symbol, 1)
	if err != nil {
		return 0, err
	}
	return bars[len(bars)-1].Close, nil
}

// weekdaysBack returns count weekdays ending at end, oldest first.
func weekdaysBack(end time.Time, count int) []time.Time {
	days := make([]time.Time, count)
	d := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	for i := count - 1; i >= 0; {
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			days[i] = d
			i--
		}
		d = d.AddDate(0, 0, -1)
	}
	return days
}

func generateMockBars(end time.Time, basePrice, drift float64, count int) []model.OHLCV {
	if basePrice <= 0 {
		basePrice = 100
	}
	days := weekdaysBack(end, count)
	bars := make([]model.OHLCV, count)
	for i, d := range days {
		p := basePrice * math.Exp(drift*float64(i)) * (1 + 0.01*math.Sin(float64(i)/5))
		bars[i] = model.OHLCV{
			Time:   d,
			Date:   d.Format(model.DateLayout),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}
