package collector

import (
	"context"
	"errors"

	"MarketPulse/internal/model"
)

// ErrNoData is returned when a source answers without any usable bars.
var ErrNoData = errors.New("no data returned")

// Fetcher defines the interface for fetching market data.
// Bars are returned ascending by time.
type Fetcher interface {
	FetchDailyBars(ctx context.Context, symbol string, days int) ([]model.OHLCV, error)
	FetchCurrentPrice(ctx context.Context, symbol string) (float64, error)
	Name() string
}
