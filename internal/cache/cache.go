package cache

import (
	"context"
	"fmt"
	"strings"

	"MarketPulse/internal/model"
)

// CandleCache stores fetched daily bars keyed by source, symbol and depth.
type CandleCache interface {
	Get(ctx context.Context, key string) ([]model.OHLCV, bool)
	Set(ctx context.Context, key string, bars []model.OHLCV)
	Name() string
	Close() error
}

// Key builds the cache key for a fetch.
func Key(source, symbol string, days int) string {
	return fmt.Sprintf("candles:%s:%s:%d", source, strings.ToUpper(symbol), days)
}
