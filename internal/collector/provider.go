package collector

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"MarketPulse/internal/model"
)

// ProviderFetcher implements Fetcher against a REST market-data provider
// that serves /api/v1/bars/daily and /api/v1/quote.
type ProviderFetcher struct {
	client *resty.Client
}

// NewProviderFetcher creates a new fetcher with optional proxy support.
func NewProviderFetcher(baseURL, apiKey, proxyURL string) *ProviderFetcher {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(30 * time.Second)
	if apiKey != "" {
		client.SetAuthToken(apiKey)
	}
	if proxyURL != "" {
		client.SetProxy(proxyURL)
	}
	return &ProviderFetcher{client: client}
}

func (f *ProviderFetcher) Name() string { return "provider" }

// providerBar is the JSON shape of one bar from the provider.
type providerBar struct {
	Timestamp int64   `json:"timestamp"`
	Date      string  `json:"date"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Volume    float64 `json:"volume"`
}

func (f *ProviderFetcher) FetchDailyBars(ctx context.Context, symbol string, days int) ([]model.OHLCV, error) {
	var raw []providerBar
	resp, err := f.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{"symbol": symbol, "limit": strconv.Itoa(days)}).
		SetResult(&raw).
		Get("/api/v1/bars/daily")
	if err != nil {
		return nil, fmt.Errorf("fetch bars: %w", err)
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("fetch bars: status %d, body: %s", resp.StatusCode(), resp.String())
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("provider %s: %w", symbol, ErrNoData)
	}

	bars := make([]model.OHLCV, len(raw))
	for i, pb := range raw {
		t := time.Unix(pb.Timestamp, 0).UTC()
		date := pb.Date
		if date == "" {
			date = t.Format(model.DateLayout)
		}
		bars[i] = model.OHLCV{
			Time:   t,
			Date:   date,
			Open:   pb.Open,
			High:   pb.High,
			Low:    pb.Low,
			Close:  pb.Close,
			Volume: pb.Volume,
		}
	}
	slices.SortFunc(bars, func(a, b model.OHLCV) int { return a.Time.Compare(b.Time) })
	return bars, nil
}

func (f *ProviderFetcher) FetchCurrentPrice(ctx context.Context, symbol string) (float64, error) {
	var result struct {
		Price float64 `json:"price"`
	}
	resp, err := f.client.R().
		SetContext(ctx).
		SetQueryParam("symbol", symbol).
		SetResult(&result).
		Get("/api/v1/quote")
	if err != nil {
		return 0, fmt.Errorf("fetch current price: %w", err)
	}
	if !resp.IsSuccess() {
		return 0, fmt.Errorf("fetch current price: status %d", resp.StatusCode())
	}
	return result.Price, nil
}
