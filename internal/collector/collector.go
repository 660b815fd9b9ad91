package collector

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"MarketPulse/internal/cache"
	"MarketPulse/internal/calculator"
	"MarketPulse/internal/metrics"
	"MarketPulse/internal/model"
)

// Options controls what the collector fetches and which periods it computes.
type Options struct {
	Benchmark   string
	HistoryDays int
	SMAPeriods  []int
	EMAPeriods  []int
	ADRPeriod   int
	ATRPeriod   int
	TrendPeriod int
	RSIPeriod   int

	RotationRatioPeriod    int
	RotationMomentumPeriod int
	RotationTrail          int

	// Concurrency bounds CollectMany. Zero means 4.
	Concurrency int
}

// DefaultOptions returns the periods used by the dashboard.
func DefaultOptions() Options {
	return Options{
		Benchmark:              "SPY",
		HistoryDays:            400,
		SMAPeriods:             []int{20, 50, 200},
		EMAPeriods:             []int{10, 21},
		ADRPeriod:              20,
		ATRPeriod:              14,
		TrendPeriod:            20,
		RSIPeriod:              14,
		RotationRatioPeriod:    10,
		RotationMomentumPeriod: 10,
		RotationTrail:          10,
		Concurrency:            4,
	}
}

// Collector orchestrates data fetching and analytics computation.
type Collector struct {
	Fetcher Fetcher
	Cache   cache.CandleCache
	Metrics *metrics.Metrics
	Options Options

	now func() time.Time
}

// NewCollector creates a new Collector. cache and m may be nil.
func NewCollector(fetcher Fetcher, c cache.CandleCache, m *metrics.Metrics, opts Options) *Collector {
	if opts.Benchmark == "" {
		opts.Benchmark = "SPY"
	}
	if opts.HistoryDays <= 0 {
		opts.HistoryDays = 400
	}
	return &Collector{Fetcher: fetcher, Cache: c, Metrics: m, Options: opts, now: time.Now}
}

// Benchmark returns the configured benchmark symbol.
func (c *Collector) Benchmark() string { return c.Options.Benchmark }

// Bars returns daily bars for symbol, reading through the candle cache.
func (c *Collector) Bars(ctx context.Context, symbol string) ([]model.OHLCV, error) {
	symbol = strings.ToUpper(symbol)
	days := c.Options.HistoryDays
	key := cache.Key(c.Fetcher.Name(), symbol, days)
	if c.Cache != nil {
		bars, ok := c.Cache.Get(ctx, key)
		c.Metrics.ObserveCache(c.Cache.Name(), ok)
		if ok {
			return bars, nil
		}
	}

	bars, err := c.Fetcher.FetchDailyBars(ctx, symbol, days)
	c.Metrics.ObserveFetch(c.Fetcher.Name(), err)
	if err != nil {
		return nil, fmt.Errorf("fetch daily bars %s: %w", symbol, err)
	}
	if c.Cache != nil {
		c.Cache.Set(ctx, key, bars)
	}
	return bars, nil
}

// Quote fetches the live price of symbol from the data source. Quotes are
// not cached.
func (c *Collector) Quote(ctx context.Context, symbol string) (float64, error) {
	price, err := c.Fetcher.FetchCurrentPrice(ctx, strings.ToUpper(symbol))
	c.Metrics.ObserveFetch(c.Fetcher.Name(), err)
	if err != nil {
		return 0, fmt.Errorf("fetch current price %s: %w", symbol, err)
	}
	return price, nil
}

// ApplyQuote moves a to a live price: the day range widens to include it and
// the 52-week position is recomputed. Non-positive prices are ignored.
func ApplyQuote(a *model.SymbolAnalytics, price float64) {
	if a == nil || price <= 0 {
		return
	}
	a.CurrentPrice = price
	a.DayHigh = max(a.DayHigh, price)
	a.DayLow = min(a.DayLow, price)
	a.High52w = max(a.High52w, price)
	a.Low52w = min(a.Low52w, price)
	if pos, err := calculator.RangePosition(price, a.High52w, a.Low52w); err == nil {
		a.Position52w = pos
	}
}

// Collect fetches the symbol and benchmark history and computes every
// analytic. Engines that lack history are logged and left empty.
func (c *Collector) Collect(ctx context.Context, symbol string) (*model.SymbolAnalytics, error) {
	symbol = strings.ToUpper(symbol)
	bars, err := c.Bars(ctx, symbol)
	if err != nil {
		return nil, err
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("%s: %w", symbol, ErrNoData)
	}
	var bench []model.OHLCV
	if symbol != c.Options.Benchmark {
		bench, err = c.Bars(ctx, c.Options.Benchmark)
		if err != nil {
			return nil, fmt.Errorf("benchmark: %w", err)
		}
	} else {
		bench = bars
	}
	return c.Analyze(symbol, bars, bench), nil
}

// Analyze computes SymbolAnalytics from already-fetched bars. It returns nil
// when bars is empty.
func (c *Collector) Analyze(symbol string, bars, bench []model.OHLCV) *model.SymbolAnalytics {
	if len(bars) == 0 {
		return nil
	}
	o := c.Options
	byTime := func(x, y model.OHLCV) int { return x.Time.Compare(y.Time) }
	if !slices.IsSortedFunc(bars, byTime) {
		bars = slices.Clone(bars)
		slices.SortStableFunc(bars, byTime)
	}
	last := bars[len(bars)-1]
	a := &model.SymbolAnalytics{
		Symbol:       symbol,
		Benchmark:    o.Benchmark,
		AsOf:         last.Label(),
		ComputedAt:   c.now(),
		CurrentPrice: last.Close,
		PrevClose:    last.Close,
		DayHigh:      last.High,
		DayLow:       last.Low,
	}
	if len(bars) > 1 {
		a.PrevClose = bars[len(bars)-2].Close
	}
	logger := log.With().Str("symbol", symbol).Logger()

	// skipped reports whether err is an insufficient-data result, which is
	// logged and counted rather than returned.
	skipped := func(engine string, err error) bool {
		if err == nil {
			return false
		}
		if ide, ok := calculator.AsInsufficientData(err); ok {
			c.Metrics.ObserveInsufficient(ide.Engine)
			logger.Warn().Str("engine", engine).Int("required", ide.Required).
				Int("available", ide.Available).Msg("insufficient history")
		} else {
			logger.Warn().Err(err).Str("engine", engine).Msg("calculation failed")
		}
		return true
	}

	start := time.Now()
	for _, p := range o.SMAPeriods {
		if line, err := calculator.CalculateSMA(bars, p, calculator.Close); !skipped("SMA", err) {
			a.SMA = append(a.SMA, *line)
		}
	}
	c.Metrics.ObserveCompute("SMA", start)

	start = time.Now()
	for _, p := range o.EMAPeriods {
		if line, err := calculator.CalculateEMA(bars, p, calculator.Close); !skipped("EMA", err) {
			a.EMA = append(a.EMA, *line)
		}
	}
	c.Metrics.ObserveCompute("EMA", start)

	if o.ADRPeriod > 0 {
		start = time.Now()
		if v, err := calculator.ADRPercent(bars, o.ADRPeriod); !skipped("ADR", err) {
			a.ADRPercent = &v
			if series, err := calculator.ADRPercentSeries(bars, o.ADRPeriod); !skipped("ADR", err) {
				a.ADRSeries = series
			}
		}
		c.Metrics.ObserveCompute("ADR", start)
	}

	if o.ATRPeriod > 0 {
		start = time.Now()
		if line, err := calculator.ATR(bars, o.ATRPeriod); !skipped("ATR", err) {
			a.ATR = line
		}
		c.Metrics.ObserveCompute("ATR", start)
	}

	if o.TrendPeriod > 1 {
		start = time.Now()
		if reg, err := calculator.LinearRegressionFromNumbers(calculator.Closes(bars), o.TrendPeriod); !skipped("LINREG", err) {
			a.Trend = &reg
		}
		c.Metrics.ObserveCompute("LINREG", start)
	}

	if o.RSIPeriod > 0 {
		if rsi, err := calculator.CalculateRSI(bars, o.RSIPeriod); skipped("RSI", err) {
			a.RSI = 50
		} else {
			a.RSI = rsi
		}
	}

	if h, l, err := calculator.Calculate52WeekRange(bars); skipped("RANGE", err) {
		a.High52w, a.Low52w, a.Position52w = a.CurrentPrice, a.CurrentPrice, 0.5
	} else {
		a.High52w, a.Low52w = h, l
		if pos, err := calculator.RangePosition(a.CurrentPrice, h, l); err == nil {
			a.Position52w = pos
		} else {
			a.Position52w = 0.5
		}
	}

	if symbol == o.Benchmark {
		return a
	}

	start = time.Now()
	if rs, err := calculator.RelativeStrength(bars, bench); !skipped("RS", err) {
		rs.Symbol, rs.Benchmark = symbol, o.Benchmark
		a.Strength = rs
	}
	c.Metrics.ObserveCompute("RS", start)

	if o.RotationRatioPeriod > 0 && o.RotationMomentumPeriod > 0 {
		start = time.Now()
		trail, err := calculator.RotationTrail(bars, bench, o.RotationRatioPeriod, o.RotationMomentumPeriod)
		if !skipped("RRG", err) && len(trail) > 0 {
			if k := o.RotationTrail; k > 0 && len(trail) > k {
				trail = trail[len(trail)-k:]
			}
			a.Rotation = &model.Rotation{
				Symbol:    symbol,
				Benchmark: o.Benchmark,
				Quadrant:  trail[len(trail)-1].Quadrant(),
				Trail:     trail,
			}
		}
		c.Metrics.ObserveCompute("RRG", start)
	}
	return a
}

// CollectMany collects every symbol concurrently. Symbols that fail are
// logged and omitted; the error is non-nil only when ctx is cancelled.
func (c *Collector) CollectMany(ctx context.Context, symbols []string) ([]*model.SymbolAnalytics, error) {
	limit := c.Options.Concurrency
	if limit <= 0 {
		limit = 4
	}

	// Warm the benchmark once so workers hit the cache.
	if _, err := c.Bars(ctx, c.Options.Benchmark); err != nil {
		log.Warn().Err(err).Str("symbol", c.Options.Benchmark).Msg("benchmark prefetch failed")
	}

	results := make([]*model.SymbolAnalytics, len(symbols))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, sym := range symbols {
		g.Go(func() error {
			a, err := c.Collect(gctx, sym)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				log.Warn().Err(err).Str("symbol", sym).Msg("collect failed")
				return nil
			}
			results[i] = a
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := results[:0]
	for _, a := range results {
		if a != nil {
			out = append(out, a)
		}
	}
	return out, nil
}
