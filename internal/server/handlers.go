package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"MarketPulse/internal/calculator"
	"MarketPulse/internal/collector"
	"MarketPulse/internal/model"
	"MarketPulse/internal/recorder"
	"MarketPulse/internal/strategy"
	"MarketPulse/internal/watchlist"
)

var errBadParam = errors.New("bad parameter")

// writeError maps domain errors onto HTTP statuses.
func writeError(c *gin.Context, err error) {
	if ide, ok := calculator.AsInsufficientData(err); ok {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":     ide.Error(),
			"engine":    ide.Engine,
			"required":  ide.Required,
			"available": ide.Available,
		})
		return
	}
	switch {
	case errors.Is(err, calculator.ErrInvalidPeriod),
		errors.Is(err, watchlist.ErrInvalidSymbol),
		errors.Is(err, errBadParam):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, collector.ErrNoData), errors.Is(err, recorder.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	}
}

func intQuery(c *gin.Context, name string, def int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s=%q is not an integer: %w", name, raw, errBadParam)
	}
	return v, nil
}

func extractorQuery(c *gin.Context) (calculator.Extractor, error) {
	field := c.Query("field")
	ex, ok := calculator.ExtractorByName(field)
	if !ok {
		return nil, fmt.Errorf("field=%q is unknown: %w", field, errBadParam)
	}
	return ex, nil
}

// bars resolves the :symbol param and returns its daily history.
func (s *Server) bars(c *gin.Context) (string, []model.OHLCV, bool) {
	sym, err := watchlist.Normalize(c.Param("symbol"))
	if err != nil {
		writeError(c, err)
		return "", nil, false
	}
	bars, err := s.Collector.Bars(c.Request.Context(), sym)
	if err != nil {
		writeError(c, err)
		return "", nil, false
	}
	return sym, bars, true
}

func (s *Server) getHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "source": s.Collector.Fetcher.Name(), "benchmark": s.Collector.Benchmark()})
}

func (s *Server) getCandles(c *gin.Context) {
	sym, bars, ok := s.bars(c)
	if !ok {
		return
	}
	limit, err := intQuery(c, "limit", 0)
	if err != nil {
		writeError(c, err)
		return
	}
	if limit > 0 && limit < len(bars) {
		bars = bars[len(bars)-limit:]
	}
	c.JSON(http.StatusOK, gin.H{"symbol": sym, "candles": bars})
}

func (s *Server) movingAverage(c *gin.Context, def int, calc func([]model.OHLCV, int, calculator.Extractor) (*model.MovingAverageLine, error)) {
	sym, bars, ok := s.bars(c)
	if !ok {
		return
	}
	period, err := intQuery(c, "period", def)
	if err != nil {
		writeError(c, err)
		return
	}
	ex, err := extractorQuery(c)
	if err != nil {
		writeError(c, err)
		return
	}
	line, err := calc(bars, period, ex)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"symbol": sym, "line": line})
}

func (s *Server) getSMA(c *gin.Context) { s.movingAverage(c, 50, calculator.CalculateSMA) }
func (s *Server) getEMA(c *gin.Context) { s.movingAverage(c, 21, calculator.CalculateEMA) }

func (s *Server) getADR(c *gin.Context) {
	sym, bars, ok := s.bars(c)
	if !ok {
		return
	}
	period, err := intQuery(c, "period", s.Collector.Options.ADRPeriod)
	if err != nil {
		writeError(c, err)
		return
	}
	adr, err := calculator.ADRPercent(bars, period)
	if err != nil {
		writeError(c, err)
		return
	}
	series, err := calculator.ADRPercentSeries(bars, period)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"symbol": sym, "period": period, "adrPercent": calculator.Round2(adr), "series": series})
}

func (s *Server) getATR(c *gin.Context) {
	sym, bars, ok := s.bars(c)
	if !ok {
		return
	}
	period, err := intQuery(c, "period", s.Collector.Options.ATRPeriod)
	if err != nil {
		writeError(c, err)
		return
	}
	line, err := calculator.ATR(bars, period)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"symbol": sym, "line": line})
}

func (s *Server) getLinReg(c *gin.Context) {
	sym, bars, ok := s.bars(c)
	if !ok {
		return
	}
	period, err := intQuery(c, "period", s.Collector.Options.TrendPeriod)
	if err != nil {
		writeError(c, err)
		return
	}
	ex, err := extractorQuery(c)
	if err != nil {
		writeError(c, err)
		return
	}
	reg, err := calculator.LinearRegressionFromNumbers(calculator.Values(bars, ex), period)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"symbol": sym, "period": period, "regression": reg})
}

func (s *Server) getRS(c *gin.Context) {
	sym, bars, ok := s.bars(c)
	if !ok {
		return
	}
	benchmark := s.Collector.Benchmark()
	bench, err := s.Collector.Bars(c.Request.Context(), benchmark)
	if err != nil {
		writeError(c, err)
		return
	}
	rs, err := calculator.RelativeStrength(bars, bench)
	if err != nil {
		writeError(c, err)
		return
	}
	rs.Symbol, rs.Benchmark = sym, benchmark
	if c.Query("raw") != "true" {
		rs = calculator.RoundRelativeStrength(rs)
	}
	c.JSON(http.StatusOK, rs)
}

func (s *Server) getRotation(c *gin.Context) {
	sym, bars, ok := s.bars(c)
	if !ok {
		return
	}
	o := s.Collector.Options
	ratio, err := intQuery(c, "ratio", o.RotationRatioPeriod)
	if err != nil {
		writeError(c, err)
		return
	}
	momentum, err := intQuery(c, "momentum", o.RotationMomentumPeriod)
	if err != nil {
		writeError(c, err)
		return
	}
	trailLen, err := intQuery(c, "trail", o.RotationTrail)
	if err != nil {
		writeError(c, err)
		return
	}
	benchmark := s.Collector.Benchmark()
	bench, err := s.Collector.Bars(c.Request.Context(), benchmark)
	if err != nil {
		writeError(c, err)
		return
	}
	trail, err := calculator.RotationTrail(bars, bench, ratio, momentum)
	if err != nil {
		writeError(c, err)
		return
	}
	if trailLen > 0 && len(trail) > trailLen {
		trail = trail[len(trail)-trailLen:]
	}
	c.JSON(http.StatusOK, model.Rotation{
		Symbol:    sym,
		Benchmark: benchmark,
		Quadrant:  trail[len(trail)-1].Quadrant(),
		Trail:     trail,
	})
}

// getLatestRS returns the last recorded snapshot of the symbol.
func (s *Server) getLatestRS(c *gin.Context) {
	sym, err := watchlist.Normalize(c.Param("symbol"))
	if err != nil {
		writeError(c, err)
		return
	}
	if s.Recorder == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "history not available"})
		return
	}
	snap, err := s.Recorder.LatestRS(c.Request.Context(), sym)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

func (s *Server) getScreener(c *gin.Context) {
	var crit strategy.Criteria
	if raw := c.Query("min_adr"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			writeError(c, fmt.Errorf("min_adr=%q is not a number: %w", raw, errBadParam))
			return
		}
		crit.MinADRPercent = v
	}
	var err error
	if crit.AboveSMA, err = intQuery(c, "above_sma", 0); err != nil {
		writeError(c, err)
		return
	}
	if crit.MinRSRating, err = intQuery(c, "min_rating", 0); err != nil {
		writeError(c, err)
		return
	}
	if raw := c.Query("quadrant"); raw != "" {
		for _, name := range strings.Split(raw, ",") {
			q, ok := model.ParseQuadrant(name)
			if !ok {
				writeError(c, fmt.Errorf("quadrant=%q is unknown: %w", name, errBadParam))
				return
			}
			crit.Quadrants = append(crit.Quadrants, q)
		}
	}

	var universe []*model.SymbolAnalytics
	if s.Snapshot != nil {
		universe = s.Snapshot.Latest()
	}
	if universe == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no refresh has completed yet"})
		return
	}
	matches := strategy.Screen(universe, crit)
	rows := make([]gin.H, 0, len(matches))
	for _, a := range matches {
		row := gin.H{
			"symbol":       a.Symbol,
			"asOf":         a.AsOf,
			"currentPrice": a.CurrentPrice,
			"rsRating":     a.RSRating,
		}
		if a.ADRPercent != nil {
			row["adrPercent"] = calculator.Round2(*a.ADRPercent)
		}
		if a.Strength != nil {
			row["composite"] = calculator.Round2(a.Strength.Standard.Composite)
		}
		if a.Rotation != nil {
			row["quadrant"] = a.Rotation.Quadrant
		}
		rows = append(rows, row)
	}
	c.JSON(http.StatusOK, gin.H{"benchmark": s.Collector.Benchmark(), "count": len(rows), "results": rows})
}

func (s *Server) getBreadth(c *gin.Context) {
	if s.Snapshot == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "breadth not available"})
		return
	}
	b, ok := s.Snapshot.Breadth()
	if !ok {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no refresh has completed yet"})
		return
	}
	c.JSON(http.StatusOK, b)
}

func (s *Server) getWatchlist(c *gin.Context) {
	symbols := s.Watchlist.Symbols()
	entries := make([]model.WatchEntry, 0, len(symbols))
	for _, sym := range symbols {
		if e, ok := s.Watchlist.Entry(sym); ok {
			entries = append(entries, e)
		}
	}
	c.JSON(http.StatusOK, gin.H{"benchmark": s.Collector.Benchmark(), "entries": entries})
}
