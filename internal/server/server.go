package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"MarketPulse/internal/collector"
	"MarketPulse/internal/metrics"
	"MarketPulse/internal/model"
	"MarketPulse/internal/recorder"
	"MarketPulse/internal/watchlist"
)

// Snapshot supplies the universe and breadth of the most recent refresh.
type Snapshot interface {
	Latest() []*model.SymbolAnalytics
	Breadth() (model.Breadth, bool)
}

// Server exposes the analytics over HTTP.
type Server struct {
	Collector *collector.Collector
	Watchlist *watchlist.Manager
	Snapshot  Snapshot
	Recorder  recorder.Recorder
	Metrics   *metrics.Metrics

	engine *gin.Engine
	http   *http.Server
}

// New builds the gin engine and registers every route. snap and rec may be nil.
func New(col *collector.Collector, wl *watchlist.Manager, snap Snapshot, rec recorder.Recorder, m *metrics.Metrics, debug bool) *Server {
	if !debug {
		gin.SetMode(gin.ReleaseMode)
	}
	s := &Server{
		Collector: col,
		Watchlist: wl,
		Snapshot:  snap,
		Recorder:  rec,
		Metrics:   m,
		engine:    gin.New(),
	}
	s.http = &http.Server{Handler: s.engine, ReadHeaderTimeout: 10 * time.Second}
	s.engine.Use(recoveryMiddleware, zerologMiddleware())
	s.setupRoutes()
	return s
}

// Handler returns the underlying http.Handler.
func (s *Server) Handler() http.Handler { return s.engine }

func (s *Server) setupRoutes() {
	api := s.engine.Group("/api")
	api.GET("/health", s.getHealth)
	api.HEAD("/health", s.getHealth)

	v1 := api.Group("/v1")
	sym := v1.Group("/symbols/:symbol")
	sym.GET("/candles", s.getCandles)
	sym.GET("/sma", s.getSMA)
	sym.GET("/ema", s.getEMA)
	sym.GET("/adr", s.getADR)
	sym.GET("/atr", s.getATR)
	sym.GET("/linreg", s.getLinReg)
	sym.GET("/rs", s.getRS)
	sym.GET("/rs/latest", s.getLatestRS)
	sym.GET("/rotation", s.getRotation)
	v1.GET("/breadth", s.getBreadth)
	v1.GET("/screener", s.getScreener)
	v1.GET("/watchlist", s.getWatchlist)

	if s.Metrics != nil {
		s.engine.GET("/metrics", gin.WrapH(s.Metrics.Handler()))
	}
}

// Start serves on addr until Shutdown is called.
func (s *Server) Start(addr string) error {
	s.http.Addr = addr
	log.Info().Str("addr", addr).Msg("http server listening")
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func recoveryMiddleware(c *gin.Context) {
	defer func() {
		if err := recover(); err != nil {
			log.Error().
				Interface("panic", err).
				Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Msg("panic recovered")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
	}()
	c.Next()
}

func zerologMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if path == "/api/health" || path == "/metrics" {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		log.Info().
			Str("method", c.Request.Method).
			Str("path", path).
			Str("query", c.Request.URL.RawQuery).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("http request")
	}
}
