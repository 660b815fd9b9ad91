package scheduler

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"MarketPulse/internal/collector"
	"MarketPulse/internal/metrics"
	"MarketPulse/internal/model"
	"MarketPulse/internal/notifier"
	"MarketPulse/internal/recorder"
	"MarketPulse/internal/strategy"
	"MarketPulse/internal/watchlist"
)

// digestSize caps the ranked list in the weekly digest.
const digestSize = 20

// Notifier delivers messages to the operator.
type Notifier interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

// Scheduler manages all cron tasks and keeps the latest refresh in memory.
type Scheduler struct {
	Cron      *cron.Cron
	Collector *collector.Collector
	Watchlist *watchlist.Manager
	Notifier  Notifier
	Recorder  recorder.Recorder
	Calendar  TradingDays
	Metrics   *metrics.Metrics
	Ctx       context.Context

	now func() time.Time

	mu      sync.RWMutex
	latest  []*model.SymbolAnalytics
	breadth model.Breadth
}

// NewScheduler creates a new Scheduler. tn may be nil when notifications are disabled.
func NewScheduler(ctx context.Context, col *collector.Collector, wl *watchlist.Manager, tn Notifier, rec recorder.Recorder, cal TradingDays, m *metrics.Metrics) *Scheduler {
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Collector: col,
		Watchlist: wl,
		Notifier:  tn,
		Recorder:  rec,
		Calendar:  cal,
		Metrics:   m,
		Ctx:       ctx,
		now:       time.Now,
	}
}

// RegisterAll registers the daily refresh and the weekly digest.
func (s *Scheduler) RegisterAll(dailyCron, weeklyCron string) error {
	if _, err := s.Cron.AddFunc(dailyCron, s.dailyTask); err != nil {
		return fmt.Errorf("register daily task: %w", err)
	}
	if _, err := s.Cron.AddFunc(weeklyCron, s.weeklyTask); err != nil {
		return fmt.Errorf("register weekly task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Info().Int("tasks", len(s.Cron.Entries())).Msg("scheduler started")
}

// Stop stops the cron scheduler and waits for running tasks.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Info().Msg("scheduler stopped")
}

// Latest returns the analytics of the most recent refresh.
func (s *Scheduler) Latest() []*model.SymbolAnalytics {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest
}

// Breadth returns the breadth of the most recent refresh.
func (s *Scheduler) Breadth() (model.Breadth, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.breadth, s.latest != nil
}

// Refresh collects the watchlist, ranks it, records the results and alerts
// on rotation quadrant changes.
func (s *Scheduler) Refresh(ctx context.Context) ([]*model.SymbolAnalytics, error) {
	symbols := s.Watchlist.Symbols()
	log.Info().Int("symbols", len(symbols)).Msg("refreshing watchlist")

	results, err := s.Collector.CollectMany(ctx, symbols)
	if err != nil {
		return nil, fmt.Errorf("collect watchlist: %w", err)
	}
	strategy.Rank(results)
	breadth := strategy.ComputeBreadth(results)

	events := strategy.DetectRotationChanges(s.Watchlist.PreviousQuadrants(), results, s.now())
	s.Watchlist.Record(results)

	for _, a := range results {
		sig := strategy.Evaluate(a)
		if err := s.Recorder.RecordRS(ctx, recorder.NewRSSnapshot(a, sig)); err != nil {
			log.Error().Err(err).Str("symbol", a.Symbol).Msg("record rs snapshot")
		}
	}
	for _, e := range events {
		log.Info().Str("symbol", e.Symbol).Str("from", string(e.From)).Str("to", string(e.To)).Msg("rotation change")
		if err := s.Recorder.RecordRotation(ctx, e); err != nil {
			log.Error().Err(err).Str("symbol", e.Symbol).Msg("record rotation event")
		}
	}
	if err := s.Recorder.RecordBreadth(ctx, breadth); err != nil {
		log.Error().Err(err).Msg("record breadth")
	}

	s.mu.Lock()
	s.latest = results
	s.breadth = breadth
	s.mu.Unlock()

	if msg := notifier.FormatRotationAlert(events); msg != "" {
		s.trySend(ctx, msg)
	}
	return results, nil
}

// RunDailyNow executes the daily refresh immediately, ignoring the trading
// calendar (for RUN_ON_START).
func (s *Scheduler) RunDailyNow() {
	s.runDaily()
}

func (s *Scheduler) dailyTask() {
	if s.Calendar != nil && !s.Calendar.IsTradingDay(s.now()) {
		log.Info().Msg("market closed today, skipping daily refresh")
		return
	}
	s.runDaily()
}

func (s *Scheduler) runDaily() {
	log.Info().Msg("running daily refresh")
	_, err := s.Refresh(s.Ctx)
	s.Metrics.ObserveTask("daily", err)
	if err != nil {
		log.Error().Err(err).Msg("daily refresh")
		s.trySend(s.Ctx, fmt.Sprintf("❌ Daily refresh failed: %v", err))
	}
}

func (s *Scheduler) weeklyTask() {
	log.Info().Msg("running weekly digest")
	msg, err := s.digest(s.Ctx, false)
	s.Metrics.ObserveTask("weekly", err)
	if err != nil {
		log.Error().Err(err).Msg("weekly digest")
		s.trySend(s.Ctx, fmt.Sprintf("❌ Weekly digest failed: %v", err))
		return
	}
	s.trySend(s.Ctx, msg)
}

// digest builds the ranked digest, refreshing first when forced or when
// nothing has been collected yet.
func (s *Scheduler) digest(ctx context.Context, force bool) (string, error) {
	results := s.Latest()
	if force || results == nil {
		var err error
		if results, err = s.Refresh(ctx); err != nil {
			return "", err
		}
	}
	breadth, _ := s.Breadth()
	return notifier.FormatDigest(strategy.ByRating(results), breadth, digestSize), nil
}

// Report collects one symbol at its live price and rates it against the
// latest refresh. When no quote is available the last close is used.
func (s *Scheduler) Report(ctx context.Context, symbol string) (*model.SymbolAnalytics, *model.Signal, error) {
	a, err := s.Collector.Collect(ctx, symbol)
	if err != nil {
		return nil, nil, err
	}
	if price, err := s.Collector.Quote(ctx, a.Symbol); err != nil {
		log.Warn().Err(err).Str("symbol", a.Symbol).Msg("live quote unavailable, using last close")
	} else {
		collector.ApplyQuote(a, price)
	}
	if a.Strength != nil {
		composites := []float64{a.Strength.Standard.Composite}
		for _, l := range s.Latest() {
			if l.Strength != nil && l.Symbol != a.Symbol {
				composites = append(composites, l.Strength.Standard.Composite)
			}
		}
		slices.Sort(composites)
		a.RSRating = strategy.Percentile(composites, a.Strength.Standard.Composite)
	}
	return a, strategy.Evaluate(a), nil
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(ctx context.Context, command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return notifier.FormatHelp()
	}
	cmd := strings.ToLower(fields[0])
	if i := strings.IndexByte(cmd, '@'); i > 0 {
		cmd = cmd[:i] // "/rs@PulseBot" in group chats
	}
	arg := ""
	if len(fields) > 1 {
		arg = fields[1]
	}

	switch cmd {
	case "/rs":
		if arg == "" {
			return "Usage: /rs SYMBOL"
		}
		sym, err := watchlist.Normalize(arg)
		if err != nil {
			return fmt.Sprintf("❌ %v", err)
		}
		a, sig, err := s.Report(ctx, sym)
		if err != nil {
			return fmt.Sprintf("❌ %s: %v", sym, err)
		}
		return notifier.FormatRSReport(a, sig)
	case "/watch":
		if arg == "" {
			return "Usage: /watch SYMBOL"
		}
		added, err := s.Watchlist.Add(arg)
		if err != nil {
			return fmt.Sprintf("❌ %v", err)
		}
		if !added {
			return fmt.Sprintf("%s is already on the watchlist", strings.ToUpper(arg))
		}
		return fmt.Sprintf("✅ Watching %s", strings.ToUpper(arg))
	case "/unwatch":
		if arg == "" {
			return "Usage: /unwatch SYMBOL"
		}
		if err := s.Watchlist.Remove(arg); err != nil {
			if errors.Is(err, watchlist.ErrUnknownSymbol) {
				return fmt.Sprintf("%s is not on the watchlist", strings.ToUpper(arg))
			}
			return fmt.Sprintf("❌ %v", err)
		}
		return fmt.Sprintf("🗑 Removed %s", strings.ToUpper(arg))
	case "/list":
		return notifier.FormatWatchlist(s.Watchlist.Symbols(), s.Collector.Benchmark())
	case "/digest":
		msg, err := s.digest(ctx, true)
		if err != nil {
			return fmt.Sprintf("❌ %v", err)
		}
		return msg
	case "/breadth":
		if _, ok := s.Breadth(); !ok {
			if _, err := s.Refresh(ctx); err != nil {
				return fmt.Sprintf("❌ %v", err)
			}
		}
		b, _ := s.Breadth()
		return notifier.FormatBreadth(b)
	default:
		return notifier.FormatHelp()
	}
}

func (s *Scheduler) trySend(ctx context.Context, text string) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.SendWithRetry(ctx, text, 3); err != nil {
		log.Error().Err(err).Msg("send notification")
	}
}
