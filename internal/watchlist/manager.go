package watchlist

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"MarketPulse/internal/model"
)

// maxComposites is how many recent composites are kept per symbol.
const maxComposites = 12

var (
	ErrUnknownSymbol = errors.New("symbol not on watchlist")
	ErrInvalidSymbol = errors.New("invalid symbol")
)

var symbolPattern = regexp.MustCompile(`^[A-Z0-9.^=\-]{1,15}$`)

// Normalize upper-cases and validates a ticker.
func Normalize(symbol string) (string, error) {
	s := strings.ToUpper(strings.TrimSpace(symbol))
	if !symbolPattern.MatchString(s) {
		return "", fmt.Errorf("%q: %w", symbol, ErrInvalidSymbol)
	}
	return s, nil
}

// Manager handles watchlist operations with concurrency safety.
type Manager struct {
	mu       sync.Mutex
	state    *model.WatchlistState
	filePath string
	now      func() time.Time
}

// NewManager creates a Manager, loading state from disk. When the stored
// watchlist is empty it is seeded with seed.
func NewManager(filePath string, seed []string) (*Manager, error) {
	state, err := LoadState(filePath)
	if err != nil {
		return nil, fmt.Errorf("load watchlist: %w", err)
	}
	m := &Manager{state: state, filePath: filePath, now: time.Now}

	if len(state.Entries) == 0 {
		for _, s := range seed {
			sym, err := Normalize(s)
			if err != nil {
				log.Warn().Err(err).Msg("skipping seed symbol")
				continue
			}
			state.Entries[sym] = &model.WatchEntry{Symbol: sym, AddedAt: m.now()}
		}
	}
	if err := m.save(); err != nil {
		return nil, fmt.Errorf("save watchlist: %w", err)
	}
	return m, nil
}

// Add puts symbol on the watchlist. It reports false when already present.
func (m *Manager) Add(symbol string) (bool, error) {
	sym, err := Normalize(symbol)
	if err != nil {
		return false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.state.Entries[sym]; ok {
		return false, nil
	}
	m.state.Entries[sym] = &model.WatchEntry{Symbol: sym, AddedAt: m.now()}
	return true, m.save()
}

// Remove takes symbol off the watchlist.
func (m *Manager) Remove(symbol string) error {
	sym, err := Normalize(symbol)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.state.Entries[sym]; !ok {
		return fmt.Errorf("%s: %w", sym, ErrUnknownSymbol)
	}
	delete(m.state.Entries, sym)
	return m.save()
}

// Symbols returns the watched symbols in alphabetical order.
func (m *Manager) Symbols() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]string, 0, len(m.state.Entries))
	for sym := range m.state.Entries {
		out = append(out, sym)
	}
	slices.Sort(out)
	return out
}

// Entry returns a copy of the entry for symbol.
func (m *Manager) Entry(symbol string) (model.WatchEntry, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.state.Entries[strings.ToUpper(symbol)]
	if !ok {
		return model.WatchEntry{}, false
	}
	cp := *e
	cp.RecentComposites = slices.Clone(e.RecentComposites)
	return cp, true
}

// PreviousQuadrants returns the last recorded quadrant of every symbol.
func (m *Manager) PreviousQuadrants() map[string]model.Quadrant {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make(map[string]model.Quadrant, len(m.state.Entries))
	for sym, e := range m.state.Entries {
		if e.LastQuadrant != "" {
			out[sym] = e.LastQuadrant
		}
	}
	return out
}

// Record stores the latest analytics of watched symbols: composite history,
// quadrant and the run of consecutive Leading sessions. Symbols not on the
// watchlist are ignored.
func (m *Manager) Record(results []*model.SymbolAnalytics) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for _, a := range results {
		if a == nil {
			continue
		}
		e, ok := m.state.Entries[a.Symbol]
		if !ok {
			continue
		}
		if a.Strength != nil {
			e.RecentComposites = append(e.RecentComposites, a.Strength.Standard.Composite)
			if len(e.RecentComposites) > maxComposites {
				e.RecentComposites = e.RecentComposites[len(e.RecentComposites)-maxComposites:]
			}
		}
		if a.Rotation != nil {
			e.LastQuadrant = a.Rotation.Quadrant
			if a.Rotation.Quadrant == model.QuadrantLeading {
				e.ConsecutiveLeading++
			} else {
				e.ConsecutiveLeading = 0
			}
		}
		e.LastRating = a.RSRating
		e.LastUpdated = now
	}

	if err := m.save(); err != nil {
		log.Error().Err(err).Msg("failed to save watchlist")
	}
}

func (m *Manager) save() error {
	return SaveState(m.filePath, m.state)
}
