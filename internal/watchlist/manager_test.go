package watchlist

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MarketPulse/internal/model"
)

func newManager(t *testing.T, seed ...string) (*Manager, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data", "watchlist.json")
	m, err := NewManager(path, seed)
	require.NoError(t, err)
	return m, path
}

func result(symbol string, composite float64, q model.Quadrant) *model.SymbolAnalytics {
	return &model.SymbolAnalytics{
		Symbol:   symbol,
		RSRating: 80,
		Strength: &model.RelativeStrength{Standard: model.RelativeStrengthStats{Composite: composite}},
		Rotation: &model.Rotation{Quadrant: q},
	}
}

func TestNewManager_SeedsEmptyState(t *testing.T) {
	m, path := newManager(t, "nvda", "aapl", "bad symbol!")
	assert.Equal(t, []string{"AAPL", "NVDA"}, m.Symbols())

	_, err := os.Stat(path)
	require.NoError(t, err)

	// seed is ignored once the file has entries
	again, err := NewManager(path, []string{"MSFT"})
	require.NoError(t, err)
	assert.Equal(t, []string{"AAPL", "NVDA"}, again.Symbols())
}

func TestAddRemove(t *testing.T) {
	m, path := newManager(t)

	added, err := m.Add(" msft ")
	require.NoError(t, err)
	assert.True(t, added)

	added, err = m.Add("MSFT")
	require.NoError(t, err)
	assert.False(t, added)

	_, err = m.Add("")
	assert.ErrorIs(t, err, ErrInvalidSymbol)

	assert.ErrorIs(t, m.Remove("TSLA"), ErrUnknownSymbol)
	require.NoError(t, m.Remove("msft"))
	assert.Empty(t, m.Symbols())

	reloaded, err := LoadState(path)
	require.NoError(t, err)
	assert.Empty(t, reloaded.Entries)
}

func TestRecord_TracksCompositesAndLeading(t *testing.T) {
	m, path := newManager(t, "AAA")

	for i := range 15 {
		m.Record([]*model.SymbolAnalytics{result("AAA", float64(i), model.QuadrantLeading), result("ZZZ", 1, model.QuadrantLagging), nil})
	}
	e, ok := m.Entry("aaa")
	require.True(t, ok)
	assert.Len(t, e.RecentComposites, maxComposites)
	assert.Equal(t, 3.0, e.RecentComposites[0])
	assert.Equal(t, 14.0, e.RecentComposites[11])
	assert.Equal(t, 15, e.ConsecutiveLeading)
	assert.Equal(t, 80, e.LastRating)

	m.Record([]*model.SymbolAnalytics{result("AAA", 0, model.QuadrantWeakening)})
	e, _ = m.Entry("AAA")
	assert.Zero(t, e.ConsecutiveLeading)
	assert.Equal(t, map[string]model.Quadrant{"AAA": model.QuadrantWeakening}, m.PreviousQuadrants())

	_, ok = m.Entry("ZZZ")
	assert.False(t, ok)

	state, err := LoadState(path)
	require.NoError(t, err)
	assert.Equal(t, model.QuadrantWeakening, state.Entries["AAA"].LastQuadrant)
}

func TestEntry_ReturnsCopy(t *testing.T) {
	m, _ := newManager(t, "AAA")
	m.Record([]*model.SymbolAnalytics{result("AAA", 5, model.QuadrantLeading)})

	e, _ := m.Entry("AAA")
	e.RecentComposites[0] = 99
	again, _ := m.Entry("AAA")
	assert.Equal(t, 5.0, again.RecentComposites[0])
}

func TestLoadState_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "w.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	_, err := NewManager(path, nil)
	assert.Error(t, err)
}

func TestNormalize(t *testing.T) {
	for _, s := range []string{"spy", "BRK.B", "^GSPC", "ES=F", "btc-usd"} {
		_, err := Normalize(s)
		assert.NoError(t, err, s)
	}
	for _, s := range []string{"", "A B", "WAYTOOLONGSYMBOL1", "<script>"} {
		_, err := Normalize(s)
		assert.ErrorIs(t, err, ErrInvalidSymbol, s)
	}
}
