package strategy

import (
	"slices"

	"MarketPulse/internal/model"
)

// Criteria filters a universe. Zero values disable a filter.
type Criteria struct {
	MinADRPercent float64
	AboveSMA      int // price must close above this SMA period
	MinRSRating   int
	Quadrants     []model.Quadrant
}

// Screen returns the entries matching every enabled criterion, ordered by RS rating.
func Screen(universe []*model.SymbolAnalytics, c Criteria) []*model.SymbolAnalytics {
	var out []*model.SymbolAnalytics
	for _, a := range ByRating(universe) {
		if c.Match(a) {
			out = append(out, a)
		}
	}
	return out
}

// Match reports whether a passes the criteria.
func (c Criteria) Match(a *model.SymbolAnalytics) bool {
	if c.MinADRPercent > 0 && (a.ADRPercent == nil || *a.ADRPercent < c.MinADRPercent) {
		return false
	}
	if c.AboveSMA > 0 {
		v, ok := a.LastSMA(c.AboveSMA)
		if !ok || a.CurrentPrice <= v {
			return false
		}
	}
	if c.MinRSRating > 0 && a.RSRating < c.MinRSRating {
		return false
	}
	if len(c.Quadrants) > 0 && (a.Rotation == nil || !slices.Contains(c.Quadrants, a.Rotation.Quadrant)) {
		return false
	}
	return true
}
