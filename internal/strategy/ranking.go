package strategy

import (
	"math"
	"sort"

	"MarketPulse/internal/model"
)

// Rank assigns each analytics entry a percentile RS rating (1-99) from its
// standard composite relative to the rest of the universe. Entries without
// relative strength keep a zero rating. Equal composites share a rating.
func Rank(universe []*model.SymbolAnalytics) {
	var composites []float64
	for _, a := range universe {
		if a != nil && a.Strength != nil {
			composites = append(composites, a.Strength.Standard.Composite)
		}
	}
	sort.Float64s(composites)

	for _, a := range universe {
		if a == nil {
			continue
		}
		if a.Strength == nil {
			a.RSRating = 0
			continue
		}
		a.RSRating = Percentile(composites, a.Strength.Standard.Composite)
	}
}

// Percentile returns the 1-99 rating of v within sorted. The lowest value
// rates 1 and the highest 99; a lone value rates 99.
func Percentile(sorted []float64, v float64) int {
	n := len(sorted)
	if n <= 1 {
		return 99
	}
	below := sort.SearchFloat64s(sorted, v)
	r := 1 + 98*float64(below)/float64(n-1)
	return int(math.Round(r))
}

// ByRating returns the entries sorted by RS rating, strongest first, ties
// broken by composite.
func ByRating(universe []*model.SymbolAnalytics) []*model.SymbolAnalytics {
	out := make([]*model.SymbolAnalytics, 0, len(universe))
	for _, a := range universe {
		if a != nil {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].RSRating != out[j].RSRating {
			return out[i].RSRating > out[j].RSRating
		}
		return composite(out[i]) > composite(out[j])
	})
	return out
}

func composite(a *model.SymbolAnalytics) float64 {
	if a.Strength == nil {
		return math.Inf(-1)
	}
	return a.Strength.Standard.Composite
}
