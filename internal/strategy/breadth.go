package strategy

import "MarketPulse/internal/model"

// ComputeBreadth summarizes trend participation across the universe.
// A symbol counts toward a moving-average bucket only when that average
// could be computed.
func ComputeBreadth(universe []*model.SymbolAnalytics) model.Breadth {
	var b model.Breadth
	var with50, with200 int
	for _, a := range universe {
		if a == nil {
			continue
		}
		b.Total++
		if a.AsOf > b.AsOf {
			b.AsOf = a.AsOf
		}

		if v, ok := a.LastSMA(50); ok {
			with50++
			if a.CurrentPrice > v {
				b.AboveSMA50++
			}
		}
		if v, ok := a.LastSMA(200); ok {
			with200++
			if a.CurrentPrice > v {
				b.AboveSMA200++
			}
		}

		switch {
		case a.CurrentPrice > a.PrevClose:
			b.Advancers++
		case a.CurrentPrice < a.PrevClose:
			b.Decliners++
		default:
			b.Unchanged++
		}

		// the 52-week range includes today, so touching it means a new extreme
		if a.High52w > 0 && a.DayHigh >= a.High52w {
			b.NewHighs++
		}
		if a.Low52w > 0 && a.DayLow <= a.Low52w {
			b.NewLows++
		}
	}
	if with50 > 0 {
		b.PctAbove50 = 100 * float64(b.AboveSMA50) / float64(with50)
	}
	if with200 > 0 {
		b.PctAbove200 = 100 * float64(b.AboveSMA200) / float64(with200)
	}
	return b
}
