package strategy

import (
	"fmt"

	"MarketPulse/internal/model"
)

// scoreRSRating scores the percentile RS rating across the universe.
// Weight: 0.35
func scoreRSRating(a *model.SymbolAnalytics) model.FactorScore {
	const weight = 0.35
	if a.RSRating == 0 {
		return model.FactorScore{Name: "RS rating", Weight: weight, Commentary: "unrated"}
	}
	r := a.RSRating

	var score float64
	switch {
	case r >= 90:
		score = 2.0
	case r >= 80:
		score = 1.5
	case r >= 70:
		score = 1.0
	case r >= 60:
		score = 0.5
	case r >= 40:
		score = 0
	case r >= 30:
		score = -0.5
	case r >= 20:
		score = -1.0
	case r >= 10:
		score = -1.5
	default:
		score = -2.0
	}

	return model.FactorScore{
		Name:       "RS rating",
		RawScore:   score,
		Weight:     weight,
		Weighted:   score * weight,
		Commentary: fmt.Sprintf("RS=%d", r),
	}
}

// scoreTrendAlignment scores the price / SMA50 / SMA200 stack.
// Weight: 0.25
func scoreTrendAlignment(a *model.SymbolAnalytics) model.FactorScore {
	const weight = 0.25
	sma50, ok50 := a.LastSMA(50)
	sma200, ok200 := a.LastSMA(200)
	if !ok50 || !ok200 {
		return model.FactorScore{Name: "Trend", Weight: weight, Commentary: "not enough history"}
	}
	p := a.CurrentPrice

	var score float64
	var commentary string
	switch {
	case p > sma50 && sma50 > sma200:
		score, commentary = 2.0, "price > SMA50 > SMA200"
	case p > sma200 && sma50 > sma200:
		score, commentary = 1.0, "pullback in uptrend"
	case p > sma50:
		score, commentary = 0.5, "reclaiming SMA50"
	case p < sma50 && sma50 < sma200:
		score, commentary = -2.0, "price < SMA50 < SMA200"
	default:
		score, commentary = -0.5, "below SMA50"
	}

	return model.FactorScore{
		Name:       "Trend",
		RawScore:   score,
		Weight:     weight,
		Weighted:   score * weight,
		Commentary: commentary,
	}
}

// score52WeekPosition scores where the price sits in its 52-week range.
// Higher is better.
// Weight: 0.15
func score52WeekPosition(a *model.SymbolAnalytics) model.FactorScore {
	const weight = 0.15
	pos := a.Position52w * 100

	var score float64
	switch {
	case pos >= 90:
		score = 2.0
	case pos >= 75:
		score = 1.0
	case pos >= 50:
		score = 0.5
	case pos >= 25:
		score = -0.5
	case pos >= 10:
		score = -1.0
	default:
		score = -2.0
	}

	return model.FactorScore{
		Name:       "52w position",
		RawScore:   score,
		Weight:     weight,
		Weighted:   score * weight,
		Commentary: fmt.Sprintf("position=%.0f%%", pos),
	}
}

// scoreQuadrant scores the current rotation-graph quadrant.
// Weight: 0.15
func scoreQuadrant(a *model.SymbolAnalytics) model.FactorScore {
	const weight = 0.15
	if a.Rotation == nil {
		return model.FactorScore{Name: "Rotation", Weight: weight, Commentary: "n/a"}
	}

	var score float64
	switch a.Rotation.Quadrant {
	case model.QuadrantLeading:
		score = 2.0
	case model.QuadrantImproving:
		score = 1.0
	case model.QuadrantWeakening:
		score = -1.0
	default:
		score = -2.0
	}

	return model.FactorScore{
		Name:       "Rotation",
		RawScore:   score,
		Weight:     weight,
		Weighted:   score * weight,
		Commentary: string(a.Rotation.Quadrant),
	}
}

// scoreSlope scores the regression slope of closes as percent of price per bar.
// Weight: 0.10
func scoreSlope(a *model.SymbolAnalytics) model.FactorScore {
	const weight = 0.10
	if a.Trend == nil || a.CurrentPrice == 0 {
		return model.FactorScore{Name: "Slope", Weight: weight, Commentary: "n/a"}
	}
	pct := a.Trend.Slope / a.CurrentPrice * 100

	var score float64
	switch {
	case pct >= 0.5:
		score = 2.0
	case pct >= 0.2:
		score = 1.0
	case pct >= 0:
		score = 0.5
	case pct >= -0.2:
		score = -0.5
	case pct >= -0.5:
		score = -1.0
	default:
		score = -2.0
	}

	return model.FactorScore{
		Name:       "Slope",
		RawScore:   score,
		Weight:     weight,
		Weighted:   score * weight,
		Commentary: fmt.Sprintf("%+.2f%%/day", pct),
	}
}
