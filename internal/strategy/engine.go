package strategy

import "MarketPulse/internal/model"

// Tiers maps total scores to leadership labels, highest first.
var Tiers = []model.Tier{
	{Label: "Leader", Min: 1.2},
	{Label: "Strong", Min: 0.5},
	{Label: "Neutral", Min: 0},
	{Label: "Weak", Min: -0.8},
}

// DefaultTier is the lowest tier for scores below every threshold.
var DefaultTier = model.Tier{Label: "Laggard", Min: -2}

func mapTier(totalScore float64) model.Tier {
	for _, t := range Tiers {
		if totalScore >= t.Min {
			return t
		}
	}
	return DefaultTier
}

// Evaluate scores a symbol's leadership from its analytics. RSRating should
// already be assigned by Rank.
func Evaluate(a *model.SymbolAnalytics) *model.Signal {
	factors := []model.FactorScore{
		scoreRSRating(a),
		scoreTrendAlignment(a),
		score52WeekPosition(a),
		scoreQuadrant(a),
		scoreSlope(a),
	}

	total := 0.0
	for _, f := range factors {
		total += f.Weighted
	}

	sig := &model.Signal{
		Symbol:     a.Symbol,
		Factors:    factors,
		TotalScore: total,
		Tier:       mapTier(total),
	}

	if a.RSI > 85 {
		sig.WarningMsg = "RSI > 85: extended, consider trimming"
	} else if a.Rotation != nil && a.Rotation.Quadrant == model.QuadrantWeakening && a.RSRating >= 80 {
		sig.WarningMsg = "leader losing momentum"
	}
	return sig
}
