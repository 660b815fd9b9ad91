package calculator

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"

	"MarketPulse/internal/model"
)

// Round2 rounds v half away from zero to two decimals. NaN and Inf pass through.
func Round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// Format2 renders v with exactly two decimals.
func Format2(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return decimal.NewFromFloat(v).StringFixed(2)
}

// RoundStats rounds every field of s to two decimals.
func RoundStats(s model.RelativeStrengthStats) model.RelativeStrengthStats {
	return model.RelativeStrengthStats{
		OneMonth:   Round2(s.OneMonth),
		ThreeMonth: Round2(s.ThreeMonth),
		SixMonth:   Round2(s.SixMonth),
		OneYear:    Round2(s.OneYear),
		Composite:  Round2(s.Composite),
	}
}

// RoundRelativeStrength returns a display copy of rs with both stat sets rounded.
func RoundRelativeStrength(rs *model.RelativeStrength) *model.RelativeStrength {
	if rs == nil {
		return nil
	}
	out := *rs
	out.Standard = RoundStats(rs.Standard)
	out.VolatilityAdjusted = RoundStats(rs.VolatilityAdjusted)
	return &out
}
