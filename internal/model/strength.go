package model

import "strings"

// RelativeStrengthStats holds benchmark-relative scores per lookback horizon.
type RelativeStrengthStats struct {
	OneMonth   float64 `json:"oneMonth"`
	ThreeMonth float64 `json:"threeMonth"`
	SixMonth   float64 `json:"sixMonth"`
	OneYear    float64 `json:"oneYear"`
	Composite  float64 `json:"composite"`
}

// RelativeStrength pairs the standard and volatility-adjusted stats of a symbol.
type RelativeStrength struct {
	Symbol             string                `json:"symbol"`
	Benchmark          string                `json:"benchmark"`
	AsOf               string                `json:"asOf"`
	Standard           RelativeStrengthStats `json:"standard"`
	VolatilityAdjusted RelativeStrengthStats `json:"volatilityAdjusted"`
}

// Quadrant is the rotation-graph quadrant a symbol sits in versus its benchmark.
type Quadrant string

const (
	QuadrantLeading   Quadrant = "LEADING"
	QuadrantWeakening Quadrant = "WEAKENING"
	QuadrantLagging   Quadrant = "LAGGING"
	QuadrantImproving Quadrant = "IMPROVING"
)

// ParseQuadrant maps a case-insensitive quadrant name onto a Quadrant.
func ParseQuadrant(s string) (Quadrant, bool) {
	q := Quadrant(strings.ToUpper(strings.TrimSpace(s)))
	switch q {
	case QuadrantLeading, QuadrantWeakening, QuadrantLagging, QuadrantImproving:
		return q, true
	}
	return "", false
}

// RotationPoint is one RS-Ratio / RS-Momentum coordinate.
type RotationPoint struct {
	Time     string  `json:"time"`
	Ratio    float64 `json:"ratio"`
	Momentum float64 `json:"momentum"`
}

// Rotation is the rotation-graph trail of a symbol against a benchmark.
type Rotation struct {
	Symbol    string          `json:"symbol"`
	Benchmark string          `json:"benchmark"`
	Quadrant  Quadrant        `json:"quadrant"`
	Trail     []RotationPoint `json:"trail"`
}

// Quadrant classifies the point around the 100/100 center of the graph.
func (p RotationPoint) Quadrant() Quadrant {
	switch {
	case p.Ratio >= 100 && p.Momentum >= 100:
		return QuadrantLeading
	case p.Ratio >= 100:
		return QuadrantWeakening
	case p.Momentum >= 100:
		return QuadrantImproving
	default:
		return QuadrantLagging
	}
}
