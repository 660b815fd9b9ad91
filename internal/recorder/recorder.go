package recorder

import (
	"context"
	"errors"
	"time"

	"MarketPulse/internal/model"
)

// ErrNotFound is returned by reads that match no row.
var ErrNotFound = errors.New("no snapshot recorded")

// RSSnapshot is one persisted relative-strength evaluation.
type RSSnapshot struct {
	Timestamp          time.Time                   `json:"timestamp"`
	AsOf               string                      `json:"asOf"`
	Symbol             string                      `json:"symbol"`
	Benchmark          string                      `json:"benchmark"`
	Price              float64                     `json:"price"`
	Standard           model.RelativeStrengthStats `json:"standard"`
	VolatilityAdjusted model.RelativeStrengthStats `json:"volatilityAdjusted"`
	RSRating           int                         `json:"rsRating"`
	Quadrant           model.Quadrant              `json:"quadrant,omitempty"`
	Ratio              float64                     `json:"ratio"`
	Momentum           float64                     `json:"momentum"`
	ADRPercent         float64                     `json:"adrPercent"`
	TotalScore         float64                     `json:"totalScore"`
	TierLabel          string                      `json:"tier"`
}

// NewRSSnapshot flattens analytics and the optional signal into a snapshot.
func NewRSSnapshot(a *model.SymbolAnalytics, sig *model.Signal) *RSSnapshot {
	s := &RSSnapshot{
		Timestamp: a.ComputedAt,
		AsOf:      a.AsOf,
		Symbol:    a.Symbol,
		Benchmark: a.Benchmark,
		Price:     a.CurrentPrice,
		RSRating:  a.RSRating,
	}
	if s.Timestamp.IsZero() {
		s.Timestamp = time.Now()
	}
	if a.Strength != nil {
		s.Standard = a.Strength.Standard
		s.VolatilityAdjusted = a.Strength.VolatilityAdjusted
	}
	if a.Rotation != nil && len(a.Rotation.Trail) > 0 {
		head := a.Rotation.Trail[len(a.Rotation.Trail)-1]
		s.Quadrant, s.Ratio, s.Momentum = a.Rotation.Quadrant, head.Ratio, head.Momentum
	}
	if a.ADRPercent != nil {
		s.ADRPercent = *a.ADRPercent
	}
	if sig != nil {
		s.TotalScore, s.TierLabel = sig.TotalScore, sig.Tier.Label
	}
	return s
}

// Recorder persists historical data for analysis.
type Recorder interface {
	RecordRS(ctx context.Context, snap *RSSnapshot) error
	RecordRotation(ctx context.Context, evt model.RotationEvent) error
	RecordBreadth(ctx context.Context, b model.Breadth) error
	LatestRS(ctx context.Context, symbol string) (*RSSnapshot, error)
	Close() error
}
