package strategy

import (
	"time"

	"MarketPulse/internal/model"
)

// DetectRotationChanges compares each symbol's current quadrant with the
// previous one and reports the moves. Symbols seen for the first time or
// without rotation data produce no event.
func DetectRotationChanges(previous map[string]model.Quadrant, current []*model.SymbolAnalytics, now time.Time) []model.RotationEvent {
	var events []model.RotationEvent
	for _, a := range current {
		if a == nil || a.Rotation == nil || len(a.Rotation.Trail) == 0 {
			continue
		}
		prev, ok := previous[a.Symbol]
		if !ok || prev == "" || prev == a.Rotation.Quadrant {
			continue
		}
		head := a.Rotation.Trail[len(a.Rotation.Trail)-1]
		events = append(events, model.RotationEvent{
			Symbol:    a.Symbol,
			Benchmark: a.Rotation.Benchmark,
			From:      prev,
			To:        a.Rotation.Quadrant,
			AsOf:      head.Time,
			Ratio:     head.Ratio,
			Momentum:  head.Momentum,
			Detected:  now,
		})
	}
	return events
}
