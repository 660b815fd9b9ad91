package recorder

import (
	"context"

	"MarketPulse/internal/model"
)

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordRS(context.Context, *RSSnapshot) error               { return nil }
func (n *NoopRecorder) RecordRotation(context.Context, model.RotationEvent) error { return nil }
func (n *NoopRecorder) RecordBreadth(context.Context, model.Breadth) error        { return nil }
func (n *NoopRecorder) LatestRS(context.Context, string) (*RSSnapshot, error) {
	return nil, ErrNotFound
}
func (n *NoopRecorder) Close() error { return nil }
