package calculator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MarketPulse/internal/model"
)

func geometric(start, growth float64, n int) []float64 {
	out := make([]float64, n)
	p := start
	for i := range out {
		out[i] = p
		p *= growth
	}
	return out
}

func alternating(start, up, down float64, n int) []float64 {
	out := make([]float64, n)
	p := start
	for i := range out {
		out[i] = p
		if i%2 == 0 {
			p *= up
		} else {
			p *= down
		}
	}
	return out
}

func TestRelativeStrength_SameSeriesIsNeutral(t *testing.T) {
	bars := barsFromCloses(alternating(100, 1.02, 0.99, 300)...)
	rs, err := RelativeStrength(bars, bars)
	require.NoError(t, err)
	assert.Equal(t, model.RelativeStrengthStats{}, rs.Standard)
	assert.Equal(t, model.RelativeStrengthStats{}, rs.VolatilityAdjusted)
	assert.Equal(t, bars[len(bars)-1].Label(), rs.AsOf)
}

func TestRelativeStrength_StandardHorizons(t *testing.T) {
	sym := barsFromCloses(geometric(50, 1.002, 300)...)
	bench := barsFromCloses(geometric(400, 1.001, 300)...)

	rs, err := RelativeStrength(sym, bench)
	require.NoError(t, err)

	outperf := func(h int) float64 {
		return (math.Pow(1.002, float64(h)) - math.Pow(1.001, float64(h))) * 100
	}
	assert.InDelta(t, outperf(21), rs.Standard.OneMonth, 1e-9)
	assert.InDelta(t, outperf(63), rs.Standard.ThreeMonth, 1e-9)
	assert.InDelta(t, outperf(126), rs.Standard.SixMonth, 1e-9)
	assert.InDelta(t, outperf(252), rs.Standard.OneYear, 1e-9)

	composite := 0.2*outperf(21) + 0.4*outperf(63) + 0.2*outperf(126) + 0.2*outperf(252)
	assert.InDelta(t, composite, rs.Standard.Composite, 1e-9)

	// constant growth has no realized volatility
	assert.Equal(t, 0.0, rs.VolatilityAdjusted.Composite)
}

func TestRelativeStrength_VolatilityAdjusted(t *testing.T) {
	sym := barsFromCloses(alternating(100, 1.03, 0.99, 300)...)
	bench := barsFromCloses(alternating(100, 1.006, 0.996, 300)...)

	rs, err := RelativeStrength(sym, bench)
	require.NoError(t, err)
	adj := rs.VolatilityAdjusted
	for _, v := range []float64{adj.OneMonth, adj.ThreeMonth, adj.SixMonth, adj.OneYear, adj.Composite} {
		assert.Greater(t, v, 0.0)
	}
	assert.Greater(t, rs.Standard.Composite, 0.0)
}

func TestRelativeStrength_InsufficientData(t *testing.T) {
	full := barsFromCloses(geometric(100, 1.001, 253)...)
	_, err := RelativeStrength(full, full)
	require.NoError(t, err)

	short := full[:252]
	_, err = RelativeStrength(short, full)
	ide, ok := AsInsufficientData(err)
	require.True(t, ok)
	assert.Equal(t, 253, ide.Required)
	assert.Equal(t, 252, ide.Available)
}

func TestAlignCloses_DropsUnmatchedDates(t *testing.T) {
	sym := barsFromCloses(1, 2, 3, 4)
	bench := barsFromCloses(10, 20, 30, 40)
	bench = append(bench[:1], bench[2:]...)

	s, b, dates := AlignCloses(sym, bench)
	assert.Equal(t, []float64{1, 3, 4}, s)
	assert.Equal(t, []float64{10, 30, 40}, b)
	assert.Equal(t, []string{"2024-01-01", "2024-01-03", "2024-01-04"}, dates)
}

func TestRoundRelativeStrength(t *testing.T) {
	rs := &model.RelativeStrength{
		Standard:           model.RelativeStrengthStats{OneMonth: 1.005, Composite: -2.3449},
		VolatilityAdjusted: model.RelativeStrengthStats{OneYear: 0.126},
	}
	out := RoundRelativeStrength(rs)
	assert.Equal(t, 1.01, out.Standard.OneMonth)
	assert.Equal(t, -2.34, out.Standard.Composite)
	assert.Equal(t, 0.13, out.VolatilityAdjusted.OneYear)
	assert.Equal(t, 1.005, rs.Standard.OneMonth, "input must not change")

	assert.Equal(t, "3.10", Format2(3.1))
	assert.Equal(t, "NaN", Format2(math.NaN()))
}
