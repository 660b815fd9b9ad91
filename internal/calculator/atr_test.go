package calculator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MarketPulse/internal/model"
)

func gapBars() []model.OHLCV {
	return []model.OHLCV{
		{Time: day0, High: 10, Low: 8, Close: 9},
		{Time: day0.AddDate(0, 0, 1), High: 11, Low: 9, Close: 10},
		{Time: day0.AddDate(0, 0, 2), High: 15, Low: 13, Close: 14},
	}
}

func TestATR_PeriodOneIsTrueRange(t *testing.T) {
	bars := gapBars()
	line, err := ATR(bars, 1)
	require.NoError(t, err)
	require.Len(t, line.Timeseries, len(bars))

	// 10-8; max(2, |11-9|, |9-9|); max(2, |15-10|, |13-10|)
	want := []float64{2, 2, 5}
	for i, p := range line.Timeseries {
		assert.InDelta(t, want[i], p.Value, 1e-9)
	}
}

func TestATR_SlidingWindow(t *testing.T) {
	line, err := ATR(gapBars(), 2)
	require.NoError(t, err)
	require.Len(t, line.Timeseries, 2)
	assert.Equal(t, 2, line.Period)
	assert.InDelta(t, 2.0, line.Timeseries[0].Value, 1e-9)
	assert.InDelta(t, 3.5, line.Timeseries[1].Value, 1e-9)
	assert.Equal(t, "2024-01-03", line.Timeseries[1].Time)
}

func TestATR_FirstBarUsesOwnClose(t *testing.T) {
	bars := []model.OHLCV{{Time: time.Unix(0, 0), High: 105, Low: 95, Close: 50}}
	line, err := ATR(bars, 1)
	require.NoError(t, err)
	assert.InDelta(t, 55.0, line.Timeseries[0].Value, 1e-9) // |low - own close| dominates
}

func TestATR_InsufficientData(t *testing.T) {
	bars := gapBars()
	_, err := ATR(bars, 3)
	require.NoError(t, err)
	_, err = ATR(bars[:2], 3)
	require.True(t, IsInsufficientData(err))
}

func TestATR_Idempotent(t *testing.T) {
	bars := gapBars()
	a, err := ATR(bars, 2)
	require.NoError(t, err)
	b, err := ATR(bars, 2)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Equal(t, gapBars(), bars)
}
