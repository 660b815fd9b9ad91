package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSMA_ConstantSeries(t *testing.T) {
	data := constant(42.5, 30)
	for _, period := range []int{1, 5, 20, 30} {
		v, err := SMA(data, period)
		require.NoError(t, err)
		assert.InDelta(t, 42.5, v, 1e-9, "period %d", period)

		line, err := CalculateSMA(barsFromCloses(data...), period, nil)
		require.NoError(t, err)
		require.Len(t, line.Timeseries, len(data)-period+1)
		for _, p := range line.Timeseries {
			assert.InDelta(t, 42.5, p.Value, 1e-9)
		}
	}
}

func TestCalculateSMA_HandComputed(t *testing.T) {
	// (100+102+104)/3, (102+104+103)/3, (104+103+105)/3
	line, err := CalculateSMA(barsFromCloses(100, 102, 104, 103, 105), 3, nil)
	require.NoError(t, err)
	require.Equal(t, 3, line.Period)
	require.Len(t, line.Timeseries, 3)

	want := []float64{102, 103, 104}
	for i, p := range line.Timeseries {
		assert.InDelta(t, want[i], p.Value, 1e-9)
	}
	assert.Equal(t, "2024-01-03", line.Timeseries[0].Time)
	assert.Equal(t, "2024-01-05", line.Timeseries[2].Time)
}

func TestCalculateSMA_Extractor(t *testing.T) {
	line, err := CalculateSMA(barsFromCloses(10, 20), 2, High)
	require.NoError(t, err)
	require.Len(t, line.Timeseries, 1)
	assert.InDelta(t, 16.0, line.Timeseries[0].Value, 1e-9)
}

func TestSMA_MatchesSeriesTail(t *testing.T) {
	closes := []float64{5, 7, 6, 9, 12, 11, 10, 14}
	v, err := SMA(closes, 4)
	require.NoError(t, err)
	line, err := CalculateSMA(barsFromCloses(closes...), 4, nil)
	require.NoError(t, err)
	assert.InDelta(t, v, line.Timeseries[len(line.Timeseries)-1].Value, 1e-9)
}

func TestEMA_SeedDivergence(t *testing.T) {
	data := []float64{1, 2, 3, 4, 5}

	// alpha = 0.5, seeded with 1: 1.5, 2.25, 3.125, 4.0625
	scalar, err := EMA(data, 3)
	require.NoError(t, err)
	assert.InDelta(t, 4.0625, scalar, 1e-9)

	// seed = mean(1,2,3) = 2; index 3: 0.5*4+0.5*2 = 3; index 4: 0.5*5+0.5*3 = 4
	line, err := CalculateEMA(barsFromCloses(data...), 3, nil)
	require.NoError(t, err)
	require.Len(t, line.Timeseries, 2)
	assert.InDelta(t, 3.0, line.Timeseries[0].Value, 1e-9)
	assert.InDelta(t, 4.0, line.Timeseries[1].Value, 1e-9)
	assert.Equal(t, "2024-01-04", line.Timeseries[0].Time)

	assert.NotEqual(t, scalar, line.Timeseries[0].Value)
	assert.NotEqual(t, scalar, line.Timeseries[1].Value)
}

func TestCalculateEMA_HandComputed(t *testing.T) {
	// seed (100+102+104)/3 = 102; 103*0.5+102*0.5; 105*0.5+102.5*0.5
	line, err := CalculateEMA(barsFromCloses(100, 102, 104, 103, 105), 3, nil)
	require.NoError(t, err)
	require.Len(t, line.Timeseries, 2)
	assert.InDelta(t, 102.5, line.Timeseries[0].Value, 1e-9)
	assert.InDelta(t, 103.75, line.Timeseries[1].Value, 1e-9)
}

func TestCalculateEMA_ExactPeriodIsEmpty(t *testing.T) {
	line, err := CalculateEMA(barsFromCloses(1, 2, 3), 3, nil)
	require.NoError(t, err)
	assert.Empty(t, line.Timeseries)
}

func TestMovingAverages_InsufficientData(t *testing.T) {
	data := []float64{1, 2, 3, 4}
	bars := barsFromCloses(data...)

	_, err := SMA(data, 4)
	require.NoError(t, err)
	_, err = SMA(data[:3], 4)
	require.True(t, IsInsufficientData(err))

	_, err = EMA(data, 4)
	require.NoError(t, err)
	_, err = EMA(data[:3], 4)
	require.True(t, IsInsufficientData(err))

	_, err = CalculateSMA(bars, 4, nil)
	require.NoError(t, err)
	_, err = CalculateSMA(bars[:3], 4, nil)
	ide, ok := AsInsufficientData(err)
	require.True(t, ok)
	assert.Equal(t, "SMA", ide.Engine)
	assert.Equal(t, 4, ide.Required)
	assert.Equal(t, 3, ide.Available)

	_, err = CalculateEMA(bars[:3], 4, nil)
	require.True(t, IsInsufficientData(err))
}

func TestMovingAverages_InvalidPeriod(t *testing.T) {
	_, err := SMA([]float64{1}, 0)
	require.ErrorIs(t, err, ErrInvalidPeriod)
	_, err = CalculateEMA(barsFromCloses(1, 2), -1, nil)
	require.ErrorIs(t, err, ErrInvalidPeriod)
	assert.False(t, IsInsufficientData(err))
}

func TestCalculateSMA_UnsortedInput(t *testing.T) {
	bars := barsFromCloses(100, 102, 104, 103, 105)
	shuffled := reversed(bars)
	firstBefore := shuffled[0]

	want, err := CalculateSMA(bars, 3, nil)
	require.NoError(t, err)
	got, err := CalculateSMA(shuffled, 3, nil)
	require.NoError(t, err)

	assert.Equal(t, want, got)
	assert.Equal(t, firstBefore, shuffled[0], "caller slice must keep its order")
}

func TestSMAValues(t *testing.T) {
	out, err := SMAValues([]float64{2, 4, 6, 8}, 2)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 5, 7}, out)
}
