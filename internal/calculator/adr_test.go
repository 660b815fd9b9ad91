package calculator

import (
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestADRPercent_Scalar(t *testing.T) {
	// ranges are 2 on closes 100 and 50: 2% and 4%
	v, err := ADRPercent(barsFromCloses(200, 100, 50), 2)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, v, 1e-9)
}

func TestADRPercent_ZeroCloseGuard(t *testing.T) {
	bars := barsFromCloses(100, 100)
	bars[1].Close = 0

	v, err := ADRPercent(bars, 2)
	require.NoError(t, err)
	assert.False(t, math.IsNaN(v))
	assert.False(t, math.IsInf(v, 0))
	assert.InDelta(t, 1.0, v, 1e-9) // (2 + 0) / 2

	series, err := ADRPercentSeries(bars, 1)
	require.NoError(t, err)
	require.Len(t, series, 2)
	assert.Equal(t, 0.0, series[1].Value)
}

func TestADRPercent_NaNClose(t *testing.T) {
	bars := barsFromCloses(100)
	bars[0].Close = math.NaN()
	v, err := ADRPercent(bars, 1)
	require.NoError(t, err)
	assert.Equal(t, 0.0, v)
}

func TestADRPercent_InsufficientData(t *testing.T) {
	bars := barsFromCloses(100, 101, 102)

	_, err := ADRPercent(bars, 3)
	require.NoError(t, err)

	assert.NotPanics(t, func() {
		_, err = ADRPercent(bars[:2], 3)
	})
	require.True(t, IsInsufficientData(err))

	_, err = ADRPercentSeries(bars[:2], 3)
	require.True(t, IsInsufficientData(err))
}

func TestADRPercentSeries_Windows(t *testing.T) {
	series, err := ADRPercentSeries(barsFromCloses(200, 100, 50, 100), 2)
	require.NoError(t, err)
	require.Len(t, series, 3)

	want := []float64{1.5, 3.0, 3.0}
	for i, p := range series {
		assert.InDelta(t, want[i], p.Value, 1e-9)
	}
	assert.Equal(t, "2024-01-02", series[0].Time)
	assert.Equal(t, "2024-01-04", series[2].Time)
}

func TestADRPercent_DoesNotReorderCaller(t *testing.T) {
	bars := reversed(barsFromCloses(200, 100, 50, 100))
	snapshot := slices.Clone(bars)

	first, err := ADRPercentSeries(bars, 2)
	require.NoError(t, err)
	assert.Equal(t, snapshot, bars)

	second, err := ADRPercentSeries(bars, 2)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// the sorted view is used: last window is the 2024-01-04 bar
	assert.Equal(t, "2024-01-04", first[len(first)-1].Time)
}
