package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateRSI_Wilder(t *testing.T) {
	// first RSI(5) value of 44, 44.34, 44.09, 43.61, 44.33, 44.83 is ~68.11
	rsi, err := CalculateRSI(barsFromCloses(44, 44.34, 44.09, 43.61, 44.33, 44.83), 5)
	require.NoError(t, err)
	assert.InDelta(t, 68.112, rsi, 0.1)
}

func TestCalculateRSI_AllUp(t *testing.T) {
	rsi, err := CalculateRSI(barsFromCloses(1, 2, 3, 4, 5, 6, 7), 5)
	require.NoError(t, err)
	assert.Equal(t, 100.0, rsi)
}

func TestCalculateRSI_InsufficientData(t *testing.T) {
	_, err := CalculateRSI(barsFromCloses(1, 2, 3, 4, 5), 5)
	require.True(t, IsInsufficientData(err))
	_, err = CalculateRSI(barsFromCloses(1, 2), 0)
	require.ErrorIs(t, err, ErrInvalidPeriod)
}

func TestRangePosition(t *testing.T) {
	high, low, err := HighLow(barsFromCloses(10, 30, 20), Days52w)
	require.NoError(t, err)
	assert.Equal(t, 31.0, high)
	assert.Equal(t, 9.0, low)

	pos, err := RangePosition(20, high, low)
	require.NoError(t, err)
	assert.InDelta(t, 11.0/22.0, pos, 1e-9)

	pos, _ = RangePosition(50, high, low)
	assert.Equal(t, 1.0, pos)
	pos, _ = RangePosition(5, 5, 5)
	assert.Equal(t, 0.5, pos)
	_, err = RangePosition(1, 1, 2)
	assert.Error(t, err)
}
