package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MarketPulse/internal/model"
)

func TestLinearRegression_PerfectLine(t *testing.T) {
	for _, period := range []int{2, 3, 10, 50} {
		data := make([]float64, period)
		for i := range data {
			x := float64(i + 1)
			data[i] = 2*x + 1
		}
		fit, err := LinearRegressionFromNumbers(data, period)
		require.NoError(t, err)
		assert.InDelta(t, 2.0, fit.Slope, 1e-9, "period %d", period)
		assert.InDelta(t, 1.0, fit.YIntercept, 1e-9, "period %d", period)
	}
}

func TestLinearRegression_UsesTrailingWindow(t *testing.T) {
	// the window restarts x at 1, so only the slope carries over
	data := []float64{100, -50, 7, 3, 5, 7, 9}
	fit, err := LinearRegressionFromNumbers(data, 4)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, fit.Slope, 1e-9)
	assert.InDelta(t, 1.0, fit.YIntercept, 1e-9)
}

func TestLinearRegression_Points(t *testing.T) {
	points := []model.LinePoint{
		{Time: "2024-01-01", Value: 10},
		{Time: "2024-01-02", Value: 8},
		{Time: "2024-01-03", Value: 6},
	}
	fit, err := LinearRegression(points, 3)
	require.NoError(t, err)
	assert.InDelta(t, -2.0, fit.Slope, 1e-9)
	assert.InDelta(t, 12.0, fit.YIntercept, 1e-9)
}

func TestLinearRegression_Errors(t *testing.T) {
	_, err := LinearRegressionFromNumbers([]float64{1, 2, 3}, 1)
	require.ErrorIs(t, err, ErrInvalidPeriod)

	_, err = LinearRegressionFromNumbers([]float64{1, 2, 3}, 3)
	require.NoError(t, err)
	_, err = LinearRegressionFromNumbers([]float64{1, 2}, 3)
	require.True(t, IsInsufficientData(err))
}
