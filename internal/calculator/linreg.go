package calculator

import (
	"fmt"

	"MarketPulse/internal/model"
)

// LinearRegressionFromNumbers fits an OLS line to the trailing period values,
// using x = 1..period rather than calendar time.
func LinearRegressionFromNumbers(data []float64, period int) (model.Regression, error) {
	if period <= 1 {
		return model.Regression{}, fmt.Errorf("LINREG: %w (need at least 2, got %d)", ErrInvalidPeriod, period)
	}
	if len(data) < period {
		return model.Regression{}, insufficient("LINREG", period, len(data))
	}

	n := float64(period)
	var sumX, sumY, sumXY, sumX2 float64
	for i, y := range data[len(data)-period:] {
		x := float64(i + 1)
		sumX += x
		sumY += y
		sumXY += x * y
		sumX2 += x * x
	}

	slope := (n*sumXY - sumX*sumY) / (n*sumX2 - sumX*sumX)
	return model.Regression{
		Slope:      slope,
		YIntercept: (sumY - slope*sumX) / n,
	}, nil
}

// LinearRegression fits the trailing period points of a series.
func LinearRegression(points []model.LinePoint, period int) (model.Regression, error) {
	return LinearRegressionFromNumbers(model.Values(points), period)
}
