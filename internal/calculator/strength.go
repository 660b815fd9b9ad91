package calculator

import (
	"math"

	"MarketPulse/internal/model"
)

// Lookback horizons in trading days.
const (
	HorizonOneMonth   = 21
	HorizonThreeMonth = 63
	HorizonSixMonth   = 126
	HorizonOneYear    = 252
)

// Composite blend weights for the 1M, 3M, 6M and 1Y horizons.
var CompositeWeights = [4]float64{0.2, 0.4, 0.2, 0.2}

var horizons = [4]int{HorizonOneMonth, HorizonThreeMonth, HorizonSixMonth, HorizonOneYear}

// AlignCloses pairs symbol and benchmark closes on matching bar dates.
// Dates missing from either side are dropped.
func AlignCloses(symbol, benchmark []model.OHLCV) (sym, bench []float64, dates []string) {
	byDate := make(map[string]float64, len(benchmark))
	for _, b := range benchmark {
		byDate[b.Label()] = b.Close
	}
	for _, b := range ordered(symbol) {
		bc, ok := byDate[b.Label()]
		if !ok {
			continue
		}
		sym = append(sym, b.Close)
		bench = append(bench, bc)
		dates = append(dates, b.Label())
	}
	return sym, bench, dates
}

// RelativeStrength compares the symbol's returns with the benchmark's over
// 1, 3, 6 and 12 months. Standard values are outperformance in percentage
// points; volatility-adjusted values compare return per unit of realized
// volatility over the same window.
func RelativeStrength(symbol, benchmark []model.OHLCV) (*model.RelativeStrength, error) {
	sym, bench, dates := AlignCloses(symbol, benchmark)
	if need := HorizonOneYear + 1; len(sym) < need {
		return nil, insufficient("RS", need, len(sym))
	}

	var std, adj [4]float64
	for i, h := range horizons {
		sr := horizonReturn(sym, h)
		br := horizonReturn(bench, h)
		std[i] = (sr - br) * 100
		adj[i] = perUnitVol(sr, realizedVol(sym, h)) - perUnitVol(br, realizedVol(bench, h))
	}

	return &model.RelativeStrength{
		AsOf:               dates[len(dates)-1],
		Standard:           blend(std),
		VolatilityAdjusted: blend(adj),
	}, nil
}

func blend(v [4]float64) model.RelativeStrengthStats {
	composite := 0.0
	for i, w := range CompositeWeights {
		composite += w * v[i]
	}
	return model.RelativeStrengthStats{
		OneMonth:   v[0],
		ThreeMonth: v[1],
		SixMonth:   v[2],
		OneYear:    v[3],
		Composite:  composite,
	}
}

// horizonReturn is the simple return over the last h intervals.
func horizonReturn(closes []float64, h int) float64 {
	last := len(closes) - 1
	base := closes[last-h]
	if base == 0 || math.IsNaN(base) {
		return 0
	}
	return closes[last]/base - 1
}

// realizedVol is the population standard deviation of the last h daily log
// returns, scaled to the window by sqrt(h).
func realizedVol(closes []float64, h int) float64 {
	last := len(closes) - 1
	rets := make([]float64, 0, h)
	for i := last - h + 1; i <= last; i++ {
		prev, cur := closes[i-1], closes[i]
		if prev <= 0 || cur <= 0 {
			rets = append(rets, 0)
			continue
		}
		rets = append(rets, math.Log(cur/prev))
	}
	_, sd := MeanStd(rets)
	return sd * math.Sqrt(float64(h))
}

// volFloor treats rounding noise in a constant-growth series as zero volatility.
const volFloor = 1e-12

func perUnitVol(ret, vol float64) float64 {
	if vol < volFloor {
		return 0
	}
	return ret / vol
}

// MeanStd returns the mean and population standard deviation of data.
func MeanStd(data []float64) (mean, std float64) {
	if len(data) == 0 {
		return 0, 0
	}
	for _, v := range data {
		mean += v
	}
	mean /= float64(len(data))
	if len(data) == 1 {
		return mean, 0
	}
	variance := 0.0
	for _, v := range data {
		variance += (v - mean) * (v - mean)
	}
	return mean, math.Sqrt(variance / float64(len(data)))
}
