package calculator

import "MarketPulse/internal/model"

// RotationTrail computes rotation-graph coordinates of symbol against
// benchmark. The RS line is 100*symbol/benchmark; RS-Ratio normalizes it by
// its own ratioPeriod SMA and RS-Momentum normalizes RS-Ratio by its
// momentumPeriod SMA, so 100 marks parity on both axes.
func RotationTrail(symbol, benchmark []model.OHLCV, ratioPeriod, momentumPeriod int) ([]model.RotationPoint, error) {
	sym, bench, dates := AlignCloses(symbol, benchmark)
	if ratioPeriod <= 0 || momentumPeriod <= 0 {
		return nil, checkWindow("RRG", min(ratioPeriod, momentumPeriod), len(sym))
	}
	if need := ratioPeriod + momentumPeriod - 1; len(sym) < need {
		return nil, insufficient("RRG", need, len(sym))
	}

	rsLine := make([]float64, len(sym))
	for i := range sym {
		if bench[i] != 0 {
			rsLine[i] = 100 * sym[i] / bench[i]
		}
	}

	rsAvg, err := SMAValues(rsLine, ratioPeriod)
	if err != nil {
		return nil, err
	}
	offset := ratioPeriod - 1
	ratio := make([]float64, len(rsAvg))
	for i, avg := range rsAvg {
		ratio[i] = normalize(rsLine[offset+i], avg)
	}

	ratioAvg, err := SMAValues(ratio, momentumPeriod)
	if err != nil {
		return nil, err
	}
	offset2 := momentumPeriod - 1
	points := make([]model.RotationPoint, len(ratioAvg))
	for i, avg := range ratioAvg {
		j := offset2 + i
		points[i] = model.RotationPoint{
			Time:     dates[offset+j],
			Ratio:    ratio[j],
			Momentum: normalize(ratio[j], avg),
		}
	}
	return points, nil
}

func normalize(v, avg float64) float64 {
	if avg == 0 {
		return 100
	}
	return 100 * v / avg
}
