package calculator

import (
	"slices"

	"MarketPulse/internal/model"
)

// Extractor picks the value of a bar an engine operates on.
type Extractor func(model.OHLCV) float64

func Open(b model.OHLCV) float64   { return b.Open }
func High(b model.OHLCV) float64   { return b.High }
func Low(b model.OHLCV) float64    { return b.Low }
func Close(b model.OHLCV) float64  { return b.Close }
func Volume(b model.OHLCV) float64 { return b.Volume }

// Typical returns (high + low + close) / 3.
func Typical(b model.OHLCV) float64 { return (b.High + b.Low + b.Close) / 3 }

// ExtractorByName maps a field name to its extractor. Unknown names fall back to Close.
func ExtractorByName(name string) (Extractor, bool) {
	switch name {
	case "open":
		return Open, true
	case "high":
		return High, true
	case "low":
		return Low, true
	case "close", "":
		return Close, true
	case "volume":
		return Volume, true
	case "typical":
		return Typical, true
	}
	return Close, false
}

func orClose(extract Extractor) Extractor {
	if extract == nil {
		return Close
	}
	return extract
}

func compareBars(a, b model.OHLCV) int { return a.Time.Compare(b.Time) }

// ordered returns bars ascending by time. Already-sorted input is returned
// as is; otherwise a stable-sorted copy is made so the caller's slice keeps
// its order.
func ordered(bars []model.OHLCV) []model.OHLCV {
	if slices.IsSortedFunc(bars, compareBars) {
		return bars
	}
	cp := slices.Clone(bars)
	slices.SortStableFunc(cp, compareBars)
	return cp
}

// Values applies extract to every bar in time order. A nil extract reads closes.
func Values(bars []model.OHLCV, extract Extractor) []float64 {
	extract = orClose(extract)
	bars = ordered(bars)
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = extract(b)
	}
	return out
}

// Closes returns the close of every bar in time order.
func Closes(bars []model.OHLCV) []float64 { return Values(bars, Close) }
