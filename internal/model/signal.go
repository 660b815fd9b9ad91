package model

import "time"

// FactorScore represents a single scoring factor's evaluation.
type FactorScore struct {
	Name       string  `json:"name"`
	RawScore   float64 `json:"rawScore"` // -2 ~ +2
	Weight     float64 `json:"weight"`
	Weighted   float64 `json:"weighted"` // RawScore * Weight
	Commentary string  `json:"commentary"`
}

// Tier is the leadership bucket a total score maps to.
type Tier struct {
	Label string  `json:"label"`
	Min   float64 `json:"min"`
}

// Signal is the leadership evaluation of one symbol.
type Signal struct {
	Symbol     string        `json:"symbol"`
	Factors    []FactorScore `json:"factors"`
	TotalScore float64       `json:"totalScore"`
	Tier       Tier          `json:"tier"`
	WarningMsg string        `json:"warning,omitempty"`
}

// RotationEvent records a symbol moving between rotation quadrants.
type RotationEvent struct {
	Symbol    string    `json:"symbol"`
	Benchmark string    `json:"benchmark"`
	From      Quadrant  `json:"from"`
	To        Quadrant  `json:"to"`
	AsOf      string    `json:"asOf"`
	Ratio     float64   `json:"ratio"`
	Momentum  float64   `json:"momentum"`
	Detected  time.Time `json:"detected"`
}

// Breadth summarizes participation across a universe of symbols.
type Breadth struct {
	AsOf        string  `json:"asOf"`
	Total       int     `json:"total"`
	AboveSMA50  int     `json:"aboveSma50"`
	AboveSMA200 int     `json:"aboveSma200"`
	Advancers   int     `json:"advancers"`
	Decliners   int     `json:"decliners"`
	Unchanged   int     `json:"unchanged"`
	NewHighs    int     `json:"newHighs"`
	NewLows     int     `json:"newLows"`
	PctAbove50  float64 `json:"pctAbove50"`
	PctAbove200 float64 `json:"pctAbove200"`
}
