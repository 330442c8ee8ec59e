// Package backtest replays predicted signals through a single-position
// trade simulator and summarizes realized performance.
package backtest

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/quantbyte/signalscan/models"
)

// Simulator replays buy/sell/hold signals against a bar series, one
// position at a time. Capital and position arithmetic runs on decimals so
// commission math is exact.
type Simulator struct {
	initialCapital decimal.Decimal
	commission     decimal.Decimal
}

// New creates a simulator with the given flat commission rate (0.10 means
// 10% of notional per fill) and an initial capital of 10000.
func New(commission float64) *Simulator {
	return &Simulator{
		initialCapital: decimal.NewFromInt(10000),
		commission:     decimal.NewFromFloat(commission),
	}
}

// Run replays the signals in bar order and returns the performance summary.
// Signals reference bar indices; bars without a signal (rows dropped during
// feature curation) are skipped, never filled or interpolated.
//
// State machine: Flat--(+1)-->Holding converts all capital into a position
// net of commission; Holding--(-1)-->Flat converts the position back and
// records the realized return against the initial capital. Every other
// (state, signal) pair is a no-op: no pyramiding, no partial exits. An open
// position at the end of the series is not force-closed.
//
// TotalReturnPct is 100x the last recorded round-trip return, a final
// realized P&L snapshot rather than a compounded series. NumTrades counts
// both buys and sells.
func (s *Simulator) Run(bars []models.PriceBar, signals []models.Signal) models.PerformanceSummary {
	ordered := make([]models.Signal, len(signals))
	copy(ordered, signals)
	sort.Slice(ordered, func(a, b int) bool { return ordered[a].Index < ordered[b].Index })

	one := decimal.NewFromInt(1)
	keep := one.Sub(s.commission)

	capital := s.initialCapital
	position := decimal.Zero
	holding := false

	numTrades := 0
	roundTrips := 0
	wins := 0
	var lastReturn decimal.Decimal

	for _, sig := range ordered {
		if sig.Index < 0 || sig.Index >= len(bars) {
			continue
		}
		price := decimal.NewFromFloat(bars[sig.Index].Close)
		if price.IsZero() {
			continue
		}

		switch {
		case !holding && sig.Value == 1:
			position = capital.Div(price).Mul(keep)
			capital = decimal.Zero
			holding = true
			numTrades++

		case holding && sig.Value == -1:
			capital = position.Mul(price).Mul(keep)
			position = decimal.Zero
			holding = false
			numTrades++

			lastReturn = capital.Sub(s.initialCapital).Div(s.initialCapital)
			roundTrips++
			if lastReturn.IsPositive() {
				wins++
			}
		}
	}

	if roundTrips == 0 {
		return models.PerformanceSummary{}
	}
	return models.PerformanceSummary{
		TotalReturnPct: lastReturn.Mul(decimal.NewFromInt(100)).InexactFloat64(),
		NumTrades:      numTrades,
		WinRatePct:     100 * float64(wins) / float64(roundTrips),
	}
}
