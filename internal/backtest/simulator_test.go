package backtest

import (
	"math"
	"testing"
	"time"

	"github.com/quantbyte/signalscan/models"
)

func priceBars(closes ...float64) []models.PriceBar {
	bars := make([]models.PriceBar, len(closes))
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, c := range closes {
		bars[i] = models.PriceBar{
			Timestamp: base.AddDate(0, 0, i),
			Open:      c, High: c + 1, Low: c - 1, Close: c,
			Volume: 1000,
		}
	}
	return bars
}

func TestRunSingleRoundTrip(t *testing.T) {
	// With a 10% commission on both fills: 10000/100*0.9 = 90 units,
	// 90*110*0.9 = 8910, return (8910-10000)/10000 = -10.9% despite a
	// 10% price gain.
	bars := priceBars(100, 110)
	signals := []models.Signal{{Index: 0, Value: 1}, {Index: 1, Value: -1}}

	got := New(0.10).Run(bars, signals)

	if math.Abs(got.TotalReturnPct-(-10.9)) > 1e-9 {
		t.Errorf("TotalReturnPct = %v, want -10.9", got.TotalReturnPct)
	}
	if got.NumTrades != 2 {
		t.Errorf("NumTrades = %d, want 2", got.NumTrades)
	}
	if got.WinRatePct != 0 {
		t.Errorf("WinRatePct = %v, want 0", got.WinRatePct)
	}
}

func TestRunNoSignals(t *testing.T) {
	bars := priceBars(100, 110, 120)
	signals := []models.Signal{{Index: 0, Value: 0}, {Index: 1, Value: 0}, {Index: 2, Value: 0}}

	got := New(0.10).Run(bars, signals)
	want := models.PerformanceSummary{}
	if got != want {
		t.Errorf("Run() = %+v, want zero summary", got)
	}
}

func TestRunOpenPositionNotForceClosed(t *testing.T) {
	bars := priceBars(100, 150, 200)
	signals := []models.Signal{{Index: 0, Value: 1}} // buy, never sell

	got := New(0.10).Run(bars, signals)
	want := models.PerformanceSummary{}
	if got != want {
		t.Errorf("Run() = %+v, want zero summary for zero round trips", got)
	}
}

func TestRunNoPyramidingNoShortFromFlat(t *testing.T) {
	bars := priceBars(100, 100, 100, 200)
	signals := []models.Signal{
		{Index: 0, Value: -1}, // sell while flat: no-op
		{Index: 1, Value: 1},  // buy
		{Index: 2, Value: 1},  // buy while holding: no-op
		{Index: 3, Value: -1}, // sell
	}

	got := New(0).Run(bars, signals)

	if got.NumTrades != 2 {
		t.Errorf("NumTrades = %d, want 2 (repeated signals are no-ops)", got.NumTrades)
	}
	// Commission-free: 10000/100 = 100 units, 100*200 = 20000, +100%.
	if math.Abs(got.TotalReturnPct-100) > 1e-9 {
		t.Errorf("TotalReturnPct = %v, want 100", got.TotalReturnPct)
	}
	if got.WinRatePct != 100 {
		t.Errorf("WinRatePct = %v, want 100", got.WinRatePct)
	}
}

func TestRunReportsLastRoundTripReturn(t *testing.T) {
	// Two commission-free round trips: +100% then back down to +0% overall.
	// The summary reports the last recorded return, a final realized P&L
	// snapshot rather than a compounded series.
	bars := priceBars(100, 200, 200, 100)
	signals := []models.Signal{
		{Index: 0, Value: 1},
		{Index: 1, Value: -1},
		{Index: 2, Value: 1},
		{Index: 3, Value: -1},
	}

	got := New(0).Run(bars, signals)

	if math.Abs(got.TotalReturnPct-0) > 1e-9 {
		t.Errorf("TotalReturnPct = %v, want 0 (last round trip)", got.TotalReturnPct)
	}
	if got.NumTrades != 4 {
		t.Errorf("NumTrades = %d, want 4", got.NumTrades)
	}
	if math.Abs(got.WinRatePct-50) > 1e-9 {
		t.Errorf("WinRatePct = %v, want 50 (one win of two)", got.WinRatePct)
	}
}

func TestRunSkipsCuratedOutRows(t *testing.T) {
	// Only rows 2 and 5 carry signals; the gaps are skipped, not filled.
	bars := priceBars(100, 100, 100, 100, 100, 300)
	signals := []models.Signal{
		{Index: 2, Value: 1},
		{Index: 5, Value: -1},
	}

	got := New(0).Run(bars, signals)

	if got.NumTrades != 2 {
		t.Errorf("NumTrades = %d, want 2", got.NumTrades)
	}
	if math.Abs(got.TotalReturnPct-200) > 1e-9 {
		t.Errorf("TotalReturnPct = %v, want 200", got.TotalReturnPct)
	}
}

func TestRunOutOfOrderSignals(t *testing.T) {
	// Replay is strict timestamp order regardless of the slice order.
	bars := priceBars(100, 200)
	signals := []models.Signal{
		{Index: 1, Value: -1},
		{Index: 0, Value: 1},
	}

	got := New(0).Run(bars, signals)
	if got.NumTrades != 2 || math.Abs(got.TotalReturnPct-100) > 1e-9 {
		t.Errorf("Run() = %+v, want one +100%% round trip", got)
	}
}
