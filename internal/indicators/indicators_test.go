package indicators

import (
	"math"
	"testing"
	"time"

	"github.com/quantbyte/signalscan/models"
)

func generateBars(n int, generator func(i int) models.PriceBar) []models.PriceBar {
	bars := make([]models.PriceBar, n)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		bars[i] = generator(i)
		bars[i].Timestamp = base.AddDate(0, 0, i)
	}
	return bars
}

func wavyBars(n int) []models.PriceBar {
	return generateBars(n, func(i int) models.PriceBar {
		close := 100 + 10*math.Sin(float64(i)/3) + float64(i%7)
		return models.PriceBar{
			Open:   close - 0.5,
			High:   close + 2,
			Low:    close - 2,
			Close:  close,
			Volume: float64(1000 + i*10),
		}
	})
}

func TestComputeRowCountPreserved(t *testing.T) {
	for _, n := range []int{1, 5, 30, 250} {
		bars := wavyBars(n)
		rows := Compute(bars)
		if len(rows) != n {
			t.Errorf("Compute() returned %d rows for %d bars", len(rows), n)
		}
	}
}

func TestComputeLeadingWindowsUndefined(t *testing.T) {
	rows := Compute(wavyBars(60))

	checks := []struct {
		name  string
		first int // first index expected to be defined
		get   func(r models.IndicatorRow) *float64
	}{
		{"sma_20", 19, func(r models.IndicatorRow) *float64 { return r.SMA20 }},
		{"rsi_14", 14, func(r models.IndicatorRow) *float64 { return r.RSI14 }},
		{"atr_14", 13, func(r models.IndicatorRow) *float64 { return r.ATR14 }},
		{"bb_upper", 19, func(r models.IndicatorRow) *float64 { return r.BBUpper }},
		{"return_5", 5, func(r models.IndicatorRow) *float64 { return r.Return5 }},
		{"volatility_20", 20, func(r models.IndicatorRow) *float64 { return r.Volatility20 }},
	}

	for _, c := range checks {
		for i := 0; i < c.first; i++ {
			if c.get(rows[i]) != nil {
				t.Errorf("%s defined at row %d, expected nil before %d", c.name, i, c.first)
			}
		}
		if c.get(rows[c.first]) == nil {
			t.Errorf("%s nil at row %d, expected defined", c.name, c.first)
		}
	}
}

func TestRSIRange(t *testing.T) {
	rows := Compute(wavyBars(120))
	for i, r := range rows {
		if r.RSI14 == nil {
			continue
		}
		if *r.RSI14 < 0 || *r.RSI14 > 100 || math.IsNaN(*r.RSI14) {
			t.Errorf("RSI out of [0,100] at row %d: %v", i, *r.RSI14)
		}
	}
}

func TestRSIZeroLossSentinel(t *testing.T) {
	// Strictly rising closes: avgLoss is zero, RSI must resolve to 100.
	bars := generateBars(40, func(i int) models.PriceBar {
		close := 100 + float64(i)
		return models.PriceBar{Open: close, High: close + 1, Low: close - 1, Close: close, Volume: 1000}
	})
	rows := Compute(bars)
	for i := 14; i < len(rows); i++ {
		if rows[i].RSI14 == nil || *rows[i].RSI14 != 100 {
			t.Fatalf("RSI at row %d = %v, want 100 for zero average loss", i, rows[i].RSI14)
		}
	}
}

func TestStochasticFlatRangeMissing(t *testing.T) {
	// high14 == low14 everywhere: %K must be marked missing, not NaN.
	bars := generateBars(40, func(i int) models.PriceBar {
		return models.PriceBar{Open: 100, High: 100, Low: 100, Close: 100, Volume: 1000}
	})
	rows := Compute(bars)
	for i, r := range rows {
		if r.StochK != nil {
			t.Errorf("StochK defined at row %d on a flat range: %v", i, *r.StochK)
		}
		if r.StochD != nil {
			t.Errorf("StochD defined at row %d on a flat range: %v", i, *r.StochD)
		}
	}
}

func TestStochasticRange(t *testing.T) {
	rows := Compute(wavyBars(120))
	for i, r := range rows {
		if r.StochK == nil {
			continue
		}
		if *r.StochK < 0 || *r.StochK > 100 {
			t.Errorf("StochK out of [0,100] at row %d: %v", i, *r.StochK)
		}
	}
}

func TestEMASeededByFirstValue(t *testing.T) {
	bars := wavyBars(30)
	rows := Compute(bars)
	if rows[0].EMA12 == nil || *rows[0].EMA12 != bars[0].Close {
		t.Errorf("EMA12 at row 0 = %v, want seed %v", rows[0].EMA12, bars[0].Close)
	}
	if rows[0].EMA26 == nil || *rows[0].EMA26 != bars[0].Close {
		t.Errorf("EMA26 at row 0 = %v, want seed %v", rows[0].EMA26, bars[0].Close)
	}
}

func TestOBVFirstDayContributesZero(t *testing.T) {
	bars := generateBars(5, func(i int) models.PriceBar {
		closes := []float64{100, 101, 99, 99, 102}
		return models.PriceBar{Close: closes[i], High: closes[i] + 1, Low: closes[i] - 1, Volume: 10}
	})
	rows := Compute(bars)

	want := []float64{0, 10, 0, 0, 10}
	for i, w := range want {
		if rows[i].OBV == nil || *rows[i].OBV != w {
			t.Errorf("OBV at row %d = %v, want %v", i, rows[i].OBV, w)
		}
	}
}

func TestATRConstantRange(t *testing.T) {
	// Flat closes with a constant 2-point bar range: every true range is 2,
	// including the first bar where it degrades to high-low.
	bars := generateBars(30, func(i int) models.PriceBar {
		return models.PriceBar{Open: 100, High: 101, Low: 99, Close: 100, Volume: 1000}
	})
	rows := Compute(bars)
	for i := 13; i < len(rows); i++ {
		if rows[i].ATR14 == nil {
			t.Fatalf("ATR nil at row %d", i)
		}
		if math.Abs(*rows[i].ATR14-2) > 1e-12 {
			t.Errorf("ATR at row %d = %v, want 2", i, *rows[i].ATR14)
		}
	}
}

func TestSMAKnownValues(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5}
	out := smaSeries(values, 3)
	if out[0] != nil || out[1] != nil {
		t.Error("SMA defined before window filled")
	}
	want := []float64{2, 3, 4}
	for i, w := range want {
		got := out[i+2]
		if got == nil || math.Abs(*got-w) > 1e-12 {
			t.Errorf("SMA at index %d = %v, want %v", i+2, got, w)
		}
	}
}
