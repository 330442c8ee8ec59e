package features

import (
	"errors"
	"math"
	"testing"

	"github.com/quantbyte/signalscan/models"
)

// labeledRow builds a fully defined row whose feature values all track v,
// except the columns listed in constant, which stay fixed.
func labeledRow(v float64, target int, constant map[string]float64) models.LabeledRow {
	row := models.LabeledRow{Target: &target}

	fields := map[string]**float64{
		"sma_20": &row.SMA20, "ema_12": &row.EMA12, "ema_26": &row.EMA26,
		"rsi_14": &row.RSI14, "macd": &row.MACD, "macd_signal": &row.MACDSignal,
		"stoch_k": &row.StochK, "stoch_d": &row.StochD, "atr_14": &row.ATR14,
		"bb_upper": &row.BBUpper, "bb_lower": &row.BBLower, "obv": &row.OBV,
		"return_5": &row.Return5, "volatility_20": &row.Volatility20,
	}
	for i, name := range models.FeatureNames {
		value := v + float64(i) // distinct per column, shared variance
		if c, ok := constant[name]; ok {
			value = c
		}
		*fields[name] = models.Float(value)
	}
	return row
}

func completeRows(n int) []models.LabeledRow {
	rows := make([]models.LabeledRow, n)
	for i := range rows {
		rows[i] = labeledRow(float64(i), i%3-1, nil)
	}
	return rows
}

func TestCurateOutputIsFinite(t *testing.T) {
	rows := completeRows(150)
	// Poison a few rows: nil, NaN and Inf must all be excluded.
	rows[3].RSI14 = nil
	rows[7].MACD = models.Float(math.NaN())
	rows[11].OBV = models.Float(math.Inf(1))

	fs, err := Curate(rows, 100, 0.001)
	if err != nil {
		t.Fatalf("Curate() error = %v", err)
	}
	if len(fs.Rows) != 147 {
		t.Errorf("Curate() kept %d rows, want 147", len(fs.Rows))
	}
	for _, row := range fs.Rows {
		for c, v := range row.Values {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				t.Fatalf("non-finite value in column %s of row %d", fs.Columns[c], row.Index)
			}
		}
		if row.Target < -1 || row.Target > 1 {
			t.Errorf("target out of {-1,0,1}: %d", row.Target)
		}
	}
}

func TestCurateRowFloor(t *testing.T) {
	fs, err := Curate(completeRows(99), 100, 0.001)
	if !errors.Is(err, models.ErrInsufficientData) {
		t.Errorf("Curate() error = %v, want ErrInsufficientData", err)
	}
	if fs != nil {
		t.Errorf("Curate() returned a feature set alongside the error")
	}
}

func TestCurateUndefinedTargetExcluded(t *testing.T) {
	rows := completeRows(120)
	rows[5].Target = nil
	rows[119].Target = nil

	fs, err := Curate(rows, 100, 0.001)
	if err != nil {
		t.Fatalf("Curate() error = %v", err)
	}
	for _, row := range fs.Rows {
		if row.Index == 5 || row.Index == 119 {
			t.Errorf("row %d kept despite undefined target", row.Index)
		}
	}
}

func TestCurateDropsNearConstantColumns(t *testing.T) {
	rows := make([]models.LabeledRow, 120)
	for i := range rows {
		rows[i] = labeledRow(float64(i), i%3-1, map[string]float64{"rsi_14": 50.0})
	}

	fs, err := Curate(rows, 100, 0.001)
	if err != nil {
		t.Fatalf("Curate() error = %v", err)
	}
	for _, col := range fs.Columns {
		if col == "rsi_14" {
			t.Error("constant column rsi_14 survived the variance filter")
		}
	}
	if len(fs.Columns) != len(models.FeatureNames)-1 {
		t.Errorf("Curate() kept %d columns, want %d", len(fs.Columns), len(models.FeatureNames)-1)
	}
}

func TestCurateRowIndexAlignment(t *testing.T) {
	rows := completeRows(110)
	rows[0].Target = nil // first complete row is then source row 1

	fs, err := Curate(rows, 100, 0.001)
	if err != nil {
		t.Fatalf("Curate() error = %v", err)
	}
	if fs.Rows[0].Index != 1 {
		t.Errorf("first curated row index = %d, want 1", fs.Rows[0].Index)
	}
}
