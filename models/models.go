package models

import (
	"time"
)

// PriceBar represents a single daily OHLCV bar. Timestamps within a series
// are strictly increasing and bars are never mutated after ingest.
type PriceBar struct {
	Timestamp time.Time `json:"timestamp"`
	Open      float64   `json:"open"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	Close     float64   `json:"close"`
	Volume    float64   `json:"volume"`
}

// IndicatorRow extends a PriceBar with derived technical indicators.
// A nil field means the trailing window for that indicator is not yet
// filled at this row.
type IndicatorRow struct {
	PriceBar

	SMA20        *float64 `json:"sma_20"`
	EMA12        *float64 `json:"ema_12"`
	EMA26        *float64 `json:"ema_26"`
	RSI14        *float64 `json:"rsi_14"`
	MACD         *float64 `json:"macd"`
	MACDSignal   *float64 `json:"macd_signal"`
	StochK       *float64 `json:"stoch_k"`
	StochD       *float64 `json:"stoch_d"`
	ATR14        *float64 `json:"atr_14"`
	BBUpper      *float64 `json:"bb_upper"`
	BBLower      *float64 `json:"bb_lower"`
	OBV          *float64 `json:"obv"`
	Return5      *float64 `json:"return_5"`
	Volatility20 *float64 `json:"volatility_20"`
}

// FeatureNames lists the derived indicator columns used for model training,
// in the order returned by IndicatorRow.Features. Raw OHLCV columns are
// deliberately absent: they carry absolute price scale.
var FeatureNames = []string{
	"sma_20", "ema_12", "ema_26", "rsi_14", "macd", "macd_signal",
	"stoch_k", "stoch_d", "atr_14", "bb_upper", "bb_lower", "obv",
	"return_5", "volatility_20",
}

// Features returns the derived indicator values in FeatureNames order.
func (r *IndicatorRow) Features() []*float64 {
	return []*float64{
		r.SMA20, r.EMA12, r.EMA26, r.RSI14, r.MACD, r.MACDSignal,
		r.StochK, r.StochD, r.ATR14, r.BBUpper, r.BBLower, r.OBV,
		r.Return5, r.Volatility20,
	}
}

// LabeledRow extends an IndicatorRow with a forward-return class label.
// Target is nil for the trailing rows where no future price exists.
type LabeledRow struct {
	IndicatorRow

	Target *int `json:"target"`
}

// FeatureRow is one fully defined training example: every value is a
// finite real number and the target is one of -1, 0, +1.
type FeatureRow struct {
	// Index is the row's position in the source bar series, used to align
	// predicted signals with prices during replay.
	Index  int
	Values []float64
	Target int
}

// FeatureSet is the curated training matrix for one instrument.
type FeatureSet struct {
	Columns []string
	Rows    []FeatureRow
}

// Matrix returns the feature values of all rows as a dense matrix.
func (fs *FeatureSet) Matrix() [][]float64 {
	m := make([][]float64, len(fs.Rows))
	for i, row := range fs.Rows {
		m[i] = row.Values
	}
	return m
}

// Targets returns the label column of all rows.
func (fs *FeatureSet) Targets() []int {
	t := make([]int, len(fs.Rows))
	for i, row := range fs.Rows {
		t[i] = row.Target
	}
	return t
}

// Signal is a predicted trade signal aligned to a bar index.
// Value is +1 (buy), -1 (sell) or 0 (hold).
type Signal struct {
	Index int
	Value int
}

// PerformanceSummary is the terminal output of one backtest run.
type PerformanceSummary struct {
	TotalReturnPct float64 `json:"total_return_pct"`
	NumTrades      int     `json:"num_trades"`
	WinRatePct     float64 `json:"win_rate_pct"`
}

// EvalRecord is one (instrument, algorithm) evaluation, the unit consumed
// by the reporting layer.
type EvalRecord struct {
	Instrument string  `json:"instrument"`
	Algorithm  string  `json:"algorithm"`
	Accuracy   float64 `json:"accuracy"`
	CVAccuracy float64 `json:"cv_accuracy"`

	PerformanceSummary
}

// Float returns a pointer to v, for building indicator rows.
func Float(v float64) *float64 { return &v }
