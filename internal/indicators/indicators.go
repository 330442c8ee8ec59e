package indicators

import (
	"math"

	"github.com/quantbyte/signalscan/models"
)

// Compute derives the full indicator vector for every bar in the series.
// The output always has the same length and order as the input: rows whose
// trailing windows are not yet filled carry nil fields instead of being
// dropped, so downstream stages see one row per bar.
//
// All windows are trailing only; nothing here reads a future bar.
func Compute(bars []models.PriceBar) []models.IndicatorRow {
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}

	sma20 := smaSeries(closes, 20)
	ema12 := emaSeries(closes, 12)
	ema26 := emaSeries(closes, 26)
	rsi14 := rsiSeries(closes, 14)
	macd, macdSignal := macdSeries(ema12, ema26, 9)
	stochK, stochD := stochasticSeries(bars, 14, 3)
	atr14 := atrSeries(bars, 14)
	bbUpper, bbLower := bollingerSeries(closes, 20, 2.0)
	obv := obvSeries(bars)
	ret5 := trailingReturnSeries(closes, 5)
	vol20 := returnVolatilitySeries(closes, 20)

	rows := make([]models.IndicatorRow, len(bars))
	for i, b := range bars {
		rows[i] = models.IndicatorRow{
			PriceBar:     b,
			SMA20:        sma20[i],
			EMA12:        models.Float(ema12[i]),
			EMA26:        models.Float(ema26[i]),
			RSI14:        rsi14[i],
			MACD:         models.Float(macd[i]),
			MACDSignal:   models.Float(macdSignal[i]),
			StochK:       stochK[i],
			StochD:       stochD[i],
			ATR14:        atr14[i],
			BBUpper:      bbUpper[i],
			BBLower:      bbLower[i],
			OBV:          models.Float(obv[i]),
			Return5:      ret5[i],
			Volatility20: vol20[i],
		}
	}
	return rows
}

// smaSeries computes a trailing simple moving average. The leading
// period-1 entries are nil.
func smaSeries(values []float64, period int) []*float64 {
	out := make([]*float64, len(values))
	var sum float64
	for i, v := range values {
		sum += v
		if i >= period {
			sum -= values[i-period]
		}
		if i >= period-1 {
			out[i] = models.Float(sum / float64(period))
		}
	}
	return out
}

// mean and stdDev are the shared aggregation helpers for windowed stats.
func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func stdDev(values []float64, m float64) float64 {
	if len(values) < 2 {
		return 0
	}
	var sumSq float64
	for _, v := range values {
		diff := v - m
		sumSq += diff * diff
	}
	return math.Sqrt(sumSq / float64(len(values)-1))
}
