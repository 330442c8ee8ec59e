package indicators

import "github.com/quantbyte/signalscan/models"

// trailingReturnSeries computes the percentage change of close over the
// trailing days bars.
func trailingReturnSeries(closes []float64, days int) []*float64 {
	out := make([]*float64, len(closes))
	for i := days; i < len(closes); i++ {
		if closes[i-days] != 0 {
			out[i] = models.Float(closes[i]/closes[i-days] - 1)
		}
	}
	return out
}

// returnVolatilitySeries computes the standard deviation of daily
// percentage changes over a trailing window of `window` changes. The first
// change exists at index 1, so the series is defined from index window on.
func returnVolatilitySeries(closes []float64, window int) []*float64 {
	out := make([]*float64, len(closes))
	if len(closes) < 2 {
		return out
	}

	changes := make([]float64, len(closes))
	for i := 1; i < len(closes); i++ {
		if closes[i-1] != 0 {
			changes[i] = closes[i]/closes[i-1] - 1
		}
	}

	for i := window; i < len(closes); i++ {
		w := changes[i-window+1 : i+1]
		out[i] = models.Float(stdDev(w, mean(w)))
	}
	return out
}
