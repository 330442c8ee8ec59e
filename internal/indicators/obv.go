package indicators

import "github.com/quantbyte/signalscan/models"

// obvSeries computes On-Balance Volume: a running sum of volume signed by
// the direction of the day-over-day close change. The first day has no
// prior close, so its sign is zero and it contributes nothing.
func obvSeries(bars []models.PriceBar) []float64 {
	out := make([]float64, len(bars))
	var obv float64
	for i := 1; i < len(bars); i++ {
		switch {
		case bars[i].Close > bars[i-1].Close:
			obv += bars[i].Volume
		case bars[i].Close < bars[i-1].Close:
			obv -= bars[i].Volume
		}
		out[i] = obv
	}
	return out
}
