package indicators

import (
	"math"

	"github.com/quantbyte/signalscan/models"
)

// bollingerSeries computes Bollinger bands: trailing SMA(period) of close
// plus/minus width standard deviations (population form, matching the
// middle-band window).
func bollingerSeries(closes []float64, period int, width float64) ([]*float64, []*float64) {
	upper := make([]*float64, len(closes))
	lower := make([]*float64, len(closes))

	for i := period - 1; i < len(closes); i++ {
		window := closes[i-period+1 : i+1]
		middle := mean(window)

		var variance float64
		for _, v := range window {
			diff := v - middle
			variance += diff * diff
		}
		sd := math.Sqrt(variance / float64(period))

		upper[i] = models.Float(middle + sd*width)
		lower[i] = models.Float(middle - sd*width)
	}
	return upper, lower
}
