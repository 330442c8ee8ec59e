package indicators

import (
	"math"

	"github.com/quantbyte/signalscan/models"
)

// atrSeries computes a trailing mean of the true range. The first bar has
// no previous close, so its true range degrades to high-low; the average is
// defined once period true ranges have accumulated.
func atrSeries(bars []models.PriceBar, period int) []*float64 {
	out := make([]*float64, len(bars))
	if len(bars) == 0 {
		return out
	}

	tr := make([]float64, len(bars))
	tr[0] = bars[0].High - bars[0].Low
	for i := 1; i < len(bars); i++ {
		highLow := bars[i].High - bars[i].Low
		highPrevClose := math.Abs(bars[i].High - bars[i-1].Close)
		lowPrevClose := math.Abs(bars[i].Low - bars[i-1].Close)
		tr[i] = math.Max(highLow, math.Max(highPrevClose, lowPrevClose))
	}

	var sum float64
	for i, v := range tr {
		sum += v
		if i >= period {
			sum -= tr[i-period]
		}
		if i >= period-1 {
			out[i] = models.Float(sum / float64(period))
		}
	}
	return out
}
