package indicators

import "github.com/quantbyte/signalscan/models"

// stochasticSeries computes the %K oscillator over a trailing kPeriod
// high/low range and %D as an SMA(dPeriod) of %K.
//
// When the trailing range is flat (high == low) the denominator is zero and
// %K is marked missing for that row; it must never leak into later stages
// as NaN. %D is defined only when all dPeriod contributing %K values are.
func stochasticSeries(bars []models.PriceBar, kPeriod, dPeriod int) ([]*float64, []*float64) {
	k := make([]*float64, len(bars))
	d := make([]*float64, len(bars))

	for i := kPeriod - 1; i < len(bars); i++ {
		highest := bars[i-kPeriod+1].High
		lowest := bars[i-kPeriod+1].Low
		for j := i - kPeriod + 2; j <= i; j++ {
			if bars[j].High > highest {
				highest = bars[j].High
			}
			if bars[j].Low < lowest {
				lowest = bars[j].Low
			}
		}
		if highest == lowest {
			continue // flat range, %K undefined here
		}
		k[i] = models.Float((bars[i].Close - lowest) / (highest - lowest) * 100)
	}

	for i := dPeriod - 1; i < len(bars); i++ {
		var sum float64
		defined := true
		for j := i - dPeriod + 1; j <= i; j++ {
			if k[j] == nil {
				defined = false
				break
			}
			sum += *k[j]
		}
		if defined {
			d[i] = models.Float(sum / float64(dPeriod))
		}
	}
	return k, d
}
