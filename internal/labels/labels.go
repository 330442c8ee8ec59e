// Package labels assigns the forward-return class each classifier is
// trained to predict.
package labels

import (
	"github.com/quantbyte/signalscan/models"
)

// Generate assigns a three-class target to every indicator row:
//
//	+1 when close(t+forwardDays)/close(t)-1 >  threshold
//	-1 when close(t+forwardDays)/close(t)-1 < -threshold
//	 0 otherwise
//
// The last forwardDays rows have no future price and keep a nil target;
// they are excluded during curation, never zero-filled.
func Generate(rows []models.IndicatorRow, forwardDays int, threshold float64) []models.LabeledRow {
	out := make([]models.LabeledRow, len(rows))
	for i, row := range rows {
		out[i] = models.LabeledRow{IndicatorRow: row}

		j := i + forwardDays
		if j >= len(rows) || rows[i].Close == 0 {
			continue
		}
		futureReturn := rows[j].Close/rows[i].Close - 1

		target := 0
		if futureReturn > threshold {
			target = 1
		} else if futureReturn < -threshold {
			target = -1
		}
		out[i].Target = &target
	}
	return out
}
