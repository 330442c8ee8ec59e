// Package features curates the training matrix: derived indicator columns
// only, complete rows only, near-constant columns removed.
package features

import (
	"fmt"
	"math"

	"github.com/quantbyte/signalscan/models"
)

// Curate builds a FeatureSet from labeled rows. Steps, in order:
//
//  1. restrict to derived indicator columns (raw OHLCV leaks price scale)
//  2. drop rows with any missing or non-finite value, or no target
//  3. fail with ErrInsufficientData when fewer than minRows rows survive
//  4. drop columns whose variance is at or below minVariance
//
// Every cell of the result is a finite real number and every target is one
// of -1, 0, +1.
func Curate(rows []models.LabeledRow, minRows int, minVariance float64) (*models.FeatureSet, error) {
	var complete []models.FeatureRow
	for i := range rows {
		if rows[i].Target == nil {
			continue
		}
		values := make([]float64, 0, len(models.FeatureNames))
		ok := true
		for _, f := range rows[i].Features() {
			if f == nil || math.IsNaN(*f) || math.IsInf(*f, 0) {
				ok = false
				break
			}
			values = append(values, *f)
		}
		if !ok {
			continue
		}
		complete = append(complete, models.FeatureRow{
			Index:  i,
			Values: values,
			Target: *rows[i].Target,
		})
	}

	if len(complete) < minRows {
		return nil, fmt.Errorf("%w: %d complete rows, need %d",
			models.ErrInsufficientData, len(complete), minRows)
	}

	keep := informativeColumns(complete, minVariance)

	fs := &models.FeatureSet{
		Columns: make([]string, 0, len(keep)),
		Rows:    make([]models.FeatureRow, 0, len(complete)),
	}
	for _, c := range keep {
		fs.Columns = append(fs.Columns, models.FeatureNames[c])
	}
	for _, row := range complete {
		values := make([]float64, 0, len(keep))
		for _, c := range keep {
			values = append(values, row.Values[c])
		}
		fs.Rows = append(fs.Rows, models.FeatureRow{
			Index:  row.Index,
			Values: values,
			Target: row.Target,
		})
	}
	return fs, nil
}

// informativeColumns returns the indices of columns whose variance exceeds
// the floor. Near-constant columns add noise and destabilize the scaler.
func informativeColumns(rows []models.FeatureRow, minVariance float64) []int {
	if len(rows) == 0 {
		return nil
	}
	numCols := len(rows[0].Values)
	var keep []int
	for c := 0; c < numCols; c++ {
		var sum float64
		for _, row := range rows {
			sum += row.Values[c]
		}
		m := sum / float64(len(rows))

		var variance float64
		for _, row := range rows {
			diff := row.Values[c] - m
			variance += diff * diff
		}
		variance /= float64(len(rows))

		if variance > minVariance {
			keep = append(keep, c)
		}
	}
	return keep
}
