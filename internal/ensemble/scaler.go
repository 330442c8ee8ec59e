package ensemble

import "math"

// StandardScaler transforms each column to zero mean and unit variance.
// It is fit on the training partition only; held-out rows are transformed
// with the training statistics so no held-out information leaks into
// scaling.
type StandardScaler struct {
	Mean []float64
	Std  []float64
}

// Fit computes per-column mean and standard deviation. A zero-variance
// column gets a unit divisor so Transform stays finite.
func (s *StandardScaler) Fit(X [][]float64) {
	if len(X) == 0 {
		return
	}
	cols := len(X[0])
	s.Mean = make([]float64, cols)
	s.Std = make([]float64, cols)

	for c := 0; c < cols; c++ {
		var sum float64
		for _, row := range X {
			sum += row[c]
		}
		s.Mean[c] = sum / float64(len(X))

		var variance float64
		for _, row := range X {
			diff := row[c] - s.Mean[c]
			variance += diff * diff
		}
		s.Std[c] = math.Sqrt(variance / float64(len(X)))
		if s.Std[c] == 0 {
			s.Std[c] = 1
		}
	}
}

// Transform returns a scaled copy of X; the input is left untouched.
func (s *StandardScaler) Transform(X [][]float64) [][]float64 {
	out := make([][]float64, len(X))
	for i, row := range X {
		scaled := make([]float64, len(row))
		for c, v := range row {
			scaled[c] = (v - s.Mean[c]) / s.Std[c]
		}
		out[i] = scaled
	}
	return out
}
