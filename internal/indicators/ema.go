package indicators

// emaSeries computes an exponential moving average over the full series,
// smoothing factor 2/(span+1), seeded with the first value. No bias
// correction: the seed is the raw first observation, so every row is
// defined.
func emaSeries(values []float64, span int) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}

	alpha := 2.0 / float64(span+1)
	ema := values[0]
	out[0] = ema
	for i := 1; i < len(values); i++ {
		ema = (values[i]-ema)*alpha + ema
		out[i] = ema
	}
	return out
}
