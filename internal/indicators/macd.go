package indicators

// macdSeries derives the MACD line from precomputed fast and slow EMAs and
// smooths it with an EMA of signalSpan for the signal line. Both series are
// defined on every row because the underlying EMAs are seeded from the
// first value.
func macdSeries(fastEMA, slowEMA []float64, signalSpan int) ([]float64, []float64) {
	macd := make([]float64, len(fastEMA))
	for i := range fastEMA {
		macd[i] = fastEMA[i] - slowEMA[i]
	}
	signal := emaSeries(macd, signalSpan)
	return macd, signal
}
