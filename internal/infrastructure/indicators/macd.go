package indicators

import "math"

// MACDResult bundles the MACD line, its signal line and the histogram.
type MACDResult struct {
	MACD      []float64
	Signal    []float64
	Histogram []float64
}

// CalculateMACD computes the Moving Average Convergence Divergence.
// The MACD line is EMA(fast)-EMA(slow); the signal line is an EMA of the
// MACD line; the histogram is their difference.
func CalculateMACD(closes []float64, fast, slow, signal int) MACDResult {
	n := len(closes)
	fastEMA := emaSeries(closes, fast)
	slowEMA := emaSeries(closes, slow)

	macd := make([]float64, n)
	for i := range closes {
		macd[i] = fastEMA[i] - slowEMA[i]
	}

	sig := emaSeries(macd, signal)

	hist := make([]float64, n)
	for i := range macd {
		hist[i] = macd[i] - sig[i]
	}

	// Warm-up: the slow EMA dominates, the signal EMA adds on top.
	for i := 0; i < slow-1 && i < n; i++ {
		macd[i] = math.NaN()
		sig[i] = math.NaN()
		hist[i] = math.NaN()
	}
	for i := 0; i < slow+signal-2 && i < n; i++ {
		sig[i] = math.NaN()
		hist[i] = math.NaN()
	}

	return MACDResult{MACD: macd, Signal: sig, Histogram: hist}
}
