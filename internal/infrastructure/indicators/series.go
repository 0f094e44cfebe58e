// Package indicators contains the oscillator math used by the scanner.
// Every function is a pure transform: it takes aligned []float64 columns
// and returns new slices of the same length. Indices without enough
// lookback carry NaN (the undefined sentinel), never zero.
package indicators

import "math"

func nanSlice(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}

func defined(v float64) bool {
	return !math.IsNaN(v)
}

// emaSeries computes the recursive EMA with smoothing factor 2/(N+1),
// seeded by the first defined input value. No warm-up masking: callers
// that expose the result decide how much history counts as defined.
func emaSeries(data []float64, period int) []float64 {
	out := nanSlice(len(data))
	k := 2.0 / (float64(period) + 1.0)

	seeded := false
	prev := 0.0
	for i, v := range data {
		if !defined(v) {
			if seeded {
				// Inputs are only undefined in a prefix; once seeded
				// every value must be defined.
				out[i] = math.NaN()
			}
			continue
		}
		if !seeded {
			prev = v
			seeded = true
		} else {
			prev = v*k + prev*(1-k)
		}
		out[i] = prev
	}
	return out
}

// CalculateEMA computes the EMA and masks the first period-1 indices
// after the seed as undefined.
func CalculateEMA(data []float64, period int) []float64 {
	out := emaSeries(data, period)
	maskWarmup(out, data, period-1)
	return out
}

// CalculateSMA computes the rolling simple moving average. A window that
// is incomplete or contains an undefined value yields NaN.
func CalculateSMA(data []float64, period int) []float64 {
	out := nanSlice(len(data))
	for i := period - 1; i < len(data); i++ {
		sum := 0.0
		ok := true
		for j := i - period + 1; j <= i; j++ {
			if !defined(data[j]) {
				ok = false
				break
			}
			sum += data[j]
		}
		if ok {
			out[i] = sum / float64(period)
		}
	}
	return out
}

// rollingMin returns the minimum over a trailing window of size period.
func rollingMin(data []float64, period int) []float64 {
	out := nanSlice(len(data))
	for i := period - 1; i < len(data); i++ {
		lo := math.Inf(1)
		ok := true
		for j := i - period + 1; j <= i; j++ {
			if !defined(data[j]) {
				ok = false
				break
			}
			if data[j] < lo {
				lo = data[j]
			}
		}
		if ok {
			out[i] = lo
		}
	}
	return out
}

// rollingMax returns the maximum over a trailing window of size period.
func rollingMax(data []float64, period int) []float64 {
	out := nanSlice(len(data))
	for i := period - 1; i < len(data); i++ {
		hi := math.Inf(-1)
		ok := true
		for j := i - period + 1; j <= i; j++ {
			if !defined(data[j]) {
				ok = false
				break
			}
			if data[j] > hi {
				hi = data[j]
			}
		}
		if ok {
			out[i] = hi
		}
	}
	return out
}

// maskWarmup blanks the first warmup indices counted from the first
// defined input value.
func maskWarmup(out, in []float64, warmup int) {
	start := 0
	for start < len(in) && !defined(in[start]) {
		start++
	}
	end := start + warmup
	if end > len(out) {
		end = len(out)
	}
	for i := start; i < end; i++ {
		out[i] = math.NaN()
	}
}

// typicalPrice returns (high+low+close)/3 per bar, the hlc3 column.
func typicalPrice(highs, lows, closes []float64) []float64 {
	out := make([]float64, len(closes))
	for i := range closes {
		out[i] = (highs[i] + lows[i] + closes[i]) / 3.0
	}
	return out
}
