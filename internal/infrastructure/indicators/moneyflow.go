package indicators

// CalculateMFI computes the Money Flow Index, the volume-weighted
// counterpart of RSI. Raw money flow (typical price x volume) is
// classified positive when the typical price rose against the previous
// bar, negative when it fell, and ignored when unchanged. The first bar
// has no previous reference and stays unclassified.
//
// Zero handling: no negative flow in the window yields 100; no flow at
// all (constant price) yields the neutral 50.
func CalculateMFI(highs, lows, closes, volumes []float64, period int) []float64 {
	n := len(closes)
	out := nanSlice(n)
	if n < period+1 {
		return out
	}

	tp := typicalPrice(highs, lows, closes)

	posFlow := make([]float64, n)
	negFlow := make([]float64, n)
	for i := 1; i < n; i++ {
		raw := tp[i] * volumes[i]
		if tp[i] > tp[i-1] {
			posFlow[i] = raw
		} else if tp[i] < tp[i-1] {
			negFlow[i] = raw
		}
	}

	// Sliding sums over the trailing window. The first index with a
	// full window of classified bars is `period`.
	var posSum, negSum float64
	for i := 1; i < n; i++ {
		posSum += posFlow[i]
		negSum += negFlow[i]
		if i > period {
			posSum -= posFlow[i-period]
			negSum -= negFlow[i-period]
		}
		if i < period {
			continue
		}

		switch {
		case posSum == 0 && negSum == 0:
			out[i] = 50
		case negSum == 0:
			out[i] = 100
		default:
			ratio := posSum / negSum
			out[i] = 100 - 100/(1+ratio)
		}
	}
	return out
}
