package indicators

// LocalMinima marks every index whose value equals the minimum of the
// centered window [i-lookback, i+lookback]. Indices without a full
// window on both sides are never marked, so no extremum fires near the
// series edges.
func LocalMinima(data []float64, lookback int) []bool {
	out := make([]bool, len(data))
	for i := lookback; i < len(data)-lookback; i++ {
		lo := data[i-lookback]
		for j := i - lookback + 1; j <= i+lookback; j++ {
			if data[j] < lo {
				lo = data[j]
			}
		}
		out[i] = data[i] == lo
	}
	return out
}

// LocalMaxima is the mirror of LocalMinima for local highs.
func LocalMaxima(data []float64, lookback int) []bool {
	out := make([]bool, len(data))
	for i := lookback; i < len(data)-lookback; i++ {
		hi := data[i-lookback]
		for j := i - lookback + 1; j <= i+lookback; j++ {
			if data[j] > hi {
				hi = data[j]
			}
		}
		out[i] = data[i] == hi
	}
	return out
}
