package indicators

// CalculateVWAP computes the cumulative Volume Weighted Average Price
// over the whole series. Bars before any volume has traded are
// undefined.
func CalculateVWAP(highs, lows, closes, volumes []float64) []float64 {
	out := nanSlice(len(closes))

	cumTPV := 0.0
	cumVol := 0.0
	for i := range closes {
		tp := (highs[i] + lows[i] + closes[i]) / 3.0
		cumTPV += tp * volumes[i]
		cumVol += volumes[i]
		if cumVol > 0 {
			out[i] = cumTPV / cumVol
		}
	}
	return out
}
