package indicators

// CalculateRSI computes the Wilder-smoothed Relative Strength Index.
// The average gain and loss use exponential smoothing with alpha =
// 1/period, seeded by the first price change. Output is in [0,100];
// indices below `period` are undefined.
//
// Zero handling: avgLoss == 0 yields 100 (pure gains); both averages
// zero yields the neutral 50. Never NaN on flat prices.
func CalculateRSI(closes []float64, period int) []float64 {
	out := nanSlice(len(closes))
	if len(closes) < period+1 {
		return out
	}

	alpha := 1.0 / float64(period)
	var avgGain, avgLoss float64

	for i := 1; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		gain, loss := 0.0, 0.0
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}

		if i == 1 {
			avgGain = gain
			avgLoss = loss
		} else {
			avgGain += alpha * (gain - avgGain)
			avgLoss += alpha * (loss - avgLoss)
		}

		if i < period {
			continue // warm-up
		}

		switch {
		case avgGain == 0 && avgLoss == 0:
			out[i] = 50
		case avgLoss == 0:
			out[i] = 100
		default:
			rs := avgGain / avgLoss
			out[i] = 100 - 100/(1+rs)
		}
	}
	return out
}

// CalculateStochRSI applies the stochastic oscillator to the RSI series.
// The RSI is normalized against its rolling min/max over stochPeriod and
// scaled to [0,100]; %K smooths the normalized series and %D smooths %K.
// A flat RSI window (max == min) normalizes to the 50 midpoint instead
// of dividing by zero.
func CalculateStochRSI(closes []float64, rsiPeriod, stochPeriod, kSmooth, dSmooth int) (k, d []float64) {
	rsi := CalculateRSI(closes, rsiPeriod)

	lo := rollingMin(rsi, stochPeriod)
	hi := rollingMax(rsi, stochPeriod)

	norm := nanSlice(len(closes))
	for i := range norm {
		if !defined(lo[i]) || !defined(hi[i]) {
			continue
		}
		if hi[i] == lo[i] {
			norm[i] = 50
		} else {
			norm[i] = (rsi[i] - lo[i]) / (hi[i] - lo[i]) * 100
		}
	}

	k = CalculateSMA(norm, kSmooth)
	d = CalculateSMA(k, dSmooth)
	return k, d
}
