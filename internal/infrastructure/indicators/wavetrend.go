package indicators

import "math"

// wt2Window is the fixed SMA window for the WaveTrend signal line.
const wt2Window = 4

// CalculateWaveTrend computes the LazyBear WaveTrend oscillator used by
// Market Cipher B:
//
//	ap  = (high+low+close)/3
//	esa = EMA(ap, channelLen)
//	d   = EMA(|ap-esa|, channelLen)
//	ci  = (ap-esa) / (0.015*d)
//	wt1 = EMA(ci, avgLen)
//	wt2 = SMA(wt1, 4)
//
// When d is zero the channel index is undefined for that bar; the
// previous ci is carried forward (zero if none) so the wt1 EMA never
// consumes Inf or NaN. The first channelLen+avgLen-2 indices of wt1 and
// the following three of wt2 are warm-up and stay undefined.
func CalculateWaveTrend(highs, lows, closes []float64, channelLen, avgLen int) (wt1, wt2 []float64) {
	n := len(closes)
	ap := typicalPrice(highs, lows, closes)

	esa := emaSeries(ap, channelLen)

	dev := make([]float64, n)
	for i := range ap {
		dev[i] = math.Abs(ap[i] - esa[i])
	}
	d := emaSeries(dev, channelLen)

	ci := make([]float64, n)
	for i := range ap {
		if d[i] == 0 {
			if i > 0 {
				ci[i] = ci[i-1]
			}
			continue
		}
		ci[i] = (ap[i] - esa[i]) / (0.015 * d[i])
	}

	wt1 = emaSeries(ci, avgLen)
	wt2 = CalculateSMA(wt1, wt2Window)

	warmup := channelLen + avgLen - 2
	for i := 0; i < warmup && i < n; i++ {
		wt1[i] = math.NaN()
	}
	for i := 0; i < warmup+wt2Window-1 && i < n; i++ {
		wt2[i] = math.NaN()
	}
	return wt1, wt2
}
