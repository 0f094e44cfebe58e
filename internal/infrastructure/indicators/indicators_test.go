package indicators

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func repeat(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func ramp(start, step float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = start + step*float64(i)
	}
	return out
}

func shifted(data []float64, delta float64) []float64 {
	out := make([]float64, len(data))
	for i, v := range data {
		out[i] = v + delta
	}
	return out
}

func TestCalculateSMA(t *testing.T) {
	out := CalculateSMA([]float64{1, 2, 3, 4}, 2)
	require.Len(t, out, 4)
	assert.True(t, math.IsNaN(out[0]))
	assert.Equal(t, 1.5, out[1])
	assert.Equal(t, 2.5, out[2])
	assert.Equal(t, 3.5, out[3])
}

func TestCalculateEMA(t *testing.T) {
	out := CalculateEMA([]float64{2, 4, 8}, 3)
	require.Len(t, out, 3)
	assert.True(t, math.IsNaN(out[0]))
	assert.True(t, math.IsNaN(out[1]))
	assert.Equal(t, 5.5, out[2])
}

func TestCalculateRSIWarmupAndBounds(t *testing.T) {
	closes := []float64{10, 11, 10.5, 12, 11.8, 13, 12.5, 14, 13.2, 15, 14.1, 16, 15.5, 17, 16.2, 18, 17.4, 19, 18.1, 20}
	period := 14

	out := CalculateRSI(closes, period)
	require.Len(t, out, len(closes))

	for i := 0; i < period; i++ {
		assert.True(t, math.IsNaN(out[i]), "index %d should be warm-up", i)
	}
	for i := period; i < len(out); i++ {
		require.False(t, math.IsNaN(out[i]), "index %d should be defined", i)
		assert.GreaterOrEqual(t, out[i], 0.0)
		assert.LessOrEqual(t, out[i], 100.0)
	}
}

func TestCalculateRSIPureGains(t *testing.T) {
	out := CalculateRSI(ramp(100, 1, 20), 14)
	assert.Equal(t, 100.0, out[len(out)-1])
}

func TestCalculateRSIConstantPrice(t *testing.T) {
	out := CalculateRSI(repeat(42, 20), 14)
	assert.Equal(t, 50.0, out[len(out)-1])
}

func TestCalculateMFIConstantPrice(t *testing.T) {
	n := 30
	closes := repeat(42, n)
	out := CalculateMFI(shifted(closes, 1), shifted(closes, -1), closes, repeat(1000, n), 14)

	for i := 0; i < 14; i++ {
		assert.True(t, math.IsNaN(out[i]))
	}
	for i := 14; i < n; i++ {
		assert.Equal(t, 50.0, out[i])
	}
}

func TestCalculateMFIDirectional(t *testing.T) {
	n := 30
	up := ramp(100, 1, n)
	volumes := repeat(1000, n)

	rising := CalculateMFI(shifted(up, 1), shifted(up, -1), up, volumes, 14)
	assert.Equal(t, 100.0, rising[n-1])

	down := ramp(100, -1, n)
	falling := CalculateMFI(shifted(down, 1), shifted(down, -1), down, volumes, 14)
	assert.Equal(t, 0.0, falling[n-1])
}

func TestCalculateWaveTrendConstantPrice(t *testing.T) {
	n := 50
	closes := repeat(42, n)
	wt1, wt2 := CalculateWaveTrend(shifted(closes, 1), shifted(closes, -1), closes, 9, 12)

	warmup := 9 + 12 - 2
	for i := 0; i < warmup; i++ {
		assert.True(t, math.IsNaN(wt1[i]))
	}
	// Flat prices give a zero deviation channel; the oscillator must
	// settle at zero without producing Inf or NaN.
	for i := warmup; i < n; i++ {
		require.False(t, math.IsNaN(wt1[i]) || math.IsInf(wt1[i], 0), "wt1[%d]", i)
		assert.Equal(t, 0.0, wt1[i])
	}
	for i := warmup + 3; i < n; i++ {
		require.False(t, math.IsNaN(wt2[i]) || math.IsInf(wt2[i], 0), "wt2[%d]", i)
		assert.Equal(t, 0.0, wt2[i])
	}
}

func TestCalculateWaveTrendSteadyDecline(t *testing.T) {
	n := 120
	closes := ramp(1000, -1, n)
	wt1, wt2 := CalculateWaveTrend(shifted(closes, 1), shifted(closes, -1), closes, 9, 12)

	// A constant downtrend converges to ci = -1/0.015 * (lag/lag) scaled
	// by the channel ratio, about -66.7 for these lengths.
	assert.InDelta(t, -66.67, wt1[n-1], 0.5)
	assert.InDelta(t, -66.67, wt2[n-1], 0.5)
	assert.Less(t, wt1[n-1], -60.0)
}

func TestCalculateWaveTrendSteadyIncline(t *testing.T) {
	n := 120
	closes := ramp(100, 1, n)
	wt1, wt2 := CalculateWaveTrend(shifted(closes, 1), shifted(closes, -1), closes, 9, 12)

	// The mirror of the decline case: a constant uptrend parks the
	// oscillator in overbought territory.
	assert.InDelta(t, 66.67, wt1[n-1], 0.5)
	assert.InDelta(t, 66.67, wt2[n-1], 0.5)
	assert.Greater(t, wt1[n-1], 60.0)
}

func TestCalculateStochRSIFlat(t *testing.T) {
	n := 40
	k, d := CalculateStochRSI(repeat(42, n), 14, 14, 3, 3)

	// Constant prices hold RSI at 50, so the stochastic window is flat
	// and normalizes to the midpoint.
	assert.Equal(t, 50.0, k[n-1])
	assert.Equal(t, 50.0, d[n-1])
}

func TestCalculateStochRSIDefinedFrom(t *testing.T) {
	n := 40
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = 100 + float64(i%7) // varied so the window is not flat
	}
	k, d := CalculateStochRSI(closes, 14, 14, 3, 3)

	// %K settles after rsi warm-up + stoch window + smoothing,
	// %D two bars later.
	assert.True(t, math.IsNaN(k[28]))
	assert.False(t, math.IsNaN(k[29]))
	assert.True(t, math.IsNaN(d[30]))
	assert.False(t, math.IsNaN(d[31]))

	for i := 31; i < n; i++ {
		assert.GreaterOrEqual(t, k[i], 0.0)
		assert.LessOrEqual(t, k[i], 100.0)
	}
}

func TestCalculateMACDWarmup(t *testing.T) {
	closes := ramp(100, 2, 12)
	res := CalculateMACD(closes, 2, 4, 2)

	assert.True(t, math.IsNaN(res.MACD[2]))
	assert.False(t, math.IsNaN(res.MACD[3]))
	assert.True(t, math.IsNaN(res.Signal[3]))
	assert.False(t, math.IsNaN(res.Signal[4]))
	assert.False(t, math.IsNaN(res.Histogram[4]))
}

func TestCalculateVWAP(t *testing.T) {
	closes := repeat(10, 5)
	highs := shifted(closes, 1)
	lows := shifted(closes, -1)
	volumes := []float64{0, 0, 100, 100, 100}

	out := CalculateVWAP(highs, lows, closes, volumes)
	assert.True(t, math.IsNaN(out[0]))
	assert.True(t, math.IsNaN(out[1]))
	// All typical prices are equal, so VWAP equals the typical price.
	assert.Equal(t, 10.0, out[2])
	assert.Equal(t, 10.0, out[4])
}

func TestLocalExtrema(t *testing.T) {
	minima := LocalMinima([]float64{5, 3, 5, 2, 5}, 1)
	assert.Equal(t, []bool{false, true, false, true, false}, minima)

	maxima := LocalMaxima([]float64{1, 5, 1, 6, 1}, 1)
	assert.Equal(t, []bool{false, true, false, true, false}, maxima)
}

func TestLocalMinimaEdgesNeverMarked(t *testing.T) {
	// The global minimum sits at index 0, but without a full left
	// window it must not be marked.
	minima := LocalMinima([]float64{1, 2, 3, 4, 5}, 2)
	for i, m := range minima {
		assert.False(t, m, "index %d", i)
	}
}
