package usecase

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"signalcipher-backend/internal/domain"
)

// neutralFrame builds a frame where nothing fires: every oscillator sits
// mid-range on every bar. Tests overwrite single columns from there.
func neutralFrame(n int) *domain.OscillatorFrame {
	col := func(v float64) []float64 {
		out := make([]float64, n)
		for i := range out {
			out[i] = v
		}
		return out
	}
	return &domain.OscillatorFrame{
		WT1:      col(0),
		WT2:      col(0),
		MFI:      col(50),
		RSI:      col(50),
		StochK:   col(50),
		StochD:   col(50),
		VWAP:     col(100),
		MACD:     col(0),
		MACDSig:  col(0),
		MACDHist: col(0),
	}
}

func flatCloses(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 100
	}
	return out
}

func TestDetectSignalsRSILevelCross(t *testing.T) {
	p := testParams()
	frame := neutralFrame(3)
	frame.RSI = []float64{math.NaN(), 25, 35}

	events := DetectSignals(makeSeries(flatCloses(3)), frame, p)
	require.Len(t, events, 3)
	assert.True(t, events[2].RSIBuy)
	assert.False(t, events[2].RSISell)
	// Bar 1 compares against an undefined bar 0 and must stay silent.
	assert.Equal(t, domain.SignalEvent{}, events[1])
}

func TestDetectSignalsRSISellCross(t *testing.T) {
	p := testParams()
	frame := neutralFrame(3)
	frame.RSI = []float64{50, 75, 65}

	events := DetectSignals(makeSeries(flatCloses(3)), frame, p)
	assert.True(t, events[2].RSISell)
	assert.False(t, events[2].RSIBuy)
}

func TestDetectSignalsTouchWithoutCrossIsSilent(t *testing.T) {
	p := testParams()
	frame := neutralFrame(3)
	frame.RSI = []float64{40, 30, 30} // touches oversold, never exits upward

	events := DetectSignals(makeSeries(flatCloses(3)), frame, p)
	for _, ev := range events {
		assert.Equal(t, domain.SignalEvent{}, ev)
	}
}

func TestDetectSignalsWTCrossInZone(t *testing.T) {
	p := testParams()
	frame := neutralFrame(2)
	frame.WT1 = []float64{-70, -65}
	frame.WT2 = []float64{-68, -66}

	events := DetectSignals(makeSeries(flatCloses(2)), frame, p)
	assert.True(t, events[1].WTBuy)
	assert.False(t, events[1].WTSell)
}

func TestDetectSignalsWTCrossOutsideZoneIgnored(t *testing.T) {
	p := testParams()
	frame := neutralFrame(2)
	// Same crossover shape but in neutral territory.
	frame.WT1 = []float64{-10, 5}
	frame.WT2 = []float64{-8, 4}

	events := DetectSignals(makeSeries(flatCloses(2)), frame, p)
	assert.False(t, events[1].WTBuy)
	assert.False(t, events[1].WTSell)
}

func TestDetectSignalsStochCrossInZone(t *testing.T) {
	p := testParams()
	frame := neutralFrame(2)
	frame.StochK = []float64{10, 15}
	frame.StochD = []float64{12, 14}

	events := DetectSignals(makeSeries(flatCloses(2)), frame, p)
	assert.True(t, events[1].StochBuy)
}

func TestDetectSignalsMFIBullishDivergence(t *testing.T) {
	p := testParams()
	p.Divergence.Lookback = 1

	closes := []float64{5, 3, 5, 2, 5}
	frame := neutralFrame(5)
	frame.MFI = []float64{50, 20, 50, 25, 50}

	events := DetectSignals(makeSeries(closes), frame, p)
	// Price prints a lower low at index 3 while MFI prints a higher low.
	assert.True(t, events[3].MFIBullishDiv)
	assert.False(t, events[3].MFIBearishDiv)
	assert.False(t, events[1].MFIBullishDiv)
}

func TestDetectSignalsMFIBearishDivergence(t *testing.T) {
	p := testParams()
	p.Divergence.Lookback = 1

	closes := []float64{5, 8, 5, 9, 5}
	frame := neutralFrame(5)
	frame.MFI = []float64{50, 85, 50, 80, 50}

	events := DetectSignals(makeSeries(closes), frame, p)
	assert.True(t, events[3].MFIBearishDiv)
	assert.False(t, events[3].MFIBullishDiv)
}

func TestDetectSignalsDivergencePriorOutsideWindowIgnored(t *testing.T) {
	p := testParams()
	p.Divergence.Lookback = 1 // trailing window of 2

	// Lows at index 1 and 6: five bars apart, beyond the window.
	closes := []float64{5, 3, 5, 6, 7, 6, 2, 5}
	frame := neutralFrame(8)
	frame.MFI = []float64{50, 20, 50, 50, 50, 50, 25, 50}

	events := DetectSignals(makeSeries(closes), frame, p)
	assert.False(t, events[6].MFIBullishDiv)
}

func TestDetectSignalsDeterministic(t *testing.T) {
	p := testParams()
	series := fallingSeries(40)
	frame, err := ComputeOscillators(series, p)
	require.NoError(t, err)

	first := DetectSignals(series, frame, p)
	second := DetectSignals(series, frame, p)
	assert.Equal(t, first, second)
}
