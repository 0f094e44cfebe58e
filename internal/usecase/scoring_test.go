package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"signalcipher-backend/internal/domain"
)

func TestLabelForScore(t *testing.T) {
	cases := []struct {
		score float64
		want  domain.Label
	}{
		{5, domain.StrongBuy},
		{3, domain.StrongBuy},
		{2.9, domain.Buy},
		{1.5, domain.Buy},
		{1.4, domain.Neutral},
		{0, domain.Neutral},
		{-1.4, domain.Neutral},
		{-1.5, domain.Sell},
		{-2.9, domain.Sell},
		{-3, domain.StrongSell},
		{-5, domain.StrongSell},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, LabelForScore(c.score), "score %v", c.score)
	}
}

func TestScoreNeutralFrame(t *testing.T) {
	p := testParams()
	frame := neutralFrame(2)
	events := make([]domain.SignalEvent, 2)
	series := makeSeries([]float64{100, 100})

	res := Score(series, frame, events, p, nil)
	assert.Equal(t, 0.0, res.Score)
	assert.Equal(t, domain.Neutral, res.Label)
	assert.Equal(t, 0.5, res.Confidence)
	assert.Equal(t, 100.0, res.Price)
	assert.Nil(t, res.ML)
}

func TestScoreAllBullishEventsSaturate(t *testing.T) {
	p := testParams()
	frame := neutralFrame(2)
	frame.WT1 = []float64{-70, -65}
	frame.WT2 = []float64{-68, -66}
	frame.MFI = []float64{15, 21}
	frame.RSI = []float64{25, 31}
	frame.StochK = []float64{10, 15}
	frame.StochD = []float64{12, 14}

	events := make([]domain.SignalEvent, 2)
	events[1] = domain.SignalEvent{WTBuy: true, MFIBuy: true, RSIBuy: true, StochBuy: true}

	res := Score(makeSeries([]float64{100, 101}), frame, events, p, nil)
	assert.Equal(t, 5.0, res.Score)
	assert.Equal(t, domain.StrongBuy, res.Label)
}

func TestScoreEventPrecedenceOverZone(t *testing.T) {
	p := testParams()
	frame := neutralFrame(2)
	// RSI is deep in the oversold zone AND fired a buy event: only the
	// event contribution counts, never both.
	frame.RSI = []float64{20, 25}

	events := make([]domain.SignalEvent, 2)
	events[1] = domain.SignalEvent{RSIBuy: true}

	res := Score(makeSeries([]float64{100, 100}), frame, events, p, nil)
	assert.Equal(t, 1.0, res.Score)
}

func TestScoreZoneContributions(t *testing.T) {
	p := testParams()
	frame := neutralFrame(2)
	frame.WT1 = []float64{-65, -65} // oversold zone, no cross
	frame.MFI = []float64{15, 15}
	frame.RSI = []float64{25, 25}
	frame.StochK = []float64{10, 10}

	events := make([]domain.SignalEvent, 2)
	res := Score(makeSeries([]float64{100, 100}), frame, events, p, nil)
	// 1.0 (WT zone) + 0.5*3 (the other three zones).
	assert.Equal(t, 2.5, res.Score)
	assert.Equal(t, domain.Buy, res.Label)
	// All four oscillators agree: 0.5 + 4/4*0.3.
	assert.InDelta(t, 0.8, res.Confidence, 1e-9)
}

func TestScoreDivergenceCarriesNoWeight(t *testing.T) {
	p := testParams()
	frame := neutralFrame(2)

	// A divergence on an otherwise neutral bar is reported to clients
	// but never scored; only the MFI threshold crossings carry the
	// event weight.
	events := make([]domain.SignalEvent, 2)
	events[1] = domain.SignalEvent{MFIBullishDiv: true}

	res := Score(makeSeries([]float64{100, 100}), frame, events, p, nil)
	assert.Equal(t, 0.0, res.Score)
	assert.Equal(t, domain.Neutral, res.Label)
	assert.True(t, res.Events.MFIBullishDiv)

	events[1] = domain.SignalEvent{MFIBearishDiv: true}
	res = Score(makeSeries([]float64{100, 100}), frame, events, p, nil)
	assert.Equal(t, 0.0, res.Score)
	assert.True(t, res.Events.MFIBearishDiv)
}

func TestScoreDivergenceFallsThroughToZone(t *testing.T) {
	p := testParams()
	frame := neutralFrame(2)
	frame.MFI = []float64{15, 15} // oversold, no crossing

	events := make([]domain.SignalEvent, 2)
	events[1] = domain.SignalEvent{MFIBullishDiv: true}

	res := Score(makeSeries([]float64{100, 100}), frame, events, p, nil)
	assert.Equal(t, 0.5, res.Score)
}

func TestScoreMLBoost(t *testing.T) {
	p := testParams()
	frame := neutralFrame(2)
	events := make([]domain.SignalEvent, 2)
	series := makeSeries([]float64{100, 100})

	// Bullish class above the probability gate adds the boost and the
	// high-probability confidence bonus.
	res := Score(series, frame, events, p, &domain.MLPrediction{PredictedClass: 1, Probability: 0.8})
	assert.Equal(t, 1.0, res.Score)
	assert.InDelta(t, 0.7, res.Confidence, 1e-9)

	// Below the gate: no score boost, smaller confidence bonus.
	res = Score(series, frame, events, p, &domain.MLPrediction{PredictedClass: 1, Probability: 0.55})
	assert.Equal(t, 0.0, res.Score)
	assert.InDelta(t, 0.6, res.Confidence, 1e-9)

	// Bearish class never boosts.
	res = Score(series, frame, events, p, &domain.MLPrediction{PredictedClass: 0, Probability: 0.9})
	assert.Equal(t, 0.0, res.Score)
}

func TestScoreConfidenceClamped(t *testing.T) {
	p := testParams()
	frame := neutralFrame(2)
	frame.WT1 = []float64{-65, -65}
	frame.MFI = []float64{15, 15}
	frame.RSI = []float64{25, 25}
	frame.StochK = []float64{10, 10}

	events := make([]domain.SignalEvent, 2)
	res := Score(makeSeries([]float64{100, 100}), frame, events, p,
		&domain.MLPrediction{PredictedClass: 1, Probability: 0.9})
	// 0.8 agreement + 0.2 ML would exceed 1.0 without the clamp.
	assert.Equal(t, 1.0, res.Confidence)
}
