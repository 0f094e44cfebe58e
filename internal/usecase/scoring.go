package usecase

import (
	"time"

	"signalcipher-backend/internal/config"
	"signalcipher-backend/internal/domain"
)

// Per-indicator contribution weights. Discrete events outweigh mere
// zone presence, and WaveTrend carries double weight.
const (
	wtEventWeight    = 2.0
	wtZoneWeight     = 1.0
	oscEventWeight   = 1.0
	oscZoneWeight    = 0.5
	mlBoost          = 1.0
	mlBoostThreshold = 0.6
)

// Score collapses the latest bar of an oscillator frame into a single
// composite score with a label and a confidence estimate. Each of the
// four indicators contributes at most once: a crossover or divergence
// event takes precedence over plain zone residency. The optional ML
// prediction adds a bullish boost but can never create an event.
func Score(series domain.CandleSeries, frame *domain.OscillatorFrame, events []domain.SignalEvent, p config.IndicatorParams, ml *domain.MLPrediction) domain.ScoreResult {
	last := frame.Len() - 1
	ev := events[last]

	score := 0.0

	// WaveTrend
	switch {
	case ev.WTBuy:
		score += wtEventWeight
	case ev.WTSell:
		score -= wtEventWeight
	case domain.Defined(frame.WT1[last]) && frame.WT1[last] < p.WaveTrend.Oversold:
		score += wtZoneWeight
	case domain.Defined(frame.WT1[last]) && frame.WT1[last] > p.WaveTrend.Overbought:
		score -= wtZoneWeight
	}

	// Money flow. Divergence flags are surfaced on the event struct for
	// clients but carry no weight here; only the threshold crossings
	// score.
	switch {
	case ev.MFIBuy:
		score += oscEventWeight
	case ev.MFISell:
		score -= oscEventWeight
	case domain.Defined(frame.MFI[last]) && frame.MFI[last] < p.MoneyFlow.Oversold:
		score += oscZoneWeight
	case domain.Defined(frame.MFI[last]) && frame.MFI[last] > p.MoneyFlow.Overbought:
		score -= oscZoneWeight
	}

	// RSI
	switch {
	case ev.RSIBuy:
		score += oscEventWeight
	case ev.RSISell:
		score -= oscEventWeight
	case domain.Defined(frame.RSI[last]) && frame.RSI[last] < p.RSI.Oversold:
		score += oscZoneWeight
	case domain.Defined(frame.RSI[last]) && frame.RSI[last] > p.RSI.Overbought:
		score -= oscZoneWeight
	}

	// Stochastic RSI
	switch {
	case ev.StochBuy:
		score += oscEventWeight
	case ev.StochSell:
		score -= oscEventWeight
	case domain.Defined(frame.StochK[last]) && frame.StochK[last] < p.StochRSI.Oversold:
		score += oscZoneWeight
	case domain.Defined(frame.StochK[last]) && frame.StochK[last] > p.StochRSI.Overbought:
		score -= oscZoneWeight
	}

	if ml != nil && ml.PredictedClass == 1 && ml.Probability > mlBoostThreshold {
		score += mlBoost
	}

	candle := series[last]
	return domain.ScoreResult{
		Timestamp:  time.UnixMilli(candle.OpenTime).UTC(),
		Price:      candle.Close,
		Score:      score,
		Label:      LabelForScore(score),
		Confidence: confidence(frame, last, p, ml),
		Indicators: snapshot(frame, last),
		Events:     ev,
		ML:         ml,
	}
}

// LabelForScore buckets a composite score into a discrete signal.
func LabelForScore(score float64) domain.Label {
	switch {
	case score >= 3:
		return domain.StrongBuy
	case score >= 1.5:
		return domain.Buy
	case score <= -3:
		return domain.StrongSell
	case score <= -1.5:
		return domain.Sell
	default:
		return domain.Neutral
	}
}

// confidence measures how many of the four oscillators agree on an
// extreme reading, starting from a 0.5 baseline. The larger of the
// oversold and overbought counts drives the agreement term, so a
// strong bearish consensus is just as confident as a bullish one.
func confidence(frame *domain.OscillatorFrame, i int, p config.IndicatorParams, ml *domain.MLPrediction) float64 {
	oversold, overbought := 0, 0

	tally := func(v, lo, hi float64) {
		if !domain.Defined(v) {
			return
		}
		if v < lo {
			oversold++
		} else if v > hi {
			overbought++
		}
	}
	tally(frame.WT1[i], p.WaveTrend.Oversold, p.WaveTrend.Overbought)
	tally(frame.MFI[i], p.MoneyFlow.Oversold, p.MoneyFlow.Overbought)
	tally(frame.RSI[i], p.RSI.Oversold, p.RSI.Overbought)
	tally(frame.StochK[i], p.StochRSI.Oversold, p.StochRSI.Overbought)

	agreement := oversold
	if overbought > agreement {
		agreement = overbought
	}

	conf := 0.5 + float64(agreement)/4*0.3
	if ml != nil {
		if ml.Probability > 0.7 {
			conf += 0.2
		} else if ml.Probability > 0.5 {
			conf += 0.1
		}
	}
	if conf > 1 {
		conf = 1
	}
	return conf
}

// snapshot extracts the latest value of each column for display. The
// scored columns are always defined at this point; the auxiliary VWAP
// and MACD columns may still be warming up and fall back to zero so
// the result stays JSON-encodable.
func snapshot(frame *domain.OscillatorFrame, i int) domain.IndicatorSnapshot {
	orZero := func(v float64) float64 {
		if !domain.Defined(v) {
			return 0
		}
		return v
	}
	return domain.IndicatorSnapshot{
		WT1:    frame.WT1[i],
		WT2:    frame.WT2[i],
		MFI:    frame.MFI[i],
		RSI:    frame.RSI[i],
		StochK: frame.StochK[i],
		StochD: frame.StochD[i],
		VWAP:   orZero(frame.VWAP[i]),
		MACD:   orZero(frame.MACD[i]),
	}
}
