package usecase

import (
	"signalcipher-backend/internal/config"
	"signalcipher-backend/internal/domain"
	"signalcipher-backend/internal/infrastructure/indicators"
)

// DetectSignals walks an oscillator frame and flags discrete events on
// each bar: threshold crossings, line crossovers inside extreme zones,
// and MFI divergences against price. The result is index-aligned with
// the frame; bar 0 never fires since every rule compares against the
// previous bar. Detection is pure and deterministic, so re-running it
// over the same frame yields the same events.
func DetectSignals(series domain.CandleSeries, frame *domain.OscillatorFrame, p config.IndicatorParams) []domain.SignalEvent {
	n := frame.Len()
	events := make([]domain.SignalEvent, n)

	for i := 1; i < n; i++ {
		ev := &events[i]

		ev.RSIBuy, ev.RSISell = levelCross(frame.RSI[i-1], frame.RSI[i], p.RSI.Oversold, p.RSI.Overbought)
		ev.MFIBuy, ev.MFISell = levelCross(frame.MFI[i-1], frame.MFI[i], p.MoneyFlow.Oversold, p.MoneyFlow.Overbought)

		ev.WTBuy, ev.WTSell = zoneCross(
			frame.WT1[i-1], frame.WT1[i],
			frame.WT2[i-1], frame.WT2[i],
			p.WaveTrend.Oversold, p.WaveTrend.Overbought,
		)
		ev.StochBuy, ev.StochSell = zoneCross(
			frame.StochK[i-1], frame.StochK[i],
			frame.StochD[i-1], frame.StochD[i],
			p.StochRSI.Oversold, p.StochRSI.Overbought,
		)
	}

	markMFIDivergences(series.Closes(), frame.MFI, p.Divergence.Lookback, events)
	return events
}

// levelCross reports an upward exit from the oversold level (buy) or a
// downward exit from the overbought level (sell). Bars where either
// value is still warming up never fire.
func levelCross(prev, cur, oversold, overbought float64) (buy, sell bool) {
	if !domain.Defined(prev) || !domain.Defined(cur) {
		return false, false
	}
	buy = prev <= oversold && cur > oversold
	sell = prev >= overbought && cur < overbought
	return buy, sell
}

// zoneCross reports a fast/slow line crossover that happens inside an
// extreme zone: a cross up while the fast line is below the oversold
// level (buy), or a cross down while above the overbought level (sell).
// Crossovers in neutral territory are ignored.
func zoneCross(fastPrev, fast, slowPrev, slow, oversold, overbought float64) (buy, sell bool) {
	if !domain.Defined(fastPrev) || !domain.Defined(fast) ||
		!domain.Defined(slowPrev) || !domain.Defined(slow) {
		return false, false
	}
	if fastPrev <= slowPrev && fast > slow && fast < oversold {
		buy = true
	}
	if fastPrev >= slowPrev && fast < slow && fast > overbought {
		sell = true
	}
	return buy, sell
}

// markMFIDivergences flags bars where price and the money flow index
// disagree at confirmed local extrema. A bullish divergence is a lower
// price low paired with a higher MFI low; bearish is the mirror on
// highs. The comparison point is the nearest earlier extremum within a
// trailing window of twice the pivot lookback.
func markMFIDivergences(closes, mfi []float64, lookback int, events []domain.SignalEvent) {
	minima := indicators.LocalMinima(closes, lookback)
	maxima := indicators.LocalMaxima(closes, lookback)
	window := 2 * lookback

	for i := range closes {
		if !domain.Defined(mfi[i]) {
			continue
		}
		if minima[i] {
			if j := nearestPrior(minima, i, window); j >= 0 && domain.Defined(mfi[j]) {
				if closes[i] < closes[j] && mfi[i] > mfi[j] {
					events[i].MFIBullishDiv = true
				}
			}
		}
		if maxima[i] {
			if j := nearestPrior(maxima, i, window); j >= 0 && domain.Defined(mfi[j]) {
				if closes[i] > closes[j] && mfi[i] < mfi[j] {
					events[i].MFIBearishDiv = true
				}
			}
		}
	}
}

// nearestPrior returns the closest marked index before i within the
// given trailing window, or -1 when none exists.
func nearestPrior(marks []bool, i, window int) int {
	lo := i - window
	if lo < 0 {
		lo = 0
	}
	for j := i - 1; j >= lo; j-- {
		if marks[j] {
			return j
		}
	}
	return -1
}
