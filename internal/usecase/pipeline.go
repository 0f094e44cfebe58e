package usecase

import (
	"signalcipher-backend/internal/config"
	"signalcipher-backend/internal/domain"
	"signalcipher-backend/internal/infrastructure/indicators"
)

// MinimumBars returns the number of candles required before every
// oscillator column has a defined value at the final index. Shorter
// series are rejected outright rather than scored on a partial frame.
func MinimumBars(p config.IndicatorParams) int {
	need := p.RSI.Period + 1
	if n := p.MoneyFlow.Period + 1; n > need {
		need = n
	}
	// wt2 is a 4-bar SMA of wt1, which itself settles after both EMA stages.
	if n := p.WaveTrend.ChannelLength + p.WaveTrend.AverageLength + 2; n > need {
		need = n
	}
	if n := p.StochRSI.RSIPeriod + p.StochRSI.StochPeriod + p.StochRSI.KSmooth + p.StochRSI.DSmooth - 2; n > need {
		need = n
	}
	if n := p.MACD.Slow + p.MACD.Signal - 1; n > need {
		need = n
	}
	return need
}

// ComputeOscillators runs the full indicator pipeline over a candle
// series and returns one column per oscillator, index-aligned with the
// input. Warm-up prefixes are NaN. It never returns a partial frame:
// either every column is computed or an error is returned.
func ComputeOscillators(series domain.CandleSeries, p config.IndicatorParams) (*domain.OscillatorFrame, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	need := MinimumBars(p)
	if len(series) < need {
		return nil, &domain.InsufficientDataError{Need: need, Have: len(series)}
	}

	highs := series.Highs()
	lows := series.Lows()
	closes := series.Closes()
	volumes := series.Volumes()

	wt1, wt2 := indicators.CalculateWaveTrend(highs, lows, closes, p.WaveTrend.ChannelLength, p.WaveTrend.AverageLength)
	mfi := indicators.CalculateMFI(highs, lows, closes, volumes, p.MoneyFlow.Period)
	rsi := indicators.CalculateRSI(closes, p.RSI.Period)
	stochK, stochD := indicators.CalculateStochRSI(closes, p.StochRSI.RSIPeriod, p.StochRSI.StochPeriod, p.StochRSI.KSmooth, p.StochRSI.DSmooth)
	macd := indicators.CalculateMACD(closes, p.MACD.Fast, p.MACD.Slow, p.MACD.Signal)
	vwap := indicators.CalculateVWAP(highs, lows, closes, volumes)

	return &domain.OscillatorFrame{
		WT1:      wt1,
		WT2:      wt2,
		MFI:      mfi,
		RSI:      rsi,
		StochK:   stochK,
		StochD:   stochD,
		VWAP:     vwap,
		MACD:     macd.MACD,
		MACDSig:  macd.Signal,
		MACDHist: macd.Histogram,
	}, nil
}
