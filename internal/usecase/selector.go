package usecase

import (
	"signalcipher-backend/internal/config"
	"signalcipher-backend/internal/domain"
)

// SelectBestTimeframe scores a symbol on every supplied timeframe and
// returns the result of the one with the greatest score. Greatest, not
// greatest magnitude: a mildly bullish timeframe wins over a strongly
// bearish one. Ties go to the timeframe listed first. Timeframes whose
// series is missing or too short are skipped; when every timeframe is
// skipped the symbol yields NoViableTimeframeError.
func SelectBestTimeframe(symbol string, timeframes []string, series map[string]domain.CandleSeries, p config.IndicatorParams, ml *domain.MLPrediction) (domain.ScoreResult, error) {
	var (
		best     domain.ScoreResult
		viable   bool
		tfScores []domain.TimeframeScore
	)

	for _, tf := range timeframes {
		s, ok := series[tf]
		if !ok {
			continue
		}
		frame, err := ComputeOscillators(s, p)
		if err != nil {
			continue
		}
		events := DetectSignals(s, frame, p)
		res := Score(s, frame, events, p, ml)
		res.Symbol = symbol
		res.Timeframe = tf

		tfScores = append(tfScores, domain.TimeframeScore{
			Timeframe: tf,
			Score:     res.Score,
			Label:     res.Label,
		})

		if !viable || res.Score > best.Score {
			best = res
			viable = true
		}
	}

	if !viable {
		return domain.ScoreResult{}, &domain.NoViableTimeframeError{Symbol: symbol}
	}
	best.TimeframeScores = tfScores
	return best, nil
}
