package domain

import "context"

// Predictor is an optional external classifier consulted once per
// symbol evaluation. Implementations must be safe for concurrent use.
// A nil prediction with a nil error means the model declined to answer.
type Predictor interface {
	Predict(ctx context.Context, symbol, timeframe string, series CandleSeries) (*MLPrediction, error)
}
