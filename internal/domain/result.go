package domain

import "time"

// Label is the discrete trading signal derived from a composite score.
type Label string

const (
	StrongSell Label = "STRONG_SELL"
	Sell       Label = "SELL"
	Neutral    Label = "NEUTRAL"
	Buy        Label = "BUY"
	StrongBuy  Label = "STRONG_BUY"
)

// MLPrediction is the optional output of an external classifier.
// PredictedClass 1 means "upward move expected".
type MLPrediction struct {
	PredictedClass int     `json:"predictedClass"`
	Probability    float64 `json:"probability"`
}

// IndicatorSnapshot carries the latest oscillator values for display.
type IndicatorSnapshot struct {
	WT1    float64 `json:"wt1"`
	WT2    float64 `json:"wt2"`
	MFI    float64 `json:"mfi"`
	RSI    float64 `json:"rsi"`
	StochK float64 `json:"stochK"`
	StochD float64 `json:"stochD"`
	VWAP   float64 `json:"vwap"`
	MACD   float64 `json:"macd"`
}

// TimeframeScore stores the score one timeframe produced during selection.
type TimeframeScore struct {
	Timeframe string  `json:"timeframe"`
	Score     float64 `json:"score"`
	Label     Label   `json:"label"`
}

// ScoreResult is the outcome of one (symbol, timeframe) evaluation at the
// latest candle. Value type, never mutated after creation.
type ScoreResult struct {
	Symbol     string            `json:"symbol"`
	Timeframe  string            `json:"timeframe"`
	Timestamp  time.Time         `json:"timestamp"`
	Price      float64           `json:"price"`
	Score      float64           `json:"score"`
	Label      Label             `json:"label"`
	Confidence float64           `json:"confidence"`
	Indicators IndicatorSnapshot `json:"indicators"`
	Events     SignalEvent       `json:"events"`
	ML         *MLPrediction     `json:"ml,omitempty"`

	// Filled by the timeframe selector: scores of every viable timeframe.
	TimeframeScores []TimeframeScore `json:"timeframeScores,omitempty"`
}
