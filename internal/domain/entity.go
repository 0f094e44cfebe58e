package domain

import "math"

// Candle is a single OHLCV bar. Immutable once appended to a series.
type Candle struct {
	OpenTime int64   `json:"openTime"` // unix milliseconds
	Open     float64 `json:"open"`
	High     float64 `json:"high"`
	Low      float64 `json:"low"`
	Close    float64 `json:"close"`
	Volume   float64 `json:"volume"`
}

// CandleSeries is an ordered sequence of candles with strictly increasing
// timestamps. The pipeline never mutates a series in place; every derived
// column is a new slice aligned to the input.
type CandleSeries []Candle

// Closes extracts the close column.
func (s CandleSeries) Closes() []float64 {
	out := make([]float64, len(s))
	for i, c := range s {
		out[i] = c.Close
	}
	return out
}

// Highs extracts the high column.
func (s CandleSeries) Highs() []float64 {
	out := make([]float64, len(s))
	for i, c := range s {
		out[i] = c.High
	}
	return out
}

// Lows extracts the low column.
func (s CandleSeries) Lows() []float64 {
	out := make([]float64, len(s))
	for i, c := range s {
		out[i] = c.Low
	}
	return out
}

// Volumes extracts the volume column.
func (s CandleSeries) Volumes() []float64 {
	out := make([]float64, len(s))
	for i, c := range s {
		out[i] = c.Volume
	}
	return out
}

// OscillatorFrame holds the computed oscillator columns for one series.
// Every slice has the same length as the input series; warm-up indices
// carry NaN, never zero. Consumers must check Defined before reading.
type OscillatorFrame struct {
	WT1    []float64
	WT2    []float64
	MFI    []float64
	RSI    []float64
	StochK []float64
	StochD []float64

	// Display-only columns, never scored.
	VWAP     []float64
	MACD     []float64
	MACDSig  []float64
	MACDHist []float64
}

// Len returns the frame length (all columns are aligned).
func (f *OscillatorFrame) Len() int {
	return len(f.RSI)
}

// Defined reports whether v carries an actual value rather than the
// warm-up sentinel.
func Defined(v float64) bool {
	return !math.IsNaN(v)
}

// SignalEvent holds the per-index boolean event flags derived from an
// OscillatorFrame. The zero value means "no signal".
type SignalEvent struct {
	WTBuy         bool `json:"wtBuy"`
	WTSell        bool `json:"wtSell"`
	MFIBuy        bool `json:"mfiBuy"`
	MFISell       bool `json:"mfiSell"`
	RSIBuy        bool `json:"rsiBuy"`
	RSISell       bool `json:"rsiSell"`
	StochBuy      bool `json:"stochBuy"`
	StochSell     bool `json:"stochSell"`
	MFIBullishDiv bool `json:"mfiBullishDiv"`
	MFIBearishDiv bool `json:"mfiBearishDiv"`
}
