package domain

import "fmt"

// InsufficientDataError means a series is too short for the requested
// indicator periods. Fatal to that single pipeline run only.
type InsufficientDataError struct {
	Need int
	Have int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data: need %d candles, have %d", e.Need, e.Have)
}

// NoViableTimeframeError means every candidate timeframe was empty or too
// short, so no result could be produced for the symbol.
type NoViableTimeframeError struct {
	Symbol string
}

func (e *NoViableTimeframeError) Error() string {
	return fmt.Sprintf("no viable timeframe for %s", e.Symbol)
}

// InvalidParameterError means the indicator configuration is malformed.
// Raised at configuration time, never silently defaulted.
type InvalidParameterError struct {
	Param  string
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s: %s", e.Param, e.Reason)
}
