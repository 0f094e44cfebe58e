package domain

import "context"

// ScanRepository holds the latest scan snapshot served to clients.
type ScanRepository interface {
	SaveResults(results []ScoreResult)
	GetResults() []ScoreResult
}

// ScanHistoryRepository persists scored results across scan cycles.
type ScanHistoryRepository interface {
	SaveResults(ctx context.Context, results []ScoreResult) error
	GetRecentBySymbol(ctx context.Context, symbol string, limit int) ([]ScoreResult, error)
}
