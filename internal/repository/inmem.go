package repository

import (
	"sync"

	"signalcipher-backend/internal/domain"
)

// InMemoryScanRepository holds the latest completed scan snapshot.
// Each cycle replaces the whole list.
type InMemoryScanRepository struct {
	results []domain.ScoreResult
	mu      sync.RWMutex
}

func NewInMemoryScanRepository() *InMemoryScanRepository {
	return &InMemoryScanRepository{
		results: []domain.ScoreResult{},
	}
}

func (r *InMemoryScanRepository) SaveResults(results []domain.ScoreResult) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results = results
}

// GetResults returns a copy of the snapshot. ScoreResult is treated as
// a value type everywhere, so a shallow copy is safe to hand out.
func (r *InMemoryScanRepository) GetResults() []domain.ScoreResult {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.ScoreResult, len(r.results))
	copy(out, r.results)
	return out
}
