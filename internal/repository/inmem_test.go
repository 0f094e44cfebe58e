package repository

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"signalcipher-backend/internal/domain"
)

func TestInMemoryScanRepositoryReplacesSnapshot(t *testing.T) {
	repo := NewInMemoryScanRepository()
	assert.Empty(t, repo.GetResults())

	first := []domain.ScoreResult{
		{Symbol: "BTCUSDT", Score: 2.5, Label: domain.Buy},
		{Symbol: "ETHUSDT", Score: -1.0, Label: domain.Neutral},
	}
	repo.SaveResults(first)
	require.Len(t, repo.GetResults(), 2)

	second := []domain.ScoreResult{
		{Symbol: "SOLUSDT", Score: 0, Label: domain.Neutral},
	}
	repo.SaveResults(second)

	got := repo.GetResults()
	require.Len(t, got, 1)
	assert.Equal(t, "SOLUSDT", got[0].Symbol)
}

func TestInMemoryScanRepositoryReturnsCopy(t *testing.T) {
	repo := NewInMemoryScanRepository()
	repo.SaveResults([]domain.ScoreResult{{Symbol: "BTCUSDT"}})

	got := repo.GetResults()
	got[0].Symbol = "MUTATED"

	assert.Equal(t, "BTCUSDT", repo.GetResults()[0].Symbol)
}

func TestTokenRepository(t *testing.T) {
	repo := NewTokenRepository(zerolog.Nop())
	assert.Equal(t, 0, repo.GetTokenCount())

	repo.RegisterToken("tok-1", "android", 1)
	repo.RegisterToken("tok-2", "ios", 2)
	repo.RegisterToken("tok-1", "android", 3) // re-register is idempotent
	assert.Equal(t, 2, repo.GetTokenCount())
	assert.ElementsMatch(t, []string{"tok-1", "tok-2"}, repo.GetAllTokens())

	repo.UnregisterToken("tok-1")
	assert.Equal(t, 1, repo.GetTokenCount())
	assert.Equal(t, []string{"tok-2"}, repo.GetAllTokens())

	repo.UnregisterToken("tok-unknown") // unknown token is a no-op
	assert.Equal(t, []string{"tok-2"}, repo.GetAllTokens())
}
