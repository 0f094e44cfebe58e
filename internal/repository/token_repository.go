package repository

import (
	"sync"

	"github.com/rs/zerolog"
)

// DeviceToken is one FCM registration token subscribed to signal alerts.
type DeviceToken struct {
	Token     string `json:"token"`
	Platform  string `json:"platform"` // "android" or "ios"
	CreatedAt int64  `json:"createdAt"`
}

// TokenRepository keeps the alert subscriber set in memory. Registration
// is idempotent: re-registering an existing token refreshes its timestamp.
type TokenRepository struct {
	tokens map[string]*DeviceToken
	mu     sync.RWMutex
	log    zerolog.Logger
}

func NewTokenRepository(log zerolog.Logger) *TokenRepository {
	return &TokenRepository{
		tokens: make(map[string]*DeviceToken),
		log:    log.With().Str("component", "token_repository").Logger(),
	}
}

// RegisterToken adds a device token or refreshes an existing one.
func (r *TokenRepository) RegisterToken(token, platform string, timestamp int64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, existed := r.tokens[token]
	r.tokens[token] = &DeviceToken{
		Token:     token,
		Platform:  platform,
		CreatedAt: timestamp,
	}
	if !existed {
		r.log.Info().Str("platform", platform).Int("total", len(r.tokens)).Msg("device token registered")
	}
}

// UnregisterToken drops a device token. Unknown tokens are a no-op, so
// clients can unregister without tracking whether they ever registered.
func (r *TokenRepository) UnregisterToken(token string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tokens[token]; ok {
		delete(r.tokens, token)
		r.log.Info().Int("total", len(r.tokens)).Msg("device token unregistered")
	}
}

// GetAllTokens returns the current subscriber tokens for alert fan-out.
func (r *TokenRepository) GetAllTokens() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tokens := make([]string, 0, len(r.tokens))
	for token := range r.tokens {
		tokens = append(tokens, token)
	}
	return tokens
}

func (r *TokenRepository) GetTokenCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.tokens)
}
