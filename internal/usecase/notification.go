package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"signalcipher-backend/internal/domain"
)

// notifyStrongSignals pushes an FCM alert for every STRONG_BUY and
// STRONG_SELL result, respecting a per-symbol cooldown so a symbol that
// stays extreme across cycles does not spam devices.
func (uc *ScreenerUsecase) notifyStrongSignals(ctx context.Context, results []domain.ScoreResult) {
	if uc.fcmClient == nil || !uc.fcmClient.IsEnabled() {
		return
	}

	tokens := uc.tokenRepo.GetAllTokens()
	if len(tokens) == 0 {
		return
	}

	now := time.Now()
	cooldown := uc.cfg.Notifications.Cooldown.Std()

	for _, res := range results {
		if res.Label != domain.StrongBuy && res.Label != domain.StrongSell {
			continue
		}

		uc.mu.RLock()
		last, seen := uc.notified[res.Symbol]
		uc.mu.RUnlock()
		if seen && now.Sub(last) < cooldown {
			continue
		}

		display := strings.TrimSuffix(res.Symbol, "USDT")
		var title string
		if res.Label == domain.StrongBuy {
			title = fmt.Sprintf("🚀 %s STRONG BUY on %s", display, res.Timeframe)
		} else {
			title = fmt.Sprintf("🔻 %s STRONG SELL on %s", display, res.Timeframe)
		}
		body := fmt.Sprintf("Score: %+.1f | Confidence: %.0f%% | Price: $%.5f",
			res.Score, res.Confidence*100, res.Price)

		data := map[string]string{
			"symbol":     res.Symbol,
			"timeframe":  res.Timeframe,
			"label":      string(res.Label),
			"score":      fmt.Sprintf("%.2f", res.Score),
			"confidence": fmt.Sprintf("%.2f", res.Confidence),
			"price":      fmt.Sprintf("%.5f", res.Price),
		}

		if err := uc.fcmClient.SendMulticast(ctx, tokens, title, body, data); err != nil {
			uc.log.Error().Err(err).Str("symbol", res.Symbol).Msg("failed to send alert")
			continue
		}
		uc.metrics.AlertsSent.Inc()
		uc.log.Info().Str("symbol", res.Symbol).Str("label", string(res.Label)).
			Int("devices", len(tokens)).Msg("alert sent")

		uc.mu.Lock()
		uc.notified[res.Symbol] = now
		uc.mu.Unlock()
	}

	// Drop stale cooldown entries.
	uc.mu.Lock()
	for symbol, ts := range uc.notified {
		if now.Sub(ts) > cooldown*2 {
			delete(uc.notified, symbol)
		}
	}
	uc.mu.Unlock()
}
