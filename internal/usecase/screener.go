package usecase

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"signalcipher-backend/internal/config"
	"signalcipher-backend/internal/domain"
	"signalcipher-backend/internal/infrastructure/fcm"
	"signalcipher-backend/internal/metrics"
	"signalcipher-backend/internal/repository"
)

// CandleSource provides market data for the scan loop.
type CandleSource interface {
	ActiveSymbols(ctx context.Context) ([]string, error)
	FetchCandles(ctx context.Context, symbol, interval string, limit int) (domain.CandleSeries, error)
}

// ScreenerUsecase runs the scan cycle: fetch candles for every
// configured symbol and timeframe, score them, keep the best timeframe
// per symbol, persist the snapshot and push alerts for strong signals.
type ScreenerUsecase struct {
	cfg       config.Config
	source    CandleSource
	repo      domain.ScanRepository
	history   domain.ScanHistoryRepository
	tokenRepo *repository.TokenRepository
	fcmClient *fcm.Client
	predictor domain.Predictor
	metrics   *metrics.Metrics
	log       zerolog.Logger

	notified map[string]time.Time
	mu       sync.RWMutex
}

// NewScreenerUsecase wires the scan loop. history and predictor may be
// nil; the loop then skips persistence and ML scoring respectively.
func NewScreenerUsecase(
	cfg config.Config,
	source CandleSource,
	repo domain.ScanRepository,
	history domain.ScanHistoryRepository,
	tokenRepo *repository.TokenRepository,
	fcmClient *fcm.Client,
	predictor domain.Predictor,
	m *metrics.Metrics,
	log zerolog.Logger,
) *ScreenerUsecase {
	return &ScreenerUsecase{
		cfg:       cfg,
		source:    source,
		repo:      repo,
		history:   history,
		tokenRepo: tokenRepo,
		fcmClient: fcmClient,
		predictor: predictor,
		metrics:   m,
		log:       log.With().Str("component", "screener").Logger(),
		notified:  make(map[string]time.Time),
	}
}

// ScanCycle evaluates every symbol once and publishes the results.
// Failures are per-symbol: one bad symbol never aborts the cycle.
func (uc *ScreenerUsecase) ScanCycle(ctx context.Context) {
	start := time.Now()
	uc.log.Info().Msg("starting scan cycle")

	symbols := uc.cfg.Symbols
	if len(symbols) == 0 {
		var err error
		symbols, err = uc.source.ActiveSymbols(ctx)
		if err != nil {
			uc.log.Error().Err(err).Msg("failed to list active symbols")
			return
		}
	}

	var (
		results []domain.ScoreResult
		wg      sync.WaitGroup
		mu      sync.Mutex
	)
	sem := make(chan struct{}, uc.cfg.Scanner.Concurrency)

	for _, sym := range symbols {
		wg.Add(1)
		go func(symbol string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			res, err := uc.EvaluateSymbol(ctx, symbol)
			if err != nil {
				uc.metrics.SymbolsSkipped.WithLabelValues(skipReason(err)).Inc()
				uc.log.Debug().Err(err).Str("symbol", symbol).Msg("symbol skipped")
				return
			}

			mu.Lock()
			results = append(results, res)
			mu.Unlock()
		}(sym)
	}
	wg.Wait()

	sort.Slice(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	uc.repo.SaveResults(results)
	uc.saveHistory(ctx, results)
	uc.notifyStrongSignals(ctx, results)

	uc.metrics.ScanCycles.Inc()
	uc.metrics.ScanDuration.Observe(time.Since(start).Seconds())
	uc.metrics.SymbolsScanned.Add(float64(len(results)))
	uc.updateLabelGauges(results)

	uc.log.Info().
		Int("symbols", len(results)).
		Dur("elapsed", time.Since(start)).
		Msg("scan cycle completed")
}

// EvaluateSymbol fetches all configured timeframes for one symbol and
// returns the best-scoring result. Timeframes that cannot be fetched
// are treated the same as timeframes with too little data.
func (uc *ScreenerUsecase) EvaluateSymbol(ctx context.Context, symbol string) (domain.ScoreResult, error) {
	series := make(map[string]domain.CandleSeries, len(uc.cfg.Timeframes))
	for _, tf := range uc.cfg.Timeframes {
		s, err := uc.source.FetchCandles(ctx, symbol, tf, uc.cfg.Scanner.CandleLimit)
		if err != nil {
			uc.log.Debug().Err(err).Str("symbol", symbol).Str("timeframe", tf).Msg("fetch failed")
			continue
		}
		series[tf] = s
	}

	ml := uc.predict(ctx, symbol, series)
	return SelectBestTimeframe(symbol, uc.cfg.Timeframes, series, uc.cfg.Indicators, ml)
}

// predict consults the external model once per symbol, using the first
// configured timeframe that has data. Any failure means no prediction.
func (uc *ScreenerUsecase) predict(ctx context.Context, symbol string, series map[string]domain.CandleSeries) *domain.MLPrediction {
	if uc.predictor == nil {
		return nil
	}
	for _, tf := range uc.cfg.Timeframes {
		s, ok := series[tf]
		if !ok || len(s) == 0 {
			continue
		}
		ml, err := uc.predictor.Predict(ctx, symbol, tf, s)
		if err != nil {
			uc.log.Debug().Err(err).Str("symbol", symbol).Msg("ml prediction failed")
			return nil
		}
		return ml
	}
	return nil
}

func (uc *ScreenerUsecase) saveHistory(ctx context.Context, results []domain.ScoreResult) {
	if uc.history == nil || len(results) == 0 {
		return
	}
	if err := uc.history.SaveResults(ctx, results); err != nil {
		uc.metrics.HistoryWriteFail.Inc()
		uc.log.Error().Err(err).Msg("failed to persist scan history")
	}
}

func (uc *ScreenerUsecase) updateLabelGauges(results []domain.ScoreResult) {
	counts := map[domain.Label]int{
		domain.StrongBuy:  0,
		domain.Buy:        0,
		domain.Neutral:    0,
		domain.Sell:       0,
		domain.StrongSell: 0,
	}
	for _, r := range results {
		counts[r.Label]++
	}
	for label, n := range counts {
		uc.metrics.LabelCount.WithLabelValues(string(label)).Set(float64(n))
	}
}

func skipReason(err error) string {
	switch err.(type) {
	case *domain.NoViableTimeframeError:
		return "no_viable_timeframe"
	case *domain.InsufficientDataError:
		return "insufficient_data"
	default:
		return "other"
	}
}
