package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"signalcipher-backend/internal/config"
	httpdelivery "signalcipher-backend/internal/delivery/http"
	wsdelivery "signalcipher-backend/internal/delivery/websocket"
	"signalcipher-backend/internal/domain"
	"signalcipher-backend/internal/infrastructure/binance"
	"signalcipher-backend/internal/infrastructure/db"
	"signalcipher-backend/internal/infrastructure/fcm"
	"signalcipher-backend/internal/infrastructure/ml"
	"signalcipher-backend/internal/metrics"
	"signalcipher-backend/internal/repository"
	"signalcipher-backend/internal/scheduler"
	"signalcipher-backend/internal/usecase"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	flag.Parse()

	log := zerolog.New(os.Stdout).With().Timestamp().Str("service", "signalcipher").Logger()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Repositories
	repo := repository.NewInMemoryScanRepository()
	tokenRepo := repository.NewTokenRepository(log)

	var history domain.ScanHistoryRepository
	if cfg.DatabaseURL != "" {
		pool, err := db.NewPool(ctx, cfg.DatabaseURL, db.PoolConfigFromEnv())
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer pool.Close()
		if err := db.Migrate(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("failed to run migrations")
		}
		history = repository.NewPostgresScanHistoryRepository(pool)
		log.Info().Msg("scan history persistence enabled")
	} else {
		log.Warn().Msg("DATABASE_URL not set, scan history persistence disabled")
	}

	// Infrastructure
	fcmClient, err := fcm.NewClient(ctx, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize fcm")
	}

	var predictor domain.Predictor
	if cfg.ML.Enabled && cfg.ML.Endpoint != "" {
		predictor = ml.NewClient(cfg.ML.Endpoint, cfg.ML.Timeout.Std())
		log.Info().Str("endpoint", cfg.ML.Endpoint).Msg("ml predictions enabled")
	}

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	source := binance.NewClient("")

	// Usecase
	screener := usecase.NewScreenerUsecase(cfg, source, repo, history, tokenRepo, fcmClient, predictor, m, log)

	// Scheduler
	sched := scheduler.New(log)
	if err := sched.Register(cfg.Scanner.Schedule, screener.ScanCycle); err != nil {
		log.Fatal().Err(err).Msg("failed to register scan schedule")
	}
	go screener.ScanCycle(ctx)
	sched.Start()
	defer sched.Stop()

	// Delivery
	wsHandler := wsdelivery.NewHandler(repo, 5*time.Second, log)
	signalHandler := httpdelivery.NewSignalHandler(repo, history, screener)
	tokenHandler := httpdelivery.NewTokenHandler(tokenRepo)
	testHandler := httpdelivery.NewTestHandler(fcmClient, tokenRepo)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", wsHandler.Handle)
	mux.HandleFunc("/api/signals", signalHandler.HandleGetSignals)
	mux.HandleFunc("/api/signals/symbol", signalHandler.HandleGetSymbol)
	mux.HandleFunc("/api/signals/history", signalHandler.HandleGetHistory)
	mux.HandleFunc("/api/tokens/register", tokenHandler.HandleRegisterToken)
	mux.HandleFunc("/api/tokens/unregister", tokenHandler.HandleUnregisterToken)
	mux.HandleFunc("/api/tokens/count", tokenHandler.HandleGetTokenCount)
	mux.HandleFunc("/api/test/notification", testHandler.SendTestNotification)
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	server := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: mux,
	}

	go func() {
		log.Info().Str("addr", cfg.Server.Addr).Msg("server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
