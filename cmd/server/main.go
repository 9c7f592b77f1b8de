package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Omc12/StockSimple/internal/config"
	"github.com/Omc12/StockSimple/internal/infra"
	"github.com/Omc12/StockSimple/internal/router"
	"github.com/Omc12/StockSimple/internal/service"
	"github.com/Omc12/StockSimple/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Structured logger — dev: pretty, prod: JSON
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Low-stock alert mail is optional: without SMTP host + recipient the
	// ledger runs with no notifier and no worker pool.
	var notifier service.LowStockNotifier
	if cfg.SMTPHost != "" && cfg.AlertEmail != "" {
		mailer := infra.NewMailer(cfg)
		breaker := infra.NewCircuitBreaker(5, time.Minute)
		dispatcher := worker.NewDispatcher(rdb)
		handlers := &worker.WorkerHandlers{
			Alert: worker.NewAlertWorker(mailer, breaker, cfg.AlertEmail),
		}
		worker.StartWorkerPool(ctx, rdb, handlers, cfg.WorkerPoolSize)
		notifier = dispatcher
	}

	r := router.New(cfg, db, rdb, notifier)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("StockSimple backend listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}
