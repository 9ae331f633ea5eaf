package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/unrealities/talkie-trivia-sub000/internal/api"
	"github.com/unrealities/talkie-trivia-sub000/internal/catalog"
	"github.com/unrealities/talkie-trivia-sub000/internal/config"
	"github.com/unrealities/talkie-trivia-sub000/internal/db"
	"github.com/unrealities/talkie-trivia-sub000/internal/logger"
	"github.com/unrealities/talkie-trivia-sub000/internal/repository/sqlite"
	"github.com/unrealities/talkie-trivia-sub000/internal/services"
	"github.com/unrealities/talkie-trivia-sub000/internal/telemetry"
	"github.com/unrealities/talkie-trivia-sub000/internal/worker"
)

func main() {
	cfg := config.Load()

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("Talkie Trivia Server Starting")
	log.Info("===========================================")
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("telemetry_worker_count=%d", cfg.TelemetryWorkerCount)
	log.Debug("telemetry_queue_size=%d", cfg.TelemetryQueueSize)
	log.Debug("history_limit=%d", cfg.HistoryLimit)
	log.Debug("starting_hint_points=%d", cfg.StartingHintPoints)

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	telemetryPool := worker.NewPool(cfg.TelemetryWorkerCount, cfg.TelemetryQueueSize)
	notifier := telemetry.NewPoolNotifier(telemetryPool, telemetry.LogNotifier{})

	gameRepo := sqlite.NewGameRepository(database)
	settingsRepo := sqlite.NewSettingsRepository(database)
	catalogRepo := sqlite.NewCatalogRepository(database)

	catalogService := catalog.NewService(catalogRepo)
	gameService := services.NewGameService(gameRepo, settingsRepo, catalogService, notifier, cfg.StartingHintPoints)

	srv := &api.Server{
		GameService:  gameService,
		HistoryLimit: cfg.HistoryLimit,
	}

	ctx, cancel := context.WithCancel(context.Background())
	telemetryPool.Start(ctx)

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Debug("stopping telemetry pool")
	cancel()
	telemetryPool.Stop()

	log.Info("===========================================")
	log.Info("Talkie Trivia Server Stopped")
	log.Info("===========================================")
}
