package main

import (
	"context"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vocapets/vocapets/internal/api"
	"github.com/vocapets/vocapets/internal/clock"
	"github.com/vocapets/vocapets/internal/config"
	"github.com/vocapets/vocapets/internal/db"
	"github.com/vocapets/vocapets/internal/logger"
	"github.com/vocapets/vocapets/internal/pets"
	"github.com/vocapets/vocapets/internal/repository/sqlite"
	"github.com/vocapets/vocapets/internal/services"
	"github.com/vocapets/vocapets/internal/worker"
)

func main() {
	cfg := config.Load()

	// Initialize logger
	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("Vocapets Reward Engine Starting")
	log.Info("===========================================")

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("side_effect_worker_count=%d", cfg.SideEffectWorkers)
	log.Debug("side_effect_queue_size=%d", cfg.SideEffectQueueSize)

	// Open database
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	// Repositories
	profileRepo := sqlite.NewProfileRepository(database.DB)
	masteryRepo := sqlite.NewMasteryRepository(database.DB)
	rewardRepo := sqlite.NewRewardRepository(database.DB)
	questRepo := sqlite.NewQuestRepository(database.DB)
	challengeRepo := sqlite.NewChallengeRepository(database.DB)
	petRepo := sqlite.NewPetRepository(database.DB)

	// Side-effect worker pool
	sideEffectPool := worker.NewPool(cfg.SideEffectWorkers, cfg.SideEffectQueueSize)

	// Services
	clk := clock.System{}
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	questService := services.NewQuestService(questRepo, challengeRepo, profileRepo, clk, rng)
	masteryService := services.NewMasteryService(masteryRepo, profileRepo, clk)
	profileService := services.NewProfileService(profileRepo, petRepo, questService, clk)
	rewardService := services.NewRewardService(
		rewardRepo, profileRepo, petRepo, questService,
		pets.DefaultCatalog(), pets.LookupTypes, pets.TypeBonus, pets.ComputeStatus,
		sideEffectPool, clk, rng,
	)

	srv := &api.Server{
		RewardService:  rewardService,
		MasteryService: masteryService,
		QuestService:   questService,
		ProfileService: profileService,
	}

	ctx, cancel := context.WithCancel(context.Background())
	sideEffectPool.Start(ctx)

	// Configure HTTP server
	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start HTTP server
	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("stopping worker pool")
	cancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	sideEffectPool.Stop()

	log.Info("===========================================")
	log.Info("Vocapets Reward Engine Stopped")
	log.Info("===========================================")
}
