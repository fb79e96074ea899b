package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/acework2u/ai-smart-plants/internal/api"
	"github.com/acework2u/ai-smart-plants/internal/config"
	"github.com/acework2u/ai-smart-plants/internal/logger"
	"github.com/acework2u/ai-smart-plants/internal/persistence"
	"github.com/acework2u/ai-smart-plants/internal/scheduler"
	"github.com/acework2u/ai-smart-plants/internal/services"
	"github.com/acework2u/ai-smart-plants/internal/store"
	"github.com/acework2u/ai-smart-plants/internal/validation"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("Starting Smart Plants tracker...")

	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.InitWithConfig(logger.Config{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	}); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	logger.Info("Configuration loaded", "storage", cfg.Storage.Backend, "mock_analysis", cfg.MockAnalysis)

	snapshots, err := newSnapshotStore(cfg)
	if err != nil {
		logger.Fatal("Failed to init snapshot storage", "error", err.Error())
	}

	// Stores are the single source of truth; everything below them is glue.
	validator := validation.NewEntityValidator()
	plantStore := store.NewPlantStore(validator)
	activityStore := store.NewActivityStore(validator)
	preferenceStore := store.NewPreferenceStore(validator)

	persister := services.NewPersister(snapshots)
	restoreCtx, cancelRestore := context.WithTimeout(context.Background(), 10*time.Second)
	restore(restoreCtx, persister, plantStore, activityStore, preferenceStore)
	cancelRestore()

	aiService, err := services.NewAIService(cfg.GeminiAPIKey, cfg.OpenAIAPIKey, cfg.MockAnalysis)
	if err != nil {
		logger.Fatal("Failed to init AI service", "error", err.Error())
	}
	plantService := services.NewPlantService(plantStore, persister)
	activityService := services.NewActivityService(activityStore, persister)
	preferenceService := services.NewPreferenceService(preferenceStore, persister)
	scanService := services.NewScanService(aiService, plantService, activityService)
	logger.Info("Services initialized")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reminders := scheduler.New(preferenceStore, plantStore, activityStore, scheduler.LogNotifier{})
	go func() {
		if err := reminders.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("Scheduler stopped", "error", err.Error())
		}
	}()

	app := api.NewApp(plantService, activityService, preferenceService, scanService)
	server := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: app.Router(),
	}

	go func() {
		logger.Info("HTTP server listening", "port", cfg.HTTPPort)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server stopped", "error", err.Error())
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown failed", "error", err.Error())
	}
}

func newSnapshotStore(cfg *config.Config) (persistence.SnapshotStore, error) {
	switch cfg.Storage.Backend {
	case "postgres":
		return persistence.NewPostgresStore(cfg.DB)
	case "redis":
		return persistence.NewRedisStore(cfg.Redis.Host, cfg.Redis.Port)
	default:
		return persistence.NewMemoryStore(), nil
	}
}

func restore(ctx context.Context, persister *services.Persister,
	plants *store.PlantStore, activities *store.ActivityStore, preferences *store.PreferenceStore) {
	if err := persister.Restore(ctx, store.SnapshotPlants, plants); err != nil {
		logger.Warn("Plant snapshot restore failed", "error", err.Error())
	}
	if err := persister.Restore(ctx, store.SnapshotActivities, activities); err != nil {
		logger.Warn("Activity snapshot restore failed", "error", err.Error())
	}
	if err := persister.Restore(ctx, store.SnapshotPreferences, preferences); err != nil {
		logger.Warn("Preference snapshot restore failed", "error", err.Error())
	}
}
