package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/plateful/plateful/internal/api"
	"github.com/plateful/plateful/internal/api/middleware"
	"github.com/plateful/plateful/internal/config"
	"github.com/plateful/plateful/internal/logger"
	"github.com/plateful/plateful/internal/repository"
	"github.com/plateful/plateful/internal/service"
)

func main() {
	// Load configuration
	// Support CONFIG_PATH environment variable for production deployments
	configPath := os.Getenv("CONFIG_PATH")
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.NewFromEnv(nil)
	logger.SetDefaultLogger(log)
	defer logger.Sync()

	// Initialize database
	db, err := repository.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	foodRepo := repository.NewFoodRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	// Load training artifacts. A missing or unusable pair is tolerated: the
	// API serves everything else and recommendations resolve to empty results
	// until a training run completes and the process restarts.
	artifacts, err := service.LoadArtifacts(cfg.Artifacts.Dir)
	if err != nil {
		log.Warnf("Recommendation artifacts unavailable: dir=%s, error=%v", cfg.Artifacts.Dir, err)
		artifacts = nil
	} else {
		log.Infof("Recommendation artifacts loaded: fit=%s, trained_at=%s, vocabulary=%d",
			artifacts.FitID, artifacts.TrainedAt.Format(time.RFC3339), artifacts.Vectorizer.Size())
	}

	// Initialize services
	var cache *service.CatalogCache
	if artifacts != nil {
		cache = service.NewCatalogCache(foodRepo, artifacts.Vectorizer, cfg.Recommend.CacheTTL)
	}

	authService := service.NewAuthService(userRepo, log)
	catalogService := service.NewCatalogService(foodRepo, orderRepo, cache, log)
	recommendService := service.NewRecommendService(
		foodRepo,
		artifacts,
		cache,
		log,
		&service.RecommendConfig{
			Strategy: service.RecommendStrategy(cfg.Recommend.Strategy),
			TopK:     cfg.Recommend.TopK,
		},
	)

	// Setup router
	router := api.SetupRouter(authService, catalogService, recommendService, log,
		middleware.CORSConfig{
			AllowedOrigins:  cfg.Server.CORS.AllowedOrigins,
			AllowAllOrigins: cfg.Server.CORS.AllowAllOrigins,
		},
		cfg.Server.Mode)

	// Create HTTP server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Infof("Starting API server: port=%d, mode=%s, recommender=%v",
			cfg.Server.Port, cfg.Server.Mode, recommendService.ArtifactsLoaded())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infof("Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Infof("Server exited")
}
