// backend-go/cmd/server/main.go
package main

import (
	"context"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/andresuchdata/shrinkguard/backend-go/internal/api"
	"github.com/andresuchdata/shrinkguard/backend-go/internal/cache"
	"github.com/andresuchdata/shrinkguard/backend-go/internal/config"
	"github.com/andresuchdata/shrinkguard/backend-go/internal/repository"
	"github.com/andresuchdata/shrinkguard/backend-go/internal/repository/postgres"
	"github.com/andresuchdata/shrinkguard/backend-go/internal/sample"
	"github.com/andresuchdata/shrinkguard/backend-go/internal/service"
	"github.com/andresuchdata/shrinkguard/backend-go/internal/shrinkage"
	"github.com/andresuchdata/shrinkguard/backend-go/internal/storage"
	"github.com/andresuchdata/shrinkguard/backend-go/pkg/logger"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	logger.SetLevel(cfg.Server.Mode)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize database
	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.EnsureSchema(context.Background()); err != nil {
		log.Fatalf("Failed to ensure schema: %v", err)
	}

	// Initialize summary cache (noop when disabled)
	summaryCache, err := cache.NewSummaryCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("cache unavailable, continuing without it")
		summaryCache = cache.NewNoopSummaryCache()
	}

	// Object storage is optional; uploads still work without archival.
	var archive storage.ObjectStorage
	if cfg.Storage.Enabled {
		archive, err = storage.NewObjectStorage(cfg.Storage)
		if err != nil {
			logger.Log.Warn().Err(err).Msg("object storage unavailable, continuing without archival")
			archive = nil
		}
	}

	// Initialize services
	pipeline := shrinkage.NewPipeline(rand.New(rand.NewSource(time.Now().UnixNano())))
	generator := sample.NewGenerator(cfg.Sample.Seed)
	repo := repository.NewAssessmentRepository(db)
	assessmentService := service.NewAssessmentService(repo, summaryCache, archive, pipeline, generator)

	// Initialize HTTP server
	router := api.NewRouter(&api.Services{
		AssessmentService: assessmentService,
		SampleBatchSize:   cfg.Sample.BatchSize,
	}, cfg.Server.AllowedOrigins)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}
