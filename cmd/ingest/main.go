package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/andresuchdata/shrinkguard/backend-go/internal/cache"
	"github.com/andresuchdata/shrinkguard/backend-go/internal/config"
	"github.com/andresuchdata/shrinkguard/backend-go/internal/drive"
	"github.com/andresuchdata/shrinkguard/backend-go/internal/repository"
	"github.com/andresuchdata/shrinkguard/backend-go/internal/repository/postgres"
	"github.com/andresuchdata/shrinkguard/backend-go/internal/sample"
	"github.com/andresuchdata/shrinkguard/backend-go/internal/service"
	"github.com/andresuchdata/shrinkguard/backend-go/internal/shrinkage"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file if it exists
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Initialize Google Drive service
	driveService, err := drive.NewService(cfg.Drive.CredentialsJSON)
	if err != nil {
		log.Fatalf("Failed to initialize Google Drive service: %v", err)
	}

	// Initialize Database
	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	if err := db.EnsureSchema(context.Background()); err != nil {
		log.Fatalf("Failed to ensure schema: %v", err)
	}

	// Initialize Services
	repo := repository.NewAssessmentRepository(db)
	pipeline := shrinkage.NewPipeline(nil)
	generator := sample.NewGenerator(cfg.Sample.Seed)
	assessmentService := service.NewAssessmentService(repo, cache.NewNoopSummaryCache(), nil, pipeline, generator)
	ingestService := drive.NewIngestService(driveService, assessmentService)

	// Poll the drop folder in the background when one is configured.
	if cfg.Drive.FolderID != "" && cfg.Drive.PollSeconds > 0 {
		watcher := drive.NewWatcher(driveService, ingestService, cfg.Drive.FolderID,
			time.Duration(cfg.Drive.PollSeconds)*time.Second)
		go watcher.Run(context.Background())
	}

	// Create router and register routes
	r := mux.NewRouter()
	driveHandler := drive.NewHandler(driveService, ingestService)
	driveHandler.RegisterRoutes(r)

	// Health check endpoint
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods("GET")

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Ingest server starting on %s\n", addr)
	log.Fatal(http.ListenAndServe(addr, r))
}
