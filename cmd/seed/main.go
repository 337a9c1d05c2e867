package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/andresuchdata/shrinkguard/backend-go/internal/cache"
	"github.com/andresuchdata/shrinkguard/backend-go/internal/repository"
	"github.com/andresuchdata/shrinkguard/backend-go/internal/repository/postgres"
	"github.com/andresuchdata/shrinkguard/backend-go/internal/sample"
	"github.com/andresuchdata/shrinkguard/backend-go/internal/service"
	"github.com/andresuchdata/shrinkguard/backend-go/internal/shrinkage"
	"github.com/andresuchdata/shrinkguard/backend-go/internal/types"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "db-url",
		Usage:    "Database connection string",
		Required: true,
		EnvVars:  []string{"DATABASE_URL"},
	}
}

func initDB(c *cli.Context) error {
	// Initialize database connection
	db, err := sql.Open("pgx", c.String("db-url"))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	// Store the database connection in the context
	c.Context = context.WithValue(c.Context, types.DBKey, db)
	return nil
}

func closeDB(c *cli.Context) error {
	// Close the database connection when done
	if db, ok := c.Context.Value(types.DBKey).(*sql.DB); ok && db != nil {
		return db.Close()
	}
	return nil
}

func serviceFromContext(c *cli.Context) (service.AssessmentService, error) {
	db, ok := c.Context.Value(types.DBKey).(*sql.DB)
	if !ok || db == nil {
		return nil, fmt.Errorf("database connection not initialized")
	}

	pdb := postgres.NewFromDB(sqlx.NewDb(db, "pgx"))
	if err := pdb.EnsureSchema(c.Context); err != nil {
		return nil, fmt.Errorf("failed to ensure schema: %w", err)
	}

	repo := repository.NewAssessmentRepository(pdb)
	pipeline := shrinkage.NewPipeline(nil)
	generator := sample.NewGenerator(c.Int64("seed"))

	return service.NewAssessmentService(repo, cache.NewNoopSummaryCache(), nil, pipeline, generator), nil
}

func seedSample(c *cli.Context) error {
	svc, err := serviceFromContext(c)
	if err != nil {
		return err
	}

	batch, items, err := svc.AssessSample(c.Context, c.Int("count"))
	if err != nil {
		return fmt.Errorf("failed to seed sample batch: %w", err)
	}

	log.Printf("Seeded sample batch %s with %d items\n", batch.ID, len(items))
	return nil
}

func seedCSV(c *cli.Context) error {
	svc, err := serviceFromContext(c)
	if err != nil {
		return err
	}

	path := c.String("file")
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	batch, items, err := svc.AssessUpload(c.Context, filepath.Base(path), data)
	if err != nil {
		return fmt.Errorf("failed to seed %s: %w", path, err)
	}

	log.Printf("Seeded batch %s from %s with %d items\n", batch.ID, path, len(items))
	return nil
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	app := &cli.App{
		Name:  "seed",
		Usage: "Seed the database with assessed inventory batches",
		Commands: []*cli.Command{
			{
				Name:  "sample",
				Usage: "Generate and assess a demo inventory batch",
				Flags: []cli.Flag{
					newDBURLFlag(),
					&cli.IntFlag{
						Name:    "count",
						Usage:   "Number of items to generate",
						Value:   20,
						EnvVars: []string{"SAMPLE_BATCH_SIZE"},
					},
					&cli.Int64Flag{
						Name:    "seed",
						Usage:   "Random seed for reproducible batches",
						Value:   sample.DefaultSeed,
						EnvVars: []string{"SAMPLE_SEED"},
					},
				},
				Before: initDB,
				After:  closeDB,
				Action: seedSample,
			},
			{
				Name:  "csv",
				Usage: "Assess and store an inventory CSV file",
				Flags: []cli.Flag{
					newDBURLFlag(),
					&cli.StringFlag{
						Name:     "file",
						Usage:    "Path to the inventory CSV file",
						Required: true,
					},
					&cli.Int64Flag{
						Name:    "seed",
						Usage:   "Random seed for pricing normalization",
						Value:   sample.DefaultSeed,
						EnvVars: []string{"SAMPLE_SEED"},
					},
				},
				Before: initDB,
				After:  closeDB,
				Action: seedCSV,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
