package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/andresuchdata/shrinkguard/backend-go/internal/cache"
	"github.com/andresuchdata/shrinkguard/backend-go/internal/domain"
	"github.com/andresuchdata/shrinkguard/backend-go/internal/ingest"
	"github.com/andresuchdata/shrinkguard/backend-go/internal/repository"
	"github.com/andresuchdata/shrinkguard/backend-go/internal/sample"
	"github.com/andresuchdata/shrinkguard/backend-go/internal/shrinkage"
	"github.com/andresuchdata/shrinkguard/backend-go/internal/storage"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// AssessmentService runs the assessment pipeline over incoming batches and
// serves the dashboard reads.
type AssessmentService interface {
	AssessUpload(ctx context.Context, filename string, data []byte) (*domain.AssessmentBatch, []domain.InventoryItem, error)
	AssessSample(ctx context.Context, numItems int) (*domain.AssessmentBatch, []domain.InventoryItem, error)
	AssessItems(ctx context.Context, source string, items []domain.InventoryItem) (*domain.AssessmentBatch, []domain.InventoryItem, error)
	GetItems(ctx context.Context, filter domain.AssessmentFilter) ([]domain.InventoryItem, int, error)
	GetSummary(ctx context.Context, filter domain.AssessmentFilter) (*domain.AssessmentSummary, error)
	ListBatches(ctx context.Context, limit int) ([]domain.AssessmentBatch, error)
}

type assessmentService struct {
	repo      repository.AssessmentRepository
	cache     cache.SummaryCache
	archive   storage.ObjectStorage
	pipeline  *shrinkage.Pipeline
	reader    *ingest.Reader
	generator *sample.Generator
}

func NewAssessmentService(
	repo repository.AssessmentRepository,
	summaryCache cache.SummaryCache,
	archive storage.ObjectStorage,
	pipeline *shrinkage.Pipeline,
	generator *sample.Generator,
) AssessmentService {
	if summaryCache == nil {
		summaryCache = cache.NewNoopSummaryCache()
	}

	return &assessmentService{
		repo:      repo,
		cache:     summaryCache,
		archive:   archive,
		pipeline:  pipeline,
		reader:    ingest.NewReader(),
		generator: generator,
	}
}

// AssessUpload parses an uploaded CSV, runs the pipeline, and persists the
// batch. The raw file is archived best-effort when object storage is
// configured.
func (s *assessmentService) AssessUpload(ctx context.Context, filename string, data []byte) (*domain.AssessmentBatch, []domain.InventoryItem, error) {
	items, err := s.reader.ReadBatch(bytes.NewReader(data))
	if err != nil {
		return nil, nil, err
	}

	batch, items, err := s.AssessItems(ctx, domain.BatchSourceUpload, items)
	if err != nil {
		return nil, nil, err
	}

	if s.archive != nil {
		objectName, archiveErr := s.archive.ArchiveBatchFile(ctx, batch.ID, filename, data)
		if archiveErr != nil {
			log.Warn().Err(archiveErr).Str("batch_id", batch.ID).Msg("failed to archive batch file")
		} else {
			log.Info().Str("batch_id", batch.ID).Str("object", objectName).Msg("archived batch file")
		}
	}

	return batch, items, nil
}

// AssessSample generates a demo batch and runs it through the same pipeline
// and persistence path as an upload.
func (s *assessmentService) AssessSample(ctx context.Context, numItems int) (*domain.AssessmentBatch, []domain.InventoryItem, error) {
	if numItems <= 0 {
		return nil, nil, fmt.Errorf("sample size must be positive, got %d", numItems)
	}

	items := s.generator.Generate(numItems)

	return s.AssessItems(ctx, domain.BatchSourceSample, items)
}

// AssessItems runs the pipeline over already-parsed items and persists the
// result as a new batch.
func (s *assessmentService) AssessItems(ctx context.Context, source string, items []domain.InventoryItem) (*domain.AssessmentBatch, []domain.InventoryItem, error) {
	if len(items) == 0 {
		return nil, nil, fmt.Errorf("batch contains no items")
	}

	items = s.pipeline.Run(items)

	batch := &domain.AssessmentBatch{
		ID:        uuid.NewString(),
		Source:    source,
		ItemCount: len(items),
		CreatedAt: time.Now().UTC(),
	}
	for i := range items {
		items[i].BatchID = batch.ID
		items[i].CreatedAt = batch.CreatedAt
	}

	if err := s.repo.SaveBatch(ctx, batch, items); err != nil {
		return nil, nil, fmt.Errorf("failed to save batch: %w", err)
	}

	if err := s.cache.InvalidateAll(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to invalidate summary cache")
	}

	log.Info().
		Str("batch_id", batch.ID).
		Str("source", source).
		Int("items", len(items)).
		Msg("assessed batch")

	return batch, items, nil
}

func (s *assessmentService) GetItems(ctx context.Context, filter domain.AssessmentFilter) ([]domain.InventoryItem, int, error) {
	return s.repo.GetItems(ctx, filter)
}

// GetSummary is cache-aside: serve from the summary cache when possible,
// otherwise aggregate from the repository and fill the cache.
func (s *assessmentService) GetSummary(ctx context.Context, filter domain.AssessmentFilter) (*domain.AssessmentSummary, error) {
	cached, ok, err := s.cache.GetSummary(ctx, filter)
	if err != nil {
		log.Warn().Err(err).Msg("summary cache read failed")
	}
	if ok {
		return cached, nil
	}

	summary, err := s.repo.GetSummary(ctx, filter)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetSummary(ctx, filter, summary); err != nil {
		log.Warn().Err(err).Msg("summary cache write failed")
	}

	return summary, nil
}

func (s *assessmentService) ListBatches(ctx context.Context, limit int) ([]domain.AssessmentBatch, error) {
	return s.repo.ListBatches(ctx, limit)
}
