package drive

import (
	"context"
	"io"

	"github.com/andresuchdata/shrinkguard/backend-go/internal/domain"
	"github.com/andresuchdata/shrinkguard/backend-go/internal/ingest"
	"github.com/andresuchdata/shrinkguard/backend-go/internal/service"
	"github.com/rs/zerolog/log"
)

// IngestService pulls inventory CSVs out of a Drive folder and feeds them
// through the assessment pipeline.
type IngestService struct {
	driveService *Service
	assessments  service.AssessmentService
	reader       *ingest.Reader
}

func NewIngestService(driveService *Service, assessments service.AssessmentService) *IngestService {
	return &IngestService{
		driveService: driveService,
		assessments:  assessments,
		reader:       ingest.NewReader(),
	}
}

// IngestFile streams one Drive file through CSV parsing and assessment. The
// resulting batch is recorded with the drive source.
func (s *IngestService) IngestFile(ctx context.Context, fileID string) (*domain.AssessmentBatch, error) {
	pr, pw := io.Pipe()
	go func() {
		err := s.driveService.DownloadFile(fileID, pw)
		pw.CloseWithError(err)
	}()

	items, err := s.reader.ReadBatch(pr)
	if err != nil {
		return nil, err
	}

	batch, _, err := s.assessments.AssessItems(ctx, domain.BatchSourceDrive, items)
	if err != nil {
		return nil, err
	}

	return batch, nil
}

// IngestFolder assesses every CSV in the given Drive folder. Files that fail
// are logged and skipped so one bad file does not block the rest.
func (s *IngestService) IngestFolder(ctx context.Context, folderID string) ([]*domain.AssessmentBatch, error) {
	files, err := s.driveService.ListCSVFiles(folderID)
	if err != nil {
		return nil, err
	}

	var batches []*domain.AssessmentBatch
	for _, f := range files {
		select {
		case <-ctx.Done():
			return batches, ctx.Err()
		default:
		}

		batch, err := s.IngestFile(ctx, f.ID)
		if err != nil {
			log.Error().Err(err).Str("file", f.Name).Msg("failed to ingest drive file")
			continue
		}

		log.Info().Str("file", f.Name).Str("batch_id", batch.ID).Msg("ingested drive file")
		batches = append(batches, batch)
	}

	return batches, nil
}
