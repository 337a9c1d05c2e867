package drive

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// Watcher polls a Drive drop folder and ingests CSV files as they appear.
// Files are keyed by id plus modified time, so an updated file is re-ingested
// as a fresh batch.
type Watcher struct {
	driveService *Service
	ingest       *IngestService
	folderID     string
	interval     time.Duration
	seen         map[string]string
}

func NewWatcher(driveService *Service, ingest *IngestService, folderID string, interval time.Duration) *Watcher {
	return &Watcher{
		driveService: driveService,
		ingest:       ingest,
		folderID:     folderID,
		interval:     interval,
		seen:         make(map[string]string),
	}
}

// Run polls until ctx is cancelled. The first poll happens immediately.
func (w *Watcher) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.poll(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.poll(ctx)
		}
	}
}

func (w *Watcher) poll(ctx context.Context) {
	files, err := w.driveService.ListCSVFiles(w.folderID)
	if err != nil {
		log.Error().Err(err).Str("folder", w.folderID).Msg("drive poll failed")
		return
	}

	for _, f := range files {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if w.seen[f.ID] == f.ModifiedTime {
			continue
		}

		batch, err := w.ingest.IngestFile(ctx, f.ID)
		if err != nil {
			log.Error().Err(err).Str("file", f.Name).Msg("failed to ingest drive file")
			continue
		}

		w.seen[f.ID] = f.ModifiedTime
		log.Info().Str("file", f.Name).Str("batch_id", batch.ID).Msg("ingested drive file")
	}
}
