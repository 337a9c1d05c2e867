package storage

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/andresuchdata/shrinkguard/backend-go/internal/config"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog/log"
)

// ObjectStorage archives raw batch files so an assessment can be replayed
// against the exact input it was produced from.
type ObjectStorage interface {
	ArchiveBatchFile(ctx context.Context, batchID, filename string, data []byte) (string, error)
}

type minioStorage struct {
	client *minio.Client
	bucket string
}

func NewObjectStorage(cfg config.StorageConfig) (ObjectStorage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	s := &minioStorage{
		client: client,
		bucket: cfg.Bucket,
	}

	if err := s.ensureBucket(context.Background(), cfg.Region); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *minioStorage) ensureBucket(ctx context.Context, region string) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", s.bucket, err)
	}
	if exists {
		return nil
	}

	err = s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: region})
	if err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", s.bucket, err)
	}

	log.Info().Str("bucket", s.bucket).Msg("created storage bucket")
	return nil
}

func (s *minioStorage) ArchiveBatchFile(ctx context.Context, batchID, filename string, data []byte) (string, error) {
	objectName := fmt.Sprintf("batches/%s/%s/%s", time.Now().UTC().Format("2006/01/02"), batchID, filename)

	_, err := s.client.PutObject(ctx, s.bucket, objectName, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "text/csv",
	})
	if err != nil {
		return "", fmt.Errorf("failed to archive %s: %w", objectName, err)
	}

	return objectName, nil
}
