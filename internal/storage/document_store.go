package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/lshigami/coursequiz/config"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog/log"
)

var ErrStorageDisabled = errors.New("document storage is not configured")

// DocumentStore keeps raw uploaded course documents.
type DocumentStore interface {
	Enabled() bool
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Get(ctx context.Context, key string) ([]byte, error)
}

// NewDocumentStore returns a MinIO-backed store, or a disabled one when no
// endpoint is configured.
func NewDocumentStore(cfg *config.Config) (DocumentStore, error) {
	if cfg.Minio.Endpoint == "" {
		log.Warn().Msg("MINIO_ENDPOINT is not set. Raw course documents will be stored in the database.")
		return disabledStore{}, nil
	}
	return NewMinioDocumentStore(context.Background(), cfg.Minio)
}

type disabledStore struct{}

func (disabledStore) Enabled() bool { return false }

func (disabledStore) Put(context.Context, string, []byte, string) (string, error) {
	return "", ErrStorageDisabled
}

func (disabledStore) Get(context.Context, string) ([]byte, error) {
	return nil, ErrStorageDisabled
}

type MinioDocumentStore struct {
	client *minio.Client
	bucket string
}

func NewMinioDocumentStore(ctx context.Context, cfg config.Minio) (*MinioDocumentStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize MinIO client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{Region: cfg.Region}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", cfg.Bucket, err)
		}
		log.Info().Str("bucket", cfg.Bucket).Msg("Created document bucket")
	}

	return &MinioDocumentStore{client: client, bucket: cfg.Bucket}, nil
}

func (s *MinioDocumentStore) Enabled() bool { return true }

func (s *MinioDocumentStore) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	if key == "" {
		return "", errors.New("empty object key")
	}
	info, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return info.Key, nil
}

func (s *MinioDocumentStore) Get(ctx context.Context, key string) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", key, err)
	}
	defer obj.Close()
	return io.ReadAll(obj)
}
