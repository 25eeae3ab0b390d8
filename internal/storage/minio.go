package storage

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"focusportal/internal/config"
)

// MinioStore implements BlobStore on a MinIO (or any S3-compatible)
// endpoint.
type MinioStore struct {
	client *minio.Client
	bucket string
	secure bool
	logger *slog.Logger
}

// NewMinioStore connects to the configured endpoint and ensures the
// bucket exists.
func NewMinioStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*MinioStore, error) {
	client, err := minio.New(cfg.BlobEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.BlobAccessKey, cfg.BlobSecretKey, ""),
		Secure: cfg.BlobSecure,
	})
	if err != nil {
		return nil, fmt.Errorf("create blob client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.BlobBucket)
	if err != nil {
		return nil, fmt.Errorf("check blob bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.BlobBucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create blob bucket: %w", err)
		}
	}

	logger.Info("blob storage connected", "endpoint", cfg.BlobEndpoint, "bucket", cfg.BlobBucket)

	return &MinioStore{
		client: client,
		bucket: cfg.BlobBucket,
		secure: cfg.BlobSecure,
		logger: logger,
	}, nil
}

// Store uploads the object at localPath under a fresh object key.
func (s *MinioStore) Store(ctx context.Context, localPath string) (*StoredObject, error) {
	objectName := uuid.NewString() + filepath.Ext(localPath)

	info, err := s.client.FPutObject(ctx, s.bucket, objectName, localPath, minio.PutObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("store blob: %w", err)
	}

	scheme := "http"
	if s.secure {
		scheme = "https"
	}

	s.logger.Debug("blob stored", "object", objectName, "size", info.Size)

	return &StoredObject{
		URL:      fmt.Sprintf("%s://%s/%s/%s", scheme, s.client.EndpointURL().Host, s.bucket, objectName),
		RemoteID: objectName,
	}, nil
}

// Delete releases the remote object.
func (s *MinioStore) Delete(ctx context.Context, remoteID string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, remoteID, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("delete blob %s: %w", remoteID, err)
	}
	return nil
}
