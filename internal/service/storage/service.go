package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"feedback-backend/internal/config"
)

// Service stores uploaded files (feedback attachments, profile pictures) in
// object storage and hands back the storage path plus a public URL.
type Service interface {
	Upload(ctx context.Context, prefix, fileName, mimeType string, fileSize int64, reader io.Reader) (string, error)
	Remove(ctx context.Context, storagePath string) error
	PublicURL(storagePath string) string
}

type service struct {
	client *minio.Client
	cfg    *config.Config
}

func NewService(client *minio.Client, cfg *config.Config) Service {
	return &service{client: client, cfg: cfg}
}

func (s *service) Upload(ctx context.Context, prefix, fileName, mimeType string, fileSize int64, reader io.Reader) (string, error) {
	storagePath := fmt.Sprintf("%s/%s/%s", prefix, time.Now().Format("2006/01"), uuid.New().String())

	_, err := s.client.PutObject(ctx, s.cfg.MinIOBucket, storagePath, reader, fileSize, minio.PutObjectOptions{
		ContentType: mimeType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to MinIO: %w", err)
	}

	return storagePath, nil
}

func (s *service) Remove(ctx context.Context, storagePath string) error {
	return s.client.RemoveObject(ctx, s.cfg.MinIOBucket, storagePath, minio.RemoveObjectOptions{})
}

func (s *service) PublicURL(storagePath string) string {
	scheme := "http"
	if s.cfg.MinIOPublicUseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.cfg.MinIOPublicEndpoint, s.cfg.MinIOBucket, url.PathEscape(storagePath))
}
