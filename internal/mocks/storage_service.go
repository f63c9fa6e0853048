package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"
)

type StorageService struct {
	mock.Mock
}

func (m *StorageService) Upload(ctx context.Context, prefix, fileName, mimeType string, fileSize int64, reader io.Reader) (string, error) {
	args := m.Called(ctx, prefix, fileName, mimeType, fileSize, reader)
	return args.String(0), args.Error(1)
}

func (m *StorageService) Remove(ctx context.Context, storagePath string) error {
	args := m.Called(ctx, storagePath)
	return args.Error(0)
}

func (m *StorageService) PublicURL(storagePath string) string {
	args := m.Called(storagePath)
	return args.String(0)
}
