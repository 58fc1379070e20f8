package services

import (
	"context"
	"fmt"
	"io"

	"memories-chain/internal/storage"
	memories_errors "memories-chain/pkg/errors"
	"memories-chain/pkg/logger"
)

// UploadService delegates file persistence to the configured
// content-addressed storage provider. Nothing is kept locally; the CID is the
// durable handle and the gateway URL is derived from it.
type UploadService struct {
	provider storage.Provider
	logger   *logger.Logger
}

type UploadResult struct {
	URL      string
	CID      string
	FileName string
	FileSize int64
	MimeType string
}

func NewUploadService(provider storage.Provider, l *logger.Logger) *UploadService {
	return &UploadService{provider: provider, logger: l}
}

func (s *UploadService) Ingest(ctx context.Context, fileName, contentType string, body io.Reader, size int64) (UploadResult, error) {
	if body == nil || size <= 0 {
		return UploadResult{}, memories_errors.ErrInvalidInput
	}

	pinned, err := s.provider.Pin(ctx, fileName, contentType, body, size)
	if err != nil {
		return UploadResult{}, fmt.Errorf("%w: %s", memories_errors.ErrNotUploaded, err)
	}

	fileSize := pinned.Size
	if fileSize == 0 {
		fileSize = size
	}

	return UploadResult{
		URL:      s.provider.ResolveURL(pinned.CID),
		CID:      pinned.CID,
		FileName: fileName,
		FileSize: fileSize,
		MimeType: contentType,
	}, nil
}
