package storage

import (
	"context"
	"io"
	"time"
)

// Interface abstracts the document blob store. Metadata rows in postgres are
// authoritative; the blob store is best-effort on deletion.
type Interface interface {
	// GeneratePresignedUploadURL generates a presigned URL for uploading
	GeneratePresignedUploadURL(ctx context.Context, key string, contentType string, expiresIn time.Duration) (string, error)

	// GeneratePresignedDownloadURL generates a presigned URL for downloading
	GeneratePresignedDownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, error)

	// FileExists checks if a blob exists and returns its size
	FileExists(ctx context.Context, key string) (exists bool, size int64, err error)

	// DeleteFile removes a blob from storage
	DeleteFile(ctx context.Context, key string) error

	// ListKeys returns every stored object key; used by the abandoned-upload sweep
	ListKeys(ctx context.Context) ([]string, error)

	// SaveFile saves a blob (used by the mock storage HTTP handler)
	SaveFile(key string, reader io.Reader) error

	// ReadFile opens a blob for reading (used by the mock storage HTTP handler)
	ReadFile(key string) (io.ReadCloser, error)
}
