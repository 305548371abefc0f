package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// MockStorageService implements document storage on the local filesystem,
// for development and tests without a cloud bucket.
type MockStorageService struct {
	baseURL      string // Server URL (e.g., "http://localhost:8080")
	uploadsDir   string // Local directory for uploads
	documentsDir string // Subdirectory for documents
}

func NewMockStorageService(baseURL, uploadsDir string) (*MockStorageService, error) {
	documentsDir := filepath.Join(uploadsDir, "documents")

	if err := os.MkdirAll(documentsDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create documents directory: %w", err)
	}

	return &MockStorageService{
		baseURL:      baseURL,
		uploadsDir:   uploadsDir,
		documentsDir: documentsDir,
	}, nil
}

// GeneratePresignedUploadURL returns a mock upload URL pointing at the
// server's upload handler. The key travels in the query so the handler knows
// where to save.
func (m *MockStorageService) GeneratePresignedUploadURL(ctx context.Context, key string, contentType string, expiresIn time.Duration) (string, error) {
	uploadToken := uuid.New().String()
	return fmt.Sprintf("%s/api/v1/upload/%s?key=%s", m.baseURL, uploadToken, url.QueryEscape(key)), nil
}

// GeneratePresignedDownloadURL keeps the key's slashes intact; the download
// route matches the rest of the path as the key.
func (m *MockStorageService) GeneratePresignedDownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, error) {
	return fmt.Sprintf("%s/api/v1/download/%s", m.baseURL, key), nil
}

func (m *MockStorageService) FileExists(ctx context.Context, key string) (bool, int64, error) {
	info, err := os.Stat(filepath.Join(m.documentsDir, filepath.FromSlash(key)))
	if err != nil {
		if os.IsNotExist(err) {
			return false, 0, nil
		}
		return false, 0, err
	}
	return true, info.Size(), nil
}

func (m *MockStorageService) DeleteFile(ctx context.Context, key string) error {
	err := os.Remove(filepath.Join(m.documentsDir, filepath.FromSlash(key)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

func (m *MockStorageService) ListKeys(ctx context.Context) ([]string, error) {
	var keys []string
	err := filepath.Walk(m.documentsDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(m.documentsDir, path)
		if err != nil {
			return err
		}
		keys = append(keys, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return keys, nil
}

func (m *MockStorageService) SaveFile(key string, reader io.Reader) error {
	fullPath := filepath.Join(m.documentsDir, filepath.FromSlash(key))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return fmt.Errorf("failed to create directories: %w", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, reader); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

func (m *MockStorageService) ReadFile(key string) (io.ReadCloser, error) {
	return os.Open(filepath.Join(m.documentsDir, filepath.FromSlash(key)))
}
