package http

import (
	"io"
	"net/http"
	"path/filepath"

	"github.com/gorilla/mux"

	"commonage-backend/internal/storage"
)

// DocumentUploadHandler serves the mock storage backend's presigned URLs.
// Never mounted when the firebase backend is configured.
type DocumentUploadHandler struct {
	mockStorage *storage.MockStorageService
}

func NewDocumentUploadHandler(mockStorage *storage.MockStorageService) *DocumentUploadHandler {
	return &DocumentUploadHandler{mockStorage: mockStorage}
}

var allowedUploadTypes = map[string]bool{
	"application/pdf": true,
	"image/jpeg":      true,
	"image/png":       true,
}

// HandleUpload accepts the PUT a client issues against a mock presigned URL.
func (h *DocumentUploadHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		http.Error(w, "Missing key parameter", http.StatusBadRequest)
		return
	}

	if !allowedUploadTypes[r.Header.Get("Content-Type")] {
		http.Error(w, "Invalid content type", http.StatusBadRequest)
		return
	}

	if err := h.mockStorage.SaveFile(key, r.Body); err != nil {
		http.Error(w, "Failed to save file", http.StatusInternalServerError)
		return
	}

	// Mimic a cloud storage response.
	w.Header().Set("ETag", `"mock-etag-success"`)
	w.WriteHeader(http.StatusOK)
}

func (h *DocumentUploadHandler) HandleDownload(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	if key == "" {
		http.Error(w, "Missing key", http.StatusBadRequest)
		return
	}

	file, err := h.mockStorage.ReadFile(key)
	if err != nil {
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}
	defer file.Close()

	contentType := "application/octet-stream"
	switch filepath.Ext(key) {
	case ".pdf":
		contentType = "application/pdf"
	case ".jpg", ".jpeg":
		contentType = "image/jpeg"
	case ".png":
		contentType = "image/png"
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "private, max-age=3600")
	io.Copy(w, file)
}
