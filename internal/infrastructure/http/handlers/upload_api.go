package handlers

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/smartrecipe/server/internal/infrastructure/config"
)

// UploadAPIHandlers stores uploaded media files under the local media root.
type UploadAPIHandlers struct {
	storage config.StorageConfig
	logger  *zap.Logger
}

// NewUploadAPIHandlers creates the upload handler.
func NewUploadAPIHandlers(cfg *config.Config, logger *zap.Logger) *UploadAPIHandlers {
	return &UploadAPIHandlers{
		storage: cfg.Storage,
		logger:  logger,
	}
}

// Upload handles POST /api/upload/. Files are renamed to a uuid hex keeping
// the original extension and served back as an absolute URL.
func (h *UploadAPIHandlers) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.storage.MaxFileSize); err != nil {
		writeBadRequest(w, h.logger, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeBadRequest(w, h.logger, "file is required")
		return
	}
	defer file.Close()

	if header.Size > h.storage.MaxFileSize {
		writeBadRequest(w, h.logger, fmt.Sprintf("File exceeds the %d byte limit", h.storage.MaxFileSize))
		return
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !h.allowedExtension(ext) {
		writeBadRequest(w, h.logger, fmt.Sprintf("File type %s is not allowed", ext))
		return
	}

	if err := os.MkdirAll(h.storage.LocalPath, 0o755); err != nil {
		h.logger.Error("Failed to create media directory", zap.Error(err))
		writeError(w, h.logger, err)
		return
	}

	name := strings.ReplaceAll(uuid.New().String(), "-", "") + ext
	path := filepath.Join(h.storage.LocalPath, name)

	dst, err := os.Create(path)
	if err != nil {
		h.logger.Error("Failed to create media file", zap.String("path", path), zap.Error(err))
		writeError(w, h.logger, err)
		return
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		h.logger.Error("Failed to write media file", zap.String("path", path), zap.Error(err))
		writeError(w, h.logger, err)
		return
	}

	mediaURL := strings.TrimRight(h.storage.MediaURL, "/") + "/" + name
	absolute := fmt.Sprintf("%s://%s%s", requestScheme(r), r.Host, mediaURL)

	h.logger.Info("File uploaded",
		zap.String("name", name),
		zap.String("original", header.Filename),
		zap.Int64("size", header.Size),
	)
	writeCreated(w, h.logger, map[string]interface{}{
		"name": name,
		"url":  absolute,
		"size": header.Size,
	})
}

func (h *UploadAPIHandlers) allowedExtension(ext string) bool {
	if ext == "" {
		return false
	}
	for _, allowed := range h.storage.AllowedTypes {
		if ext == strings.ToLower(allowed) {
			return true
		}
	}
	return false
}
