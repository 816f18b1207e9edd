package handler

import (
	"errors"
	"fmt"
	"net/http"
	"path"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dtroode/escolas-server/internal/logger"
	"github.com/dtroode/escolas-server/internal/model"
)

const uploadPrefix = "uploads/"

// Uploads stores multipart files in object storage.
type Uploads struct {
	storage model.Storage
	logger  *logger.Logger
}

func NewUploads(storage model.Storage, logger *logger.Logger) *Uploads {
	return &Uploads{
		storage: storage,
		logger:  logger.With("controller", "uploads"),
	}
}

func (h *Uploads) Name() string {
	return "uploads"
}

func (h *Uploads) Routes() []Route {
	return []Route{
		{Name: "create", Method: http.MethodPost, Handler: h.Create},
		{Name: "get", Method: http.MethodGet, Handler: h.Get},
		{Name: "delete", Method: http.MethodDelete, Handler: h.Delete},
	}
}

// Create stores the "file" form part under a fresh key.
func (h *Uploads) Create(c *gin.Context) error {
	log := h.logger.With("endpoint", "create")

	header, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return NewError(http.StatusRequestEntityTooLarge, msgBodyTooLarge, err)
		}
		log.Error("Missing file", "error", err)
		return badRequest("Missing file")
	}

	file, err := header.Open()
	if err != nil {
		return internal("Error uploading file", fmt.Errorf("failed to open form file: %w", err))
	}
	defer file.Close()

	upload := model.Upload{
		Key:         uploadPrefix + uuid.NewString() + "/" + path.Base(header.Filename),
		Filename:    header.Filename,
		Size:        header.Size,
		ContentType: header.Header.Get("Content-Type"),
	}

	err = h.storage.Upload(c.Request.Context(), upload.Key, file, upload.Size, upload.ContentType)
	if err != nil {
		return internal("Error uploading file", err)
	}

	log.Info("File uploaded", "key", upload.Key, "size", upload.Size)
	c.JSON(http.StatusOK, upload)
	return nil
}

// Get streams the object named by the key query parameter.
func (h *Uploads) Get(c *gin.Context) error {
	key := c.Query("key")
	if key == "" {
		return badRequest("Missing key")
	}

	reader, err := h.storage.Download(c.Request.Context(), key)
	if errors.Is(err, model.ErrNotFound) {
		return notFound("File not found")
	}
	if err != nil {
		return internal("Error downloading file", err)
	}
	defer reader.Close()

	c.DataFromReader(http.StatusOK, -1, "application/octet-stream", reader, map[string]string{
		"Content-Disposition": fmt.Sprintf("attachment; filename=%q", path.Base(key)),
	})
	return nil
}

// Delete removes the object named by the key query parameter.
func (h *Uploads) Delete(c *gin.Context) error {
	key := c.Query("key")
	if key == "" {
		return badRequest("Missing key")
	}

	if err := h.storage.Delete(c.Request.Context(), key); err != nil {
		return internal("Error deleting file", err)
	}

	h.logger.Info("File deleted", "endpoint", "delete", "key", key)
	c.JSON(http.StatusOK, gin.H{"key": key, "deleted": true})
	return nil
}
