package handler

import (
	"errors"
	"net/http"

	"memories-chain/internal/services"
	"memories-chain/internal/transport/httpdto"
	memories_errors "memories-chain/pkg/errors"
	"memories-chain/pkg/logger"

	"github.com/gin-gonic/gin"
)

type UploadHandler struct {
	service *services.UploadService
	logger  *logger.Logger
}

func NewUploadHandler(service *services.UploadService, l *logger.Logger) *UploadHandler {
	return &UploadHandler{service: service, logger: l}
}

// Create handles POST /files: pins the multipart "file" field with the
// storage provider and returns the CID plus gateway URL.
func (h *UploadHandler) Create(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("No file provided", "INVALID_REQUEST"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		if h.logger != nil {
			h.logger.Errorf("failed to open uploaded file: %s", err)
		}
		c.JSON(http.StatusInternalServerError, httpdto.NewErrorResponse("Failed to upload file", "INTERNAL_ERROR"))
		return
	}
	defer file.Close()

	result, err := h.service.Ingest(
		c.Request.Context(),
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		file,
		fileHeader.Size,
	)
	if err != nil {
		if errors.Is(err, memories_errors.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("No file provided", "INVALID_REQUEST"))
			return
		}
		if h.logger != nil {
			h.logger.Errorf("failed to pin file %q: %s", fileHeader.Filename, err)
		}
		c.JSON(http.StatusInternalServerError, httpdto.NewErrorResponse("Failed to upload file", "UPLOAD_FAILED"))
		return
	}

	c.JSON(http.StatusOK, httpdto.UploadResponse{
		URL:      result.URL,
		CID:      result.CID,
		FileName: result.FileName,
		FileSize: result.FileSize,
		MimeType: result.MimeType,
	})
}
