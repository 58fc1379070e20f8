package handler

import (
	"errors"
	"net/http"

	"memories-chain/internal/domain/memory"
	"memories-chain/internal/services"
	"memories-chain/internal/transport/httpdto"
	memories_errors "memories-chain/pkg/errors"
	"memories-chain/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type MemoryHandler struct {
	service *services.MemoryService
	logger  *logger.Logger
}

func NewMemoryHandler(service *services.MemoryService, l *logger.Logger) *MemoryHandler {
	return &MemoryHandler{service: service, logger: l}
}

// Create handles POST /memory-forms. Owners and photos are best effort; only
// a failed form insert fails the request.
func (h *MemoryHandler) Create(c *gin.Context) {
	var req httpdto.CreateMemoryFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("Title and created_by are required", "INVALID_REQUEST"))
		return
	}

	if req.Title == "" || req.CreatedBy == "" {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("Title and created_by are required", "INVALID_REQUEST"))
		return
	}
	createdBy, err := uuid.Parse(req.CreatedBy)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("Title and created_by are required", "INVALID_REQUEST"))
		return
	}

	in := services.CreateMemoryInput{
		Title:       req.Title,
		Description: req.Description,
		CreatedBy:   createdBy,
		Owners:      req.Owners,
	}
	for _, p := range req.Photos {
		in.Photos = append(in.Photos, services.PhotoInput{
			URL:      p.URL,
			CID:      p.CID,
			FileName: p.FileName,
			FileSize: p.FileSize,
			MimeType: p.MimeType,
		})
	}

	result, err := h.service.Create(c.Request.Context(), in)
	if err != nil {
		if errors.Is(err, memories_errors.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("Title and created_by are required", "INVALID_REQUEST"))
			return
		}
		if h.logger != nil {
			h.logger.Errorf("failed to create memory form: %s", err)
		}
		c.JSON(http.StatusInternalServerError, httpdto.NewErrorResponse("Failed to create memory form", "INTERNAL_ERROR"))
		return
	}

	c.JSON(http.StatusCreated, httpdto.CreateMemoryFormResponse{
		Form:          result.Form,
		OwnersWritten: result.OwnersWritten,
		PhotosWritten: result.PhotosWritten,
	})
}

// List handles GET /memory-forms. created_by takes precedence over
// wallet_address; with neither, every form is returned.
func (h *MemoryHandler) List(c *gin.Context) {
	var filter services.ListMemoriesFilter

	if createdBy := c.Query("created_by"); createdBy != "" {
		id, err := uuid.Parse(createdBy)
		if err != nil {
			c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid created_by", "INVALID_REQUEST"))
			return
		}
		filter.CreatedBy = id
	} else {
		filter.WalletAddress = c.Query("wallet_address")
	}

	forms, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		if h.logger != nil {
			h.logger.Errorf("failed to fetch memory forms: %s", err)
		}
		c.JSON(http.StatusInternalServerError, httpdto.NewErrorResponse("Failed to fetch memory forms", "INTERNAL_ERROR"))
		return
	}

	if forms == nil {
		forms = []memory.MemoryForm{}
	}
	c.JSON(http.StatusOK, httpdto.ListMemoryFormsResponse{Forms: forms})
}
