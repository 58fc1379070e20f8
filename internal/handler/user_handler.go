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

type UserHandler struct {
	service *services.UserService
	logger  *logger.Logger
}

func NewUserHandler(service *services.UserService, l *logger.Logger) *UserHandler {
	return &UserHandler{service: service, logger: l}
}

// Create handles POST /users: idempotent get-or-create by wallet address.
// 200 for an existing user, 201 when a row was inserted.
func (h *UserHandler) Create(c *gin.Context) {
	var req httpdto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("Wallet address is required", "INVALID_REQUEST"))
		return
	}

	u, created, err := h.service.GetOrCreate(c.Request.Context(), req.WalletAddress)
	if err != nil {
		if errors.Is(err, memories_errors.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("Wallet address is required", "INVALID_REQUEST"))
			return
		}
		if h.logger != nil {
			h.logger.Errorf("failed to create user: %s", err)
		}
		c.JSON(http.StatusInternalServerError, httpdto.NewErrorResponse("Failed to create user", "INTERNAL_ERROR"))
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, httpdto.UserResponse{User: u})
}

// Get handles GET /users?wallet_address=...
func (h *UserHandler) Get(c *gin.Context) {
	walletAddress := c.Query("wallet_address")
	if walletAddress == "" {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("Wallet address is required", "INVALID_REQUEST"))
		return
	}

	u, err := h.service.GetByWallet(c.Request.Context(), walletAddress)
	if err != nil {
		if errors.Is(err, memories_errors.ErrNotFound) {
			c.JSON(http.StatusNotFound, httpdto.NewErrorResponse("User not found", "NOT_FOUND"))
			return
		}
		if h.logger != nil {
			h.logger.Errorf("failed to fetch user: %s", err)
		}
		c.JSON(http.StatusInternalServerError, httpdto.NewErrorResponse("Failed to fetch user", "INTERNAL_ERROR"))
		return
	}

	c.JSON(http.StatusOK, httpdto.UserResponse{User: u})
}
