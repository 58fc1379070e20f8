package handler

import (
	"fmt"
	"net/http"
	"time"

	"memories-chain/internal/domain/memory"
	"memories-chain/internal/domain/user"
	"memories-chain/internal/repository"
	"memories-chain/pkg/logger"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// DiagHandler probes the persisted schema. This is the only endpoint that
// puts error detail in the response body.
type DiagHandler struct {
	db     *gorm.DB
	users  repository.UserRepository
	logger *logger.Logger
}

func NewDiagHandler(db *gorm.DB, users repository.UserRepository, l *logger.Logger) *DiagHandler {
	return &DiagHandler{db: db, users: users, logger: l}
}

// Check handles GET /diag/db: verifies each table answers a trivial query and
// that a throwaway user row can be inserted and removed.
func (h *DiagHandler) Check(c *gin.Context) {
	ctx := c.Request.Context()

	tables := map[string]any{
		"users":        &[]user.User{},
		"memory_forms": &[]memory.MemoryForm{},
		"form_owners":  &[]memory.FormOwner{},
		"photos":       &[]memory.Photo{},
	}

	status := make(map[string]bool, len(tables))
	for name, dest := range tables {
		err := h.db.WithContext(ctx).Limit(1).Find(dest).Error
		status[name] = err == nil
		if err != nil && h.logger != nil {
			h.logger.Errorf("diag: table %s probe failed: %s", name, err)
		}
	}

	if !status["users"] {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":      "users table missing or unreadable",
			"tables":     status,
			"suggestion": "run cmd/migrate against this database",
		})
		return
	}

	testWallet := fmt.Sprintf("test_%d", time.Now().UnixNano())
	testUser := user.User{WalletAddress: testWallet}
	if err := h.users.Create(ctx, &testUser); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":      "cannot insert user",
			"details":    err.Error(),
			"tables":     status,
			"suggestion": "check table permissions",
		})
		return
	}
	if err := h.users.DeleteByWallet(ctx, testWallet); err != nil && h.logger != nil {
		h.logger.Errorf("diag: failed to remove probe user %s: %s", testWallet, err)
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "All tests passed!",
		"tables":     status,
		"insertTest": "SUCCESS",
	})
}
