package middleware

import (
	"context"
	"net/http"
	"strings"

	"memories-chain/internal/services"
	"memories-chain/internal/transport/httpdto"
	"memories-chain/pkg/logger"

	"github.com/gin-gonic/gin"
)

// OptionalAuthMiddleware verifies a bearer token when one is presented and
// attaches the verified account to the request context. Requests without a
// token pass through; a token that fails verification is rejected.
func OptionalAuthMiddleware(service *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractBearer(c)
		if token == "" {
			c.Next()
			return
		}

		identity, err := service.Verify(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
			c.Abort()
			return
		}

		ctx := services.WithAccountContext(c.Request.Context(), identity)
		ctx = context.WithValue(ctx, logger.AccountIdKey, identity.AccountID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func extractBearer(c *gin.Context) string {
	value := c.GetHeader("Authorization")
	parts := strings.SplitN(value, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
