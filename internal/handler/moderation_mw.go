package handler

import (
	"crypto/subtle"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/portfolioapp/tweet-service/internal/dto"
)

// moderationKeyMiddleware gates the sweep endpoints behind a shared secret,
// supplied either as a header or a query parameter (the latter for cron
// services that cannot set headers).
func (h *Handler) moderationKeyMiddleware(c *gin.Context) {
	secret := os.Getenv("MODERATION_SECRET")
	if secret == "" {
		c.JSON(http.StatusInternalServerError, dto.NewBasicResponse(false, "moderation is not configured"))
		c.Abort()
		return
	}

	key := c.GetHeader("X-Moderation-Key")
	if key == "" {
		key = c.Query("key")
	}

	if subtle.ConstantTimeCompare([]byte(key), []byte(secret)) != 1 {
		c.JSON(http.StatusUnauthorized, dto.NewBasicResponse(false, errNotAuthorized.Error()))
		c.Abort()
		return
	}

	c.Next()
}
