package handler

import (
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/portfolioapp/tweet-service/pkg/utils"
)

const adminCtxKey = "is-admin"

// adminDetectMiddleware never rejects: it only records whether the request
// carries a valid admin token. Handlers that need admin privileges check the
// flag themselves, because most routes serve both anonymous visitors and the
// admin.
func (h *Handler) adminDetectMiddleware(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		c.Next()
		return
	}

	accessToken := strings.TrimPrefix(header, "Bearer ")
	if accessToken == "" {
		c.Next()
		return
	}

	claims, err := utils.DecodeJWT(accessToken, []byte(os.Getenv("ACCESS_SECRET")))
	if err != nil {
		c.Next()
		return
	}

	role, _ := claims["role"].(string)
	if strings.ToLower(role) == "admin" {
		c.Set(adminCtxKey, true)
	}

	c.Next()
}
