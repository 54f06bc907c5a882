package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) moderationSweep(c *gin.Context) {
	result, err := h.services.Moderation.Sweep(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handler) moderationStatus(c *gin.Context) {
	status, err := h.services.Moderation.Status(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, status)
}
