package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/portfolioapp/tweet-service/internal/dto"
)

func (h *Handler) newsletterSubscribe(c *gin.Context) {
	var input dto.SubscribeRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	if err := h.services.Newsletter.Subscribe(c.Request.Context(), input.Email); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewBasicResponse(true, "subscribed"))
}

func (h *Handler) newsletterUnsubscribe(c *gin.Context) {
	var input dto.SubscribeRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	if err := h.services.Newsletter.Unsubscribe(c.Request.Context(), input.Email); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewBasicResponse(true, "unsubscribed"))
}
