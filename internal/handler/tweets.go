package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/portfolioapp/tweet-service/internal/dto"
)

func (h *Handler) tweetsList(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	page, err := h.services.Tweet.List(c.Request.Context(), limit, offset)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

func (h *Handler) tweetsGetByID(c *gin.Context) {
	tweetID := strings.TrimSpace(c.Param("tweetID"))

	tweet, err := h.services.Tweet.FindByID(c.Request.Context(), tweetID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, tweet)
}

func (h *Handler) tweetsCreate(c *gin.Context) {
	var input dto.CreateTweetRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	if input.IsAdmin && !isAdminRequest(c) {
		c.JSON(http.StatusUnauthorized, dto.NewBasicResponse(false, errAdminRequired.Error()))
		return
	}

	created, err := h.services.Tweet.Create(c.Request.Context(), input)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, *created)
}

// tweetsUpdate serves both write shapes of the PUT path: a visitor appending
// a comment, or the admin filing an out-of-band reply.
func (h *Handler) tweetsUpdate(c *gin.Context) {
	tweetID := strings.TrimSpace(c.Param("tweetID"))

	var input dto.UpdateTweetRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	if input.IsAdminReply {
		if !isAdminRequest(c) {
			c.JSON(http.StatusUnauthorized, dto.NewBasicResponse(false, errAdminRequired.Error()))
			return
		}

		reply, err := h.services.Tweet.AddAdminReply(c.Request.Context(), tweetID, input)
		if err != nil {
			h.respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, *reply)
		return
	}

	payload := input.Comments[len(input.Comments)-1]
	tweet, err := h.services.Tweet.AddComment(c.Request.Context(), tweetID, payload)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, *tweet)
}

func (h *Handler) tweetsEdit(c *gin.Context) {
	tweetID := strings.TrimSpace(c.Param("tweetID"))

	var input dto.EditTweetRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	// the client's claim is irrelevant; only a verified token grants it
	input.IsAdmin = isAdminRequest(c)

	tweet, err := h.services.Tweet.Edit(c.Request.Context(), tweetID, input)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, *tweet)
}

func (h *Handler) tweetsDelete(c *gin.Context) {
	tweetID := strings.TrimSpace(c.Param("tweetID"))

	var input dto.DeleteTweetRequest
	_ = c.ShouldBindJSON(&input)

	if err := h.services.Tweet.Delete(c.Request.Context(), tweetID, isAdminRequest(c)); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewBasicResponse(true, ""))
}

func (h *Handler) tweetsLike(c *gin.Context) {
	h.like(c, false)
}

func (h *Handler) tweetsUnlike(c *gin.Context) {
	h.like(c, true)
}

func (h *Handler) like(c *gin.Context, unlike bool) {
	tweetID := strings.TrimSpace(c.Param("tweetID"))

	likes, err := h.services.Tweet.Like(c.Request.Context(), tweetID, unlike)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"likes": likes})
}
