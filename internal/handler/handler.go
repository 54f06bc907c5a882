package handler

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/portfolioapp/tweet-service/internal/dto"
	"github.com/portfolioapp/tweet-service/internal/moderation"
	"github.com/portfolioapp/tweet-service/internal/repository/redisrepo"
	"github.com/portfolioapp/tweet-service/internal/service"
	"github.com/spf13/viper"
)

type Handler struct {
	services *service.Service
	cache    redisrepo.Default
}

func New(services *service.Service, cache redisrepo.Default) *Handler {
	return &Handler{
		services: services,
		cache:    cache,
	}
}

func (h *Handler) InitRoutes() *gin.Engine {
	r := gin.New()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{viper.GetString("client.origin")},
		AllowMethods:     []string{"POST", "GET", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Moderation-Key"},
		AllowCredentials: true,
	}))

	v1 := r.Group("/api/v1")
	{
		tweets := v1.Group("/tweets")
		{
			tweets.GET("", h.tweetsList)
			tweets.POST("", h.rateLimit("create"), h.adminDetectMiddleware, h.tweetsCreate)

			tweet := tweets.Group("/:tweetID")
			{
				tweet.GET("", h.tweetsGetByID)
				tweet.PUT("", h.rateLimit("comment"), h.adminDetectMiddleware, h.tweetsUpdate)
				tweet.PATCH("", h.rateLimit("edit"), h.adminDetectMiddleware, h.tweetsEdit)
				tweet.DELETE("", h.adminDetectMiddleware, h.tweetsDelete)
				tweet.POST("/like", h.rateLimit("like"), h.tweetsLike)
				tweet.DELETE("/unlike", h.rateLimit("like"), h.tweetsUnlike)
			}
		}

		mod := v1.Group("/moderation", h.moderationKeyMiddleware)
		{
			mod.GET("", h.moderationStatus)
			mod.POST("", h.moderationSweep)
		}
		v1.POST("/auto-moderate", h.moderationKeyMiddleware, h.moderationSweep)

		newsletter := v1.Group("/newsletter")
		{
			newsletter.POST("/subscribe", h.rateLimit("newsletter"), h.newsletterSubscribe)
			newsletter.POST("/unsubscribe", h.rateLimit("newsletter"), h.newsletterUnsubscribe)
		}
	}

	return r
}

// respondError maps service and gate errors onto the HTTP surface.
// Validation reasons go to the client verbatim; anything unexpected
// collapses to a generic 500, with the detail already logged server-side.
func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, moderation.ErrEmptyContent),
		errors.Is(err, moderation.ErrTooLong),
		errors.Is(err, moderation.ErrSpamHeuristic),
		errors.Is(err, moderation.ErrProhibitedWord),
		errors.Is(err, service.ErrInvalidEmail),
		errors.Is(err, service.ErrEditWindowExpired):
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
	case errors.Is(err, service.ErrTweetNotFound),
		errors.Is(err, service.ErrNotSubscribed):
		c.JSON(http.StatusNotFound, dto.NewBasicResponse(false, err.Error()))
	case errors.Is(err, service.ErrNotOwner):
		c.JSON(http.StatusForbidden, dto.NewBasicResponse(false, err.Error()))
	default:
		c.JSON(http.StatusInternalServerError, dto.NewBasicResponse(false, service.ErrInternal.Error()))
	}
}

func isAdminRequest(c *gin.Context) bool {
	return c.GetBool(adminCtxKey)
}
