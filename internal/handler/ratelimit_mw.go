package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/portfolioapp/tweet-service/internal/dto"
	"github.com/portfolioapp/tweet-service/internal/repository/redisrepo"
	"github.com/spf13/viper"
)

func rateLimitMax() int64 {
	if n := viper.GetInt64("rate.limit"); n > 0 {
		return n
	}
	return 10
}

func rateLimitWindow() time.Duration {
	if d := viper.GetDuration("rate.window"); d > 0 {
		return d
	}
	return time.Minute
}

// rateLimit is a fixed-window counter in Redis, one window per scope and
// client IP. Redis trouble fails open: a throttling outage should not take
// the write path down with it.
func (h *Handler) rateLimit(scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		key := redisrepo.RateLimitKey(scope, c.ClientIP())

		count, err := h.cache.Incr(ctx, key).Result()
		if err != nil {
			c.Next()
			return
		}
		if count == 1 {
			h.cache.Expire(ctx, key, rateLimitWindow())
		}

		if count > rateLimitMax() {
			retryAfter := rateLimitWindow()
			if ttl, err := h.cache.TTL(ctx, key).Result(); err == nil && ttl > 0 {
				retryAfter = ttl
			}
			c.Header("Retry-After", strconv.Itoa(int(retryAfter.Seconds()+0.5)))
			c.JSON(http.StatusTooManyRequests, dto.NewBasicResponse(false, errRateLimited.Error()))
			c.Abort()
			return
		}

		c.Next()
	}
}
