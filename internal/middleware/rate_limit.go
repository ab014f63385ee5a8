package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/speckit/speckit-backend/pkg/logger"
)

const (
	rateLimitPrefix  = "ratelimit:user:"
	rateLimitWindow  = time.Minute
	rateLimitTimeout = 200 * time.Millisecond
)

// RateLimitPerUser fixed one-minute window per user (client IP when anonymous).
// Redis 가 없거나 오류가 나면 요청을 통과시킨다.
func RateLimitPerUser(client *redis.Client, perMinute int) gin.HandlerFunc {
	return func(c *gin.Context) {
		if client == nil || perMinute <= 0 {
			c.Next()
			return
		}

		who := GetUserID(c)
		if who == "" {
			who = "ip:" + c.ClientIP()
		}
		window := time.Now().Truncate(rateLimitWindow).Unix()
		key := rateLimitPrefix + who + ":" + strconv.FormatInt(window, 10)

		ctx, cancel := context.WithTimeout(c.Request.Context(), rateLimitTimeout)
		defer cancel()

		var incr *redis.IntCmd
		_, err := client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			incr = pipe.Incr(ctx, key)
			pipe.Expire(ctx, key, rateLimitWindow+time.Second)
			return nil
		})
		if err != nil {
			logger.GetLogger().Warn().Err(err).Msg("rate limit check skipped")
			c.Next()
			return
		}

		count := int(incr.Val())
		remaining := perMinute - count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(perMinute))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if count > perMinute {
			c.Header("Retry-After", strconv.Itoa(int(time.Until(time.Unix(window, 0).Add(rateLimitWindow)).Seconds())+1))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"error":   gin.H{"code": "RATE_LIMITED", "message": "요청이 너무 많습니다. 잠시 후 다시 시도해주세요."},
			})
			return
		}
		c.Next()
	}
}
