package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const rateLimitPrefix = "ratelimit:"

// rateLimitKey buckets authenticated requests by token subject and everything
// else (login, health) by client IP.
func rateLimitKey(c *gin.Context) string {
	if subject, ok := GetSubject(c); ok && subject != "" {
		return rateLimitPrefix + "sub:" + subject
	}
	return rateLimitPrefix + "ip:" + c.ClientIP()
}

// retryAfter is the time left in the current window. A key without an expiry
// (ttl < 0) or a failed TTL lookup counts as a full window.
func retryAfter(ttl, window time.Duration) time.Duration {
	if ttl < 0 || ttl > window {
		return window
	}
	return ttl
}

// RateLimiterMiddleware allows limit requests per bucket in each fixed window.
// Redis failures let the request through.
func RateLimiterMiddleware(rdb *redis.Client, limit int, window time.Duration, log *zap.Logger) gin.HandlerFunc {
	if log == nil {
		log = zap.NewNop()
	}

	return func(c *gin.Context) {
		ctx := c.Request.Context()
		key := rateLimitKey(c)

		pipe := rdb.TxPipeline()
		incr := pipe.Incr(ctx, key)
		pttl := pipe.PTTL(ctx, key)
		if _, err := pipe.Exec(ctx); err != nil {
			log.Warn("rate limiter unavailable", zap.String("key", key), zap.Error(err))
			c.Next()
			return
		}

		count := incr.Val()
		ttl := pttl.Val()
		if ttl < 0 {
			// First hit in the window, or a key left behind without expiry.
			if err := rdb.PExpire(ctx, key, window).Err(); err != nil {
				log.Warn("rate limiter expiry not set", zap.String("key", key), zap.Error(err))
			}
		}
		wait := retryAfter(ttl, window)

		remaining := int64(limit) - count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(wait).Unix(), 10))

		if count > int64(limit) {
			seconds := int(wait.Round(time.Second).Seconds())
			c.Header("Retry-After", strconv.Itoa(seconds))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "rate limit exceeded",
				"retry_after": seconds,
			})
			return
		}

		c.Next()
	}
}
