package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimitPolicy is a fixed window budget for one route group. Groups with
// different scopes keep separate counters for the same client.
type RateLimitPolicy struct {
	Scope  string
	Limit  int
	Window time.Duration
}

func (p RateLimitPolicy) key(clientIP string) string {
	return fmt.Sprintf("rate_limit:%s:%s", p.Scope, clientIP)
}

// RateLimiter enforces policy per client IP. Redis failures let the
// request through.
func RateLimiter(rdb *redis.Client, policy RateLimitPolicy) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		key := policy.key(c.ClientIP())

		pipe := rdb.TxPipeline()
		incr := pipe.Incr(ctx, key)
		pttl := pipe.PTTL(ctx, key)
		if _, err := pipe.Exec(ctx); err != nil {
			log.Warn("rate limiter skipped", "scope", policy.Scope, "err", err)
			c.Next()
			return
		}

		count, ttl := incr.Val(), pttl.Val()
		if ttl < 0 {
			if err := rdb.Expire(ctx, key, policy.Window).Err(); err != nil {
				log.Warn("rate limiter expire failed", "key", key, "err", err)
			}
			ttl = policy.Window
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(policy.Limit))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(max(0, int64(policy.Limit)-count), 10))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(ttl).Unix(), 10))

		if count > int64(policy.Limit) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":      "too many requests",
				"scope":      policy.Scope,
				"retry_in_s": int(ttl.Seconds()),
			})
			return
		}

		c.Next()
	}
}
