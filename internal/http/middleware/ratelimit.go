// README: Per-client rate limiting for the chat endpoint.
package middleware

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"chichat/internal/modules/ratelimit"
)

// Limiter counts one request for a client key.
type Limiter interface {
	Allow(ctx context.Context, clientKey string) (ratelimit.Decision, error)
}

// RateLimit keys on the client IP. Limiter errors let the request through.
func RateLimit(limiter Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "ip:" + c.ClientIP()

		d, err := limiter.Allow(c.Request.Context(), key)
		if err != nil {
			log.Printf("ratelimit: check failed for %s: %v", key, err)
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(d.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(d.ResetAt.Unix(), 10))

		if !d.Allowed {
			retry := int(time.Until(d.ResetAt).Seconds() + 0.5)
			if retry < 1 {
				retry = 1
			}
			c.Header("Retry-After", strconv.Itoa(retry))
			log.Printf("ratelimit: blocked %s %s for %s", c.Request.Method, c.Request.URL.Path, key)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
		c.Next()
	}
}
