package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/aura-blueprint/aura/internal/blueprint/domain"
)

// RateLimit rejects requests beyond the shared token bucket with the same
// 429 body the analysis endpoint uses for upstream rate limits. A nil limiter
// disables the check.
func RateLimit(limiter *rate.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil || c.Request.Method == http.MethodOptions || limiter.Allow() {
			c.Next()
			return
		}
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
			"error": domain.DefaultMessage(domain.KindRateLimited),
			"kind":  domain.KindRateLimited,
		})
	}
}

// NewLimiter builds a limiter from requests per second and burst; rps <= 0
// disables limiting.
func NewLimiter(rps float64, burst int) *rate.Limiter {
	if rps <= 0 {
		return nil
	}
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(rps), burst)
}
