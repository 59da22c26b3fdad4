package middleware

import (
	"context" // Deadline propagation
	"time"    // Durations

	"github.com/gin-gonic/gin" // Gin web framework
)

// TimeoutMiddleware bounds the request context so storage and cache calls give up after d
func TimeoutMiddleware(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()
		c.Request = c.Request.WithContext(ctx) // Handlers read c.Request.Context()
		c.Next()
	}
}
