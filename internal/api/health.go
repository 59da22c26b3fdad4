package api

import (
	"net/http" // HTTP status codes
	"time"     // Current time

	"github.com/gin-gonic/gin" // Gin web framework
)

// HealthHandler reports that the API is up
func HealthHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "time": time.Now().UTC().Format(time.RFC3339Nano)})
	}
}
