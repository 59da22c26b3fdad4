package middleware

import (
	"net/http" // HTTP status codes
	"strings"  // String manipulation

	"progress_tracker/internal/utils" // JWT utility functions

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logrus for structured logging
)

// UserIDKey is the gin context key holding the authenticated user ID
const UserIDKey = "userID"

// JWTAuthMiddleware validates bearer tokens and stores the token subject as the user ID
func JWTAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization") // Get Authorization header
		// Check if the Authorization header is present and properly formatted
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			// If not, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing token"})
			return
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ") // Extract the token string
		claims, err := utils.ParseJWT(tokenStr, secret)       // Parse the JWT token
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"path":  c.FullPath(), // Requested route
				"error": err.Error(),  // Parse failure
			}).Debug("Rejected token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}
		c.Set(UserIDKey, claims.Subject) // Store userID in context
		c.Next()                         // Proceed to the next handler
	}
}

// UserID returns the authenticated user ID stored by JWTAuthMiddleware
func UserID(c *gin.Context) (string, bool) {
	id := c.GetString(UserIDKey)
	return id, id != ""
}
