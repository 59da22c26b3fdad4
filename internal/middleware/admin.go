package middleware

import (
	"context"  // Request context
	"net/http" // HTTP status codes

	"progress_tracker/internal/domain" // Importing domain models

	"github.com/gin-gonic/gin" // Gin web framework
)

// UserFinder loads a user by ID
type UserFinder interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
}

// AdminOnlyMiddleware checks the user's role from the database on each request
func AdminOnlyMiddleware(users UserFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := UserID(c) // Get userID from context
		// Check if userID exists in context
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		user, err := users.FindByID(c.Request.Context(), userID) // Fetch user from database
		if err != nil || user.Role != domain.RoleAdmin {
			// Unknown user or not an admin
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		c.Next() // If admin, proceed to the next handler
	}
}
