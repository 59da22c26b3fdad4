package api

import (
	"context"  // Request context
	"errors"   // Error inspection
	"net/http" // HTTP status codes
	"strings"  // String manipulation

	"progress_tracker/internal/config" // Custom package for configuration
	"progress_tracker/internal/domain" // Importing domain models
	"progress_tracker/internal/store"  // Repository errors
	"progress_tracker/internal/utils"  // Utility functions

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logrus for structured logging
	"golang.org/x/crypto/bcrypt" // Password hashing
)

// bcryptCost is the work factor for password hashes
const bcryptCost = 10

// UserStore creates and looks up users
type UserStore interface {
	Create(ctx context.Context, u *domain.User) error
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}

// CredentialsRequest is the body of register and login
type CredentialsRequest struct {
	Email    string `json:"email" binding:"required,email"`    // Valid email address
	Password string `json:"password" binding:"required,min=6"` // At least 6 characters
}

// AuthResponse carries a signed token
type AuthResponse struct {
	Token string `json:"token"` // JWT token
}

// RegisterHandler creates an account and returns a token for it
func RegisterHandler(users UserStore, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CredentialsRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email must be valid and password at least 6 characters"})
			return
		}
		email := strings.ToLower(strings.TrimSpace(req.Email)) // Emails are unique case-insensitively
		// Hash the password
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}
		role := domain.RoleUser // Default role
		if cfg.IsAdminEmail(email) {
			role = domain.RoleAdmin // Configured administrators
		}
		user := domain.User{Email: email, Password: string(hash), Role: role}
		// Attempt to create the user in the database
		if err := users.Create(c.Request.Context(), &user); err != nil {
			if errors.Is(err, store.ErrEmailTaken) {
				c.JSON(http.StatusConflict, gin.H{"error": "Email already in use"})
				return
			}
			logrus.WithFields(logrus.Fields{
				"email": email,       // Requested email
				"error": err.Error(), // Error message
			}).Error("Failed to create user")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
			return
		}
		token, err := utils.GenerateJWT(user.ID, user.Email, cfg.JWTSecret, cfg.JWTTTL)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id": user.ID,   // New user ID
			"role":    user.Role, // Assigned role
		}).Info("User registered")
		c.JSON(http.StatusCreated, AuthResponse{Token: token})
	}
}

// LoginHandler authenticates a user and returns a JWT token
func LoginHandler(users UserStore, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CredentialsRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email must be valid and password at least 6 characters"})
			return
		}
		email := strings.ToLower(strings.TrimSpace(req.Email))
		user, err := users.FindByEmail(c.Request.Context(), email) // Fetch user from database
		if errors.Is(err, store.ErrUserNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		if err != nil {
			logrus.WithError(err).Error("Failed to load user for login")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user"})
			return
		}
		// Compare provided password with stored hash
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		token, err := utils.GenerateJWT(user.ID, user.Email, cfg.JWTSecret, cfg.JWTTTL)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}
		c.JSON(http.StatusOK, AuthResponse{Token: token}) // Return the token in the response
	}
}
