// Package api exposes the HTTP endpoints of the progress tracker.
package api

import (
	"context" // Request context

	"progress_tracker/internal/config"     // Custom package for configuration
	"progress_tracker/internal/domain"     // Importing domain models
	"progress_tracker/internal/middleware" // Custom package for middleware
	"progress_tracker/internal/progress"   // Progress orchestration

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
)

// Users is everything the HTTP layer needs from the user repository
type Users interface {
	UserStore
	UserLister
	FindByID(ctx context.Context, id string) (*domain.User, error)
}

// Deps are the collaborators behind the routes
type Deps struct {
	Users    Users             // User repository
	Progress *progress.Service // Progress orchestration
	Redis    *redis.Client     // Optional read cache, nil disables caching
}

// NewRouter builds the gin engine with every route registered
func NewRouter(cfg *config.Config, deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), middleware.CORSMiddleware(cfg.CORSOrigin), middleware.TimeoutMiddleware(cfg.RequestTimeout))

	r.GET("/health", HealthHandler()) // Liveness probe

	// Auth routes
	r.POST("/auth/register", RegisterHandler(deps.Users, cfg)) // Registration endpoint
	r.POST("/auth/login", LoginHandler(deps.Users, cfg))       // Login endpoint

	// Progress routes (protected by JWT)
	apiGroup := r.Group("/api")
	apiGroup.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	apiGroup.GET("/progress", GetProgressHandler(deps.Progress, deps.Redis, cfg.CacheTTL)) // Read progress
	apiGroup.PUT("/progress", UpdateProgressHandler(deps.Progress, deps.Redis))            // Write progress, advance streak

	// Admin routes (protected, admin only)
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret), middleware.AdminOnlyMiddleware(deps.Users))
	adminGroup.GET("/users", ListUsersHandler(deps.Users, deps.Redis, cfg.CacheTTL)) // List users endpoint

	return r
}
