package api

import (
	"context"  // Request context
	"net/http" // HTTP status codes
	"strconv"  // String conversion
	"time"     // Time durations

	"progress_tracker/internal/domain" // Importing domain models
	"progress_tracker/internal/utils"  // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
)

// UserLister pages through users with their progress attached
type UserLister interface {
	ListWithProgress(ctx context.Context, offset, limit int) ([]domain.User, int64, error)
}

// UserAdminResponse represents the user data returned to admin
type UserAdminResponse struct {
	ID             string     `json:"id"`             // User ID
	Email          string     `json:"email"`          // Email
	Role           string     `json:"role"`           // User role
	Streak         int        `json:"streak"`         // Current streak, 0 without progress
	LastActivityAt *time.Time `json:"lastActivityAt"` // Last activity in UTC, null without progress
}

// userPage is the cached admin listing
type userPage struct {
	Users      []UserAdminResponse `json:"users"`       // List of users
	Page       int                 `json:"page"`        // Current page
	PageSize   int                 `json:"page_size"`   // Page size
	Total      int64               `json:"total"`       // Total number of users
	TotalPages int                 `json:"total_pages"` // Total pages
	Cached     bool                `json:"cached"`      // Whether served from cache
}

// ListUsersHandler returns all users with their streak info
func ListUsersHandler(users UserLister, rdb *redis.Client, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		page := positiveQuery(c, "page", 1, 0)             // Default page number
		pageSize := positiveQuery(c, "page_size", 20, 100) // Default page size, capped at 100
		// Create a cache key based on pagination parameters
		cacheKey := utils.AdminUsersPrefix + "page=" + strconv.Itoa(page) + ":size=" + strconv.Itoa(pageSize)
		var cached userPage
		if found, err := utils.GetCache(ctx, rdb, cacheKey, &cached); err == nil && found {
			cached.Cached = true // Indicate response is from cache
			c.JSON(http.StatusOK, cached)
			return
		}
		offset := (page - 1) * pageSize // Calculate offset for pagination
		list, total, err := users.ListWithProgress(ctx, offset, pageSize)
		if err != nil {
			logrus.WithError(err).Error("Failed to list users")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
			return
		}
		resp := userPage{
			Users:      make([]UserAdminResponse, len(list)),
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: (int(total) + pageSize - 1) / pageSize, // Calculate total pages
		}
		// Map users to response format
		for i, u := range list {
			resp.Users[i] = UserAdminResponse{ID: u.ID, Email: u.Email, Role: u.Role}
			if p := NewProgressResponse(u.Progress); p != nil {
				resp.Users[i].Streak = p.Streak
				resp.Users[i].LastActivityAt = p.LastActivityAt
			}
		}
		_ = utils.SetCache(ctx, rdb, cacheKey, resp, ttl) // Cache the response for future requests
		c.JSON(http.StatusOK, resp)
	}
}

// positiveQuery reads a positive integer query parameter, falling back to def.
// A limit of 0 means unbounded.
func positiveQuery(c *gin.Context, key string, def, limit int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil || v <= 0 || (limit > 0 && v > limit) {
		return def
	}
	return v
}
