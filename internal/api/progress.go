package api

import (
	"encoding/json" // Raw JSON documents
	"errors"        // Error inspection
	"net/http"      // HTTP status codes
	"time"          // Time durations

	"progress_tracker/internal/domain"     // Importing domain models
	"progress_tracker/internal/middleware" // Authenticated user lookup
	"progress_tracker/internal/progress"   // Progress orchestration
	"progress_tracker/internal/utils"      // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
	"gorm.io/datatypes"            // JSON column type
)

// UpdateProgressRequest is the body of PUT /api/progress
type UpdateProgressRequest struct {
	Character  json.RawMessage `json:"character"`  // Opaque character document
	ActivityAt *string         `json:"activityAt"` // Optional RFC 3339 activity instant
}

// ProgressResponse is the wire form of a progress record
type ProgressResponse struct {
	ID             string          `json:"id"`             // Record ID
	UserID         string          `json:"userId"`         // Owner
	Character      json.RawMessage `json:"character"`      // Character document, verbatim
	Streak         int             `json:"streak"`         // Consecutive days
	LastActivityAt *time.Time      `json:"lastActivityAt"` // Last activity in UTC
}

// NewProgressResponse maps a stored record to its wire form, nil stays nil
func NewProgressResponse(p *domain.Progress) *ProgressResponse {
	if p == nil {
		return nil
	}
	resp := &ProgressResponse{
		ID:        p.ID,
		UserID:    p.UserID,
		Character: json.RawMessage(p.Character),
		Streak:    p.Streak,
	}
	if p.LastActivityAt != nil {
		at := p.LastActivityAt.UTC() // Always serialized as UTC
		resp.LastActivityAt = &at
	}
	return resp
}

// GetProgressHandler returns the authenticated user's progress, or null if none exists
func GetProgressHandler(svc *progress.Service, rdb *redis.Client, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := middleware.UserID(c) // Get userID from context
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		ctx := c.Request.Context()            // Request-scoped context
		cacheKey := utils.ProgressKey(userID) // Cache key for progress
		var cached ProgressResponse
		if found, err := utils.GetCache(ctx, rdb, cacheKey, &cached); err == nil && found {
			c.JSON(http.StatusOK, gin.H{"progress": cached}) // Return cached progress
			return
		}
		p, err := svc.Get(ctx, userID) // If not in cache, fetch from DB
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id": userID,      // User ID
				"error":   err.Error(), // Error message
			}).Error("Failed to load progress")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load progress"})
			return
		}
		resp := NewProgressResponse(p)
		if resp != nil {
			_ = utils.SetCache(ctx, rdb, cacheKey, resp, ttl) // Cache only existing records
		}
		c.JSON(http.StatusOK, gin.H{"progress": resp})
	}
}

// UpdateProgressHandler stores the character document and advances the daily streak
func UpdateProgressHandler(svc *progress.Service, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := middleware.UserID(c) // Get userID from context
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var req UpdateProgressRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		ctx := c.Request.Context()
		p, err := svc.Upsert(ctx, userID, datatypes.JSON(req.Character), req.ActivityAt)
		var verr *progress.ValidationError
		switch {
		case errors.As(err, &verr):
			c.JSON(http.StatusBadRequest, gin.H{"error": verr.Msg})
			return
		case err != nil:
			logrus.WithFields(logrus.Fields{
				"user_id": userID,      // User ID
				"error":   err.Error(), // Error message
			}).Error("Progress update failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save progress"})
			return
		}
		resp := NewProgressResponse(p)
		logrus.WithFields(logrus.Fields{
			"user_id":          userID,              // User ID
			"streak":           resp.Streak,         // Persisted streak
			"last_activity_at": resp.LastActivityAt, // Accepted activity
		}).Info("Progress updated")
		// Invalidate cached reads of this record
		_ = utils.DeleteCache(ctx, rdb, utils.ProgressKey(userID))
		_ = utils.DeleteCachePrefix(ctx, rdb, utils.AdminUsersPrefix)
		c.JSON(http.StatusOK, gin.H{"progress": resp})
	}
}
