package store

import (
	"context" // Request-scoped cancellation
	"errors"  // Error inspection
	"fmt"     // Error wrapping

	"progress_tracker/internal/domain" // Importing domain models

	"gorm.io/gorm"        // GORM ORM library
	"gorm.io/gorm/clause" // ON CONFLICT clause for upserts
)

// ProgressStore persists character progress with GORM
type ProgressStore struct {
	db *gorm.DB // Database handle
}

// NewProgressStore creates a ProgressStore
func NewProgressStore(db *gorm.DB) *ProgressStore {
	return &ProgressStore{db: db}
}

// FindByUser returns the progress row of a user, or nil if none exists
func (s *ProgressStore) FindByUser(ctx context.Context, userID string) (*domain.Progress, error) {
	var p domain.Progress
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil // No progress yet
	}
	if err != nil {
		return nil, fmt.Errorf("find progress for user %s: %w", userID, err)
	}
	return &p, nil
}

// Upsert inserts or updates the single progress row of a user in one statement.
// The unique index on user_id makes the insert fall through to an update.
func (s *ProgressStore) Upsert(ctx context.Context, userID string, upd domain.ProgressUpdate) (*domain.Progress, error) {
	at := upd.LastActivityAt.UTC()
	row := domain.Progress{
		UserID:         userID,        // Owner
		Character:      upd.Character, // New document
		Streak:         upd.Streak,    // Decided streak
		LastActivityAt: &at,           // Activity instant
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"character_doc", "streak", "last_activity_at", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return nil, fmt.Errorf("upsert progress for user %s: %w", userID, err)
	}
	// Re-read so the caller gets the persisted id of an updated row
	saved, err := s.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if saved == nil {
		return nil, fmt.Errorf("upsert progress for user %s: row missing after write", userID)
	}
	return saved, nil
}
