// Package progress applies character progress updates and keeps the daily
// streak consistent with the last accepted activity.
package progress

import (
	"context"
	"time"

	"gorm.io/datatypes"

	"progress_tracker/internal/domain"
	"progress_tracker/internal/streak"
)

// Store is the per-user progress storage. Upsert must create-or-update atomically
// and never leave two rows for one user.
type Store interface {
	// FindByUser returns nil, nil when the user has no progress yet.
	FindByUser(ctx context.Context, userID string) (*domain.Progress, error)
	Upsert(ctx context.Context, userID string, upd domain.ProgressUpdate) (*domain.Progress, error)
}

// Service orchestrates progress reads and updates.
type Service struct {
	store Store
	now   func() time.Time
}

// NewService creates a Service. A nil clock defaults to time.Now.
func NewService(store Store, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{store: store, now: now}
}

// Get returns the stored progress for userID, or nil if there is none.
func (s *Service) Get(ctx context.Context, userID string) (*domain.Progress, error) {
	p, err := s.store.FindByUser(ctx, userID)
	if err != nil {
		return nil, &StorageError{Op: "find progress", Err: err}
	}
	return p, nil
}

// Upsert stores character for userID and advances the streak for the activity
// at activityAt (RFC 3339). A nil activityAt means the current instant.
//
// Concurrent calls for one user are last-write-wins: the read and the write are
// not isolated, only the write itself is atomic.
func (s *Service) Upsert(ctx context.Context, userID string, character datatypes.JSON, activityAt *string) (*domain.Progress, error) {
	if len(character) == 0 {
		return nil, &ValidationError{Msg: "character is required"}
	}
	now, err := s.activityTime(activityAt)
	if err != nil {
		return nil, err
	}

	current, err := s.store.FindByUser(ctx, userID)
	if err != nil {
		return nil, &StorageError{Op: "find progress", Err: err}
	}

	var last *time.Time
	prev := 0
	if current != nil {
		last = current.LastActivityAt
		prev = current.Streak
	}
	computed := streak.Next(last, now, prev)
	alreadyToday := current != nil && last != nil && streak.SameDay(*last, now)

	next := computed
	switch {
	case current == nil:
		if next == 0 {
			next = 1
		}
	case alreadyToday:
		next = current.Streak // one increment per UTC day at most
	}

	saved, err := s.store.Upsert(ctx, userID, domain.ProgressUpdate{
		Character:      character,
		Streak:         next,
		LastActivityAt: now,
	})
	if err != nil {
		return nil, &StorageError{Op: "upsert progress", Err: err}
	}
	return saved, nil
}

func (s *Service) activityTime(raw *string) (time.Time, error) {
	if raw == nil {
		return s.now().UTC(), nil
	}
	t, err := time.Parse(time.RFC3339Nano, *raw)
	if err != nil {
		return time.Time{}, &ValidationError{Msg: "invalid activity timestamp"}
	}
	return t.UTC(), nil
}
