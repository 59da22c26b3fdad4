// Package testutil holds in-memory stores for handler and service tests.
package testutil

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"progress_tracker/internal/domain"
	"progress_tracker/internal/store"
)

// ProgressStore is an in-memory progress store keyed by user id.
type ProgressStore struct {
	mu      sync.Mutex
	rows    map[string]domain.Progress
	Writes  int   // number of successful upserts
	FindErr error // returned by FindByUser when set
	SaveErr error // returned by Upsert when set
}

func NewProgressStore() *ProgressStore {
	return &ProgressStore{rows: make(map[string]domain.Progress)}
}

// Seed stores p as is.
func (s *ProgressStore) Seed(p domain.Progress) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	s.rows[p.UserID] = p
}

func (s *ProgressStore) FindByUser(_ context.Context, userID string) (*domain.Progress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FindErr != nil {
		return nil, s.FindErr
	}
	p, ok := s.rows[userID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (s *ProgressStore) Upsert(_ context.Context, userID string, upd domain.ProgressUpdate) (*domain.Progress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SaveErr != nil {
		return nil, s.SaveErr
	}
	p, ok := s.rows[userID]
	if !ok {
		p = domain.Progress{ID: uuid.NewString(), UserID: userID}
	}
	at := upd.LastActivityAt
	p.Character = upd.Character
	p.Streak = upd.Streak
	p.LastActivityAt = &at
	s.rows[userID] = p
	s.Writes++
	return &p, nil
}

// UserStore is an in-memory user store.
type UserStore struct {
	mu       sync.Mutex
	users    map[string]domain.User
	Progress *ProgressStore // attached by ListWithProgress when set
	Err      error          // returned by every call when set
}

func NewUserStore() *UserStore {
	return &UserStore{users: make(map[string]domain.User)}
}

func (s *UserStore) Create(_ context.Context, u *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	for _, existing := range s.users {
		if existing.Email == u.Email {
			return store.ErrEmailTaken
		}
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.Role == "" {
		u.Role = domain.RoleUser
	}
	s.users[u.ID] = *u
	return nil
}

func (s *UserStore) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, store.ErrUserNotFound
}

func (s *UserStore) FindByID(_ context.Context, id string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	u, ok := s.users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	return &u, nil
}

// ListWithProgress pages users ordered by email.
func (s *UserStore) ListWithProgress(ctx context.Context, offset, limit int) ([]domain.User, int64, error) {
	s.mu.Lock()
	if s.Err != nil {
		s.mu.Unlock()
		return nil, 0, s.Err
	}
	all := make([]domain.User, 0, len(s.users))
	for _, u := range s.users {
		all = append(all, u)
	}
	ps := s.Progress
	s.mu.Unlock()

	sort.Slice(all, func(i, j int) bool { return all[i].Email < all[j].Email })
	total := int64(len(all))
	if offset >= len(all) {
		return []domain.User{}, total, nil
	}
	end := min(offset+limit, len(all))
	page := all[offset:end]
	for i := range page {
		if ps == nil {
			continue
		}
		p, err := ps.FindByUser(ctx, page[i].ID)
		if err != nil {
			return nil, 0, fmt.Errorf("load progress: %w", err)
		}
		page[i].Progress = p
	}
	return page, total, nil
}
