// Package store implements the GORM-backed user and progress repositories.
package store

import (
	"context" // Request-scoped cancellation
	"errors"  // Error inspection
	"fmt"     // Error wrapping

	"progress_tracker/internal/domain" // Importing domain models

	"gorm.io/gorm" // GORM ORM library
)

// Repository errors
var (
	ErrUserNotFound = errors.New("user not found")          // No user matched the lookup
	ErrEmailTaken   = errors.New("email is already in use") // Unique email violated
)

// UserStore persists users with GORM
type UserStore struct {
	db *gorm.DB // Database handle
}

// NewUserStore creates a UserStore
func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

// Create inserts a new user. The DB must be opened with TranslateError for duplicate detection.
func (s *UserStore) Create(ctx context.Context, u *domain.User) error {
	err := s.db.WithContext(ctx).Create(u).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrEmailTaken
	}
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// FindByEmail looks a user up by (lower-cased) email
func (s *UserStore) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, notFound(err, "find user by email")
	}
	return &u, nil
}

// FindByID looks a user up by primary key
func (s *UserStore) FindByID(ctx context.Context, id string) (*domain.User, error) {
	var u domain.User
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		return nil, notFound(err, "find user by id")
	}
	return &u, nil
}

// ListWithProgress returns one page of users with their progress preloaded, plus the total count
func (s *UserStore) ListWithProgress(ctx context.Context, offset, limit int) ([]domain.User, int64, error) {
	var total int64 // Total user count
	if err := s.db.WithContext(ctx).Model(&domain.User{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}
	var users []domain.User // Page of users
	err := s.db.WithContext(ctx).
		Preload("Progress").
		Order("email asc").
		Offset(offset).
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	return users, total, nil
}

func notFound(err error, op string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrUserNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
