package domain

import (
	"time" // Timestamps

	"github.com/google/uuid" // UUID generation for primary keys
	"gorm.io/gorm"           // GORM ORM library
)

// User roles
const (
	RoleUser  = "user"  // Regular account
	RoleAdmin = "admin" // May list all users
)

// User Model
type User struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`               // Primary key (UUID)
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"` // Unique email, stored lower-cased
	Password  string    `gorm:"not null" json:"-"`                                   // Hashed password, never serialized
	Role      string    `gorm:"type:varchar(16);default:user" json:"role"`           // Role: user or admin
	CreatedAt time.Time `json:"createdAt"`                                           // Registration time

	// One-to-one relationship with Progress
	Progress *Progress `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"progress,omitempty"`
}

// BeforeCreate assigns a UUID when the caller did not set one
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
