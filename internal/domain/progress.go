package domain

import (
	"time" // Timestamps

	"github.com/google/uuid" // UUID generation for primary keys
	"gorm.io/datatypes"      // JSON column type
	"gorm.io/gorm"           // GORM ORM library
)

// Progress Model, one row per user
type Progress struct {
	ID             string         `gorm:"type:varchar(36);primaryKey" json:"id"`               // Primary key (UUID)
	UserID         string         `gorm:"type:varchar(36);uniqueIndex;not null" json:"userId"` // Foreign key to User, unique for upserts
	Character      datatypes.JSON `gorm:"column:character_doc;not null" json:"character"`      // Opaque character document
	Streak         int            `gorm:"not null;default:0" json:"streak"`                    // Consecutive UTC days with activity
	LastActivityAt *time.Time     `json:"lastActivityAt"`                                      // Last accepted activity, nil if none
	CreatedAt      time.Time      `json:"-"`                                                   // Row creation time
	UpdatedAt      time.Time      `json:"-"`                                                   // Row update time
}

// TableName keeps the table name stable regardless of naming strategy
func (Progress) TableName() string {
	return "character_progress"
}

// BeforeCreate assigns a UUID when the caller did not set one
func (p *Progress) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// ProgressUpdate is the state written by one upsert
type ProgressUpdate struct {
	Character      datatypes.JSON // New character document
	Streak         int            // Streak to persist
	LastActivityAt time.Time      // Activity instant (UTC)
}
