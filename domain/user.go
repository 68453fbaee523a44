package domain

import (
	"time"

	"gorm.io/gorm"
)

// User is a portal account. Authentication is handled elsewhere; the record
// exists so portal applicants resolve to a real email for deduplication.
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name  string `gorm:"size:255" json:"name"`
	Email string `gorm:"size:255;uniqueIndex;not null" json:"email"`
}
