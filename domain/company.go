package domain

import (
	"time"

	"gorm.io/gorm"
)

type Company struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	CompanyName string `gorm:"size:255;uniqueIndex;not null" json:"companyName"`
	Email       string `gorm:"size:255" json:"email"`
	Address     string `gorm:"size:255" json:"address"`

	Jobs []Job `json:"jobs,omitempty"`
}
