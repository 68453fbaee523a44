package domain

import (
	"time"

	"gorm.io/gorm"
)

type Job struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Human-facing code, e.g. JOB0001. Assigned on create.
	JobCode string `gorm:"size:16;uniqueIndex" json:"jobId"`

	CompanyID uint    `gorm:"not null" json:"company_id"`
	Company   Company `json:"company"`

	Title         string   `gorm:"size:255;not null" json:"title"`
	Description   string   `gorm:"type:text;not null" json:"description"`
	Experience    string   `gorm:"size:32" json:"experience"`    // Fresher, 1-2 years, ...
	Qualification string   `gorm:"size:32" json:"qualification"` // High School, Bachelor's, ...
	Location      string   `gorm:"size:255" json:"location"`
	Salary        string   `gorm:"size:32" json:"salary"`
	JobType       string   `gorm:"size:32" json:"jobType"`  // Full-time, Contract, ...
	WorkType      string   `gorm:"size:32" json:"workType"` // On-Site, Hybrid, Remote
	Requirements  []string `gorm:"serializer:json" json:"requirements"`

	Status      string     `gorm:"size:16;default:'Active'" json:"status"`
	ClosingDate *time.Time `json:"closingDate"`
}

// JobCriteria is the slice of a job the scoring engine needs. It is resolved
// once per batch run and passed into every scoring call.
type JobCriteria struct {
	CompanyName   string   `json:"companyName"`
	CompanyID     uint     `json:"companyId"`
	Description   string   `json:"description"`
	Requirements  []string `json:"requirements"`
	Experience    string   `json:"experience"`
	Qualification string   `json:"qualification"`
	Location      string   `json:"location"`
	JobType       string   `json:"jobType"`
	WorkType      string   `json:"workType"`
}
