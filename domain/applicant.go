package domain

import (
	"time"

	"gorm.io/gorm"
)

const (
	SourcePortal = "Portal"
	SourceBulk   = "Bulk"
)

// Applicant statuses. The progression Applied→Reviewed→Shortlisted→
// Interviewed→Hired (or Rejected) is directional but not enforced; any
// transition is accepted and stamps the matching flag.
const (
	StatusApplied     = "Applied"
	StatusReviewed    = "Reviewed"
	StatusShortlisted = "Shortlisted"
	StatusInterviewed = "Interviewed"
	StatusHired       = "Hired"
	StatusRejected    = "Rejected"
)

// Applicant ties a candidate to a job posting. Portal applicants reference a
// real user account and are deduplicated by (user, job); bulk applicants carry
// a synthesized identity and are deduplicated by (job, extracted email).
type Applicant struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	JobID  uint   `gorm:"not null;index:idx_job_email_source" json:"job_id"`
	Source string `gorm:"size:8;not null;default:'Portal';index:idx_job_email_source" json:"source"`

	// UserID is set for portal applicants only.
	UserID *uint `gorm:"index" json:"user_id,omitempty"`
	User   *User `json:"user,omitempty"`

	// CandidateKey is the synthesized identity for bulk applicants.
	CandidateKey string `gorm:"size:64" json:"candidateKey,omitempty"`

	// Email is the lowercased dedup key. For portal applicants it mirrors the
	// user email; for bulk applicants it comes from the extracted profile.
	Email string `gorm:"size:255;index:idx_job_email_source" json:"email"`

	ResumeURL     string            `gorm:"size:512" json:"resumeUrl,omitempty"`
	ExtractedData *CandidateProfile `gorm:"serializer:json" json:"extractedData,omitempty"`
	Breakdown     *ScoreBreakdown   `gorm:"serializer:json" json:"scoreBreakdown,omitempty"`

	Score int      `gorm:"default:0" json:"score"`
	GPA   *float64 `json:"gpa,omitempty"` // normalized to a 0-4 scale, nil when unparseable

	Status        string `gorm:"size:16;default:'Applied'" json:"status"`
	IsReviewed    bool   `gorm:"default:false" json:"isReviewed"`
	IsShortlisted bool   `gorm:"default:false" json:"isShortlisted"`
	IsInterviewed bool   `gorm:"default:false" json:"isInterviewed"`
	IsHired       bool   `gorm:"default:false" json:"isHired"`
	IsRejected    bool   `gorm:"default:false" json:"isRejected"`

	AppliedAt     time.Time  `json:"appliedAt"`
	ReviewedAt    *time.Time `json:"reviewedAt,omitempty"`
	ShortlistedAt *time.Time `json:"shortlistedAt,omitempty"`
	InterviewedAt *time.Time `json:"interviewedAt,omitempty"`
	HiredAt       *time.Time `json:"hiredAt,omitempty"`
	RejectedAt    *time.Time `json:"rejectedAt,omitempty"`
}

// ApplyStatus records a transition: it sets the status, flips the matching
// flag and stamps the first-reached timestamp. Flags for other statuses are
// left untouched so history survives back-and-forth moves.
func (a *Applicant) ApplyStatus(status string, now time.Time) {
	a.Status = status
	switch status {
	case StatusReviewed:
		a.IsReviewed = true
		if a.ReviewedAt == nil {
			a.ReviewedAt = &now
		}
	case StatusShortlisted:
		a.IsShortlisted = true
		if a.ShortlistedAt == nil {
			a.ShortlistedAt = &now
		}
	case StatusInterviewed:
		a.IsInterviewed = true
		if a.InterviewedAt == nil {
			a.InterviewedAt = &now
		}
	case StatusHired:
		a.IsHired = true
		if a.HiredAt == nil {
			a.HiredAt = &now
		}
	case StatusRejected:
		a.IsRejected = true
		if a.RejectedAt == nil {
			a.RejectedAt = &now
		}
	}
}

// ValidStatus reports whether s is one of the known applicant statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusApplied, StatusReviewed, StatusShortlisted, StatusInterviewed, StatusHired, StatusRejected:
		return true
	}
	return false
}
