package domain

import (
	"time"

	"gorm.io/gorm"
)

// Batch run states. A batch is never hard-deleted: it is either cleared
// (resumes emptied) or soft-deleted.
const (
	BatchStateIdle       = "idle"
	BatchStateProcessing = "processing"
	BatchStateCompleted  = "completed"
	BatchStateFailed     = "failed"
)

// Resume entry lifecycle within a batch.
const (
	ResumeStatusProcessing = "processing"
	ResumeStatusCompleted  = "completed"
	ResumeStatusFailed     = "failed"
)

type Batch struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// BatchCode is unique within a job, e.g. BATCH0001; BatchNumber is the
	// sequential position of this batch for its job.
	BatchCode   string `gorm:"size:16;uniqueIndex:idx_job_batch_code" json:"batchId"`
	JobID       uint   `gorm:"not null;uniqueIndex:idx_job_batch_code" json:"job_id"`
	BatchNumber int    `gorm:"not null" json:"batchNumber"`
	Name        string `gorm:"size:255;not null" json:"name"`

	IsIdle       bool `gorm:"default:true" json:"isIdle"`
	IsUploaded   bool `gorm:"default:true" json:"isUploaded"`
	IsProcessing bool `gorm:"default:false" json:"isProcessing"`
	IsCompleted  bool `gorm:"default:false" json:"isCompleted"`
	IsFailed     bool `gorm:"default:false" json:"isFailed"`

	Resumes []BatchResume `json:"resumes"`
}

// SetState flips the batch-level flags so exactly one lifecycle flag is set.
func (b *Batch) SetState(state string) {
	b.IsIdle = state == BatchStateIdle
	b.IsProcessing = state == BatchStateProcessing
	b.IsCompleted = state == BatchStateCompleted
	b.IsFailed = state == BatchStateFailed
}

// State reports the single lifecycle state implied by the flags.
func (b *Batch) State() string {
	switch {
	case b.IsFailed:
		return BatchStateFailed
	case b.IsCompleted:
		return BatchStateCompleted
	case b.IsProcessing:
		return BatchStateProcessing
	default:
		return BatchStateIdle
	}
}

// BatchResume is one processed CV inside a batch. Locked means the entry has
// been scored and the pipeline will not mutate it again.
type BatchResume struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	BatchID   uint      `gorm:"not null;index" json:"batch_id"`

	CvID       string `gorm:"size:64" json:"cvId"`
	Filename   string `gorm:"size:255" json:"filename"`
	UploadDate string `gorm:"size:64" json:"uploadDate"`

	ExtractedData *CandidateProfile `gorm:"serializer:json" json:"extractedData,omitempty"`
	Analysis      *Analysis         `gorm:"serializer:json" json:"analysis,omitempty"`

	Locked     bool       `gorm:"default:false" json:"locked"`
	Status     string     `gorm:"size:16;default:'processing'" json:"status"`
	Error      string     `gorm:"size:512" json:"error,omitempty"`
	AnalyzedAt *time.Time `json:"analyzedAt,omitempty"`
}
