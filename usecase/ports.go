package usecase

import (
	"context"

	"job-board/domain"
)

// Gateway is the external completion endpoint. It may be slow, may return
// malformed JSON even in JSON mode, and may fail with a rate-limit error;
// callers never assume success.
type Gateway interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string, jsonMode bool) (string, error)
}

// Extractor converts an uploaded binary into plain text. Implementations may
// fall back to a secondary extractor when the primary yields nothing; an
// empty string with a nil error means both paths came up dry.
type Extractor interface {
	Extract(data []byte, filename string) (string, error)
}

// BatchStore persists batch aggregates.
type BatchStore interface {
	// Upsert creates the batch for (jobID, batchCode) if missing, assigns its
	// sequential number on first creation, resets its resume list and returns
	// it in the given state.
	Upsert(ctx context.Context, jobID uint, batchCode, name, state string) (*domain.Batch, error)
	AppendResume(ctx context.Context, batchID uint, resume *domain.BatchResume) error
	SetState(ctx context.Context, batchID uint, state string) error
	Get(ctx context.Context, jobID uint, batchCode string) (*domain.Batch, error)
	ListByJob(ctx context.Context, jobID uint) ([]domain.Batch, error)
	ClearResumes(ctx context.Context, jobID uint, batchCode string) error
	SoftDelete(ctx context.Context, jobID uint, batchCode string) error
}

// ApplicantStore persists applicants and answers dedup queries.
type ApplicantStore interface {
	// EmailTaken reports whether any live applicant, portal or bulk, already
	// holds this email for the job.
	EmailTaken(ctx context.Context, jobID uint, email string) (bool, error)
	Create(ctx context.Context, a *domain.Applicant) error
	ListByJob(ctx context.Context, jobID uint, source string) ([]domain.Applicant, error)
	Get(ctx context.Context, id uint) (*domain.Applicant, error)
	Save(ctx context.Context, a *domain.Applicant) error
	SoftDelete(ctx context.Context, id uint) error
	// UnscoredPortal returns portal applicants for the job whose score is
	// still zero, joined with their user accounts.
	UnscoredPortal(ctx context.Context, jobID uint) ([]domain.Applicant, error)
}

// JobStore resolves jobs and their scoring criteria.
type JobStore interface {
	// Resolve accepts either the numeric store id or the human-facing
	// JOBnnnn code.
	Resolve(ctx context.Context, idOrCode string) (*domain.Job, error)
	Criteria(ctx context.Context, idOrCode string) (domain.JobCriteria, error)
}
