package usecase

import (
	"context"
	"errors"
	"fmt"

	"job-board/domain"
)

// fakeGateway replays a scripted sequence of completions.
type gatewayStep struct {
	resp string
	err  error
}

type fakeGateway struct {
	steps   []gatewayStep
	calls   int
	prompts []string
}

func (g *fakeGateway) Complete(ctx context.Context, systemPrompt, userPrompt string, jsonMode bool) (string, error) {
	i := g.calls
	g.calls++
	g.prompts = append(g.prompts, userPrompt)
	if i >= len(g.steps) {
		return "", errors.New("unexpected gateway call")
	}
	return g.steps[i].resp, g.steps[i].err
}

type fakeExtractor struct {
	text string
	err  error
}

func (e *fakeExtractor) Extract(data []byte, filename string) (string, error) {
	return e.text, e.err
}

// memBatchStore is an in-memory BatchStore.
type memBatchStore struct {
	batches map[string]*domain.Batch
	nextID  uint
}

func newMemBatchStore() *memBatchStore {
	return &memBatchStore{batches: make(map[string]*domain.Batch)}
}

func batchKey(jobID uint, code string) string {
	return fmt.Sprintf("%d:%s", jobID, code)
}

func (s *memBatchStore) Upsert(ctx context.Context, jobID uint, batchCode, name, state string) (*domain.Batch, error) {
	key := batchKey(jobID, batchCode)
	b, ok := s.batches[key]
	if !ok {
		s.nextID++
		b = &domain.Batch{
			ID:          s.nextID,
			JobID:       jobID,
			BatchCode:   batchCode,
			BatchNumber: len(s.batches) + 1,
			Name:        name,
		}
		s.batches[key] = b
	}
	b.Resumes = nil
	b.SetState(state)
	dup := *b
	return &dup, nil
}

func (s *memBatchStore) AppendResume(ctx context.Context, batchID uint, resume *domain.BatchResume) error {
	for _, b := range s.batches {
		if b.ID == batchID {
			resume.BatchID = batchID
			b.Resumes = append(b.Resumes, *resume)
			return nil
		}
	}
	return errors.New("batch not found")
}

func (s *memBatchStore) SetState(ctx context.Context, batchID uint, state string) error {
	for _, b := range s.batches {
		if b.ID == batchID {
			b.SetState(state)
			return nil
		}
	}
	return errors.New("batch not found")
}

func (s *memBatchStore) Get(ctx context.Context, jobID uint, batchCode string) (*domain.Batch, error) {
	b, ok := s.batches[batchKey(jobID, batchCode)]
	if !ok {
		return nil, errors.New("batch not found")
	}
	dup := *b
	return &dup, nil
}

func (s *memBatchStore) ListByJob(ctx context.Context, jobID uint) ([]domain.Batch, error) {
	var out []domain.Batch
	for _, b := range s.batches {
		if b.JobID == jobID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (s *memBatchStore) ClearResumes(ctx context.Context, jobID uint, batchCode string) error {
	b, ok := s.batches[batchKey(jobID, batchCode)]
	if !ok {
		return errors.New("batch not found")
	}
	b.Resumes = nil
	b.SetState(domain.BatchStateIdle)
	return nil
}

func (s *memBatchStore) SoftDelete(ctx context.Context, jobID uint, batchCode string) error {
	delete(s.batches, batchKey(jobID, batchCode))
	return nil
}

// memApplicantStore is an in-memory ApplicantStore.
type memApplicantStore struct {
	applicants []domain.Applicant
	nextID     uint
}

func (s *memApplicantStore) EmailTaken(ctx context.Context, jobID uint, email string) (bool, error) {
	for _, a := range s.applicants {
		if a.JobID == jobID && a.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (s *memApplicantStore) Create(ctx context.Context, a *domain.Applicant) error {
	s.nextID++
	a.ID = s.nextID
	s.applicants = append(s.applicants, *a)
	return nil
}

func (s *memApplicantStore) ListByJob(ctx context.Context, jobID uint, source string) ([]domain.Applicant, error) {
	var out []domain.Applicant
	for _, a := range s.applicants {
		if a.JobID == jobID && (source == "" || a.Source == source) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *memApplicantStore) Get(ctx context.Context, id uint) (*domain.Applicant, error) {
	for i := range s.applicants {
		if s.applicants[i].ID == id {
			dup := s.applicants[i]
			return &dup, nil
		}
	}
	return nil, errors.New("applicant not found")
}

func (s *memApplicantStore) Save(ctx context.Context, a *domain.Applicant) error {
	for i := range s.applicants {
		if s.applicants[i].ID == a.ID {
			s.applicants[i] = *a
			return nil
		}
	}
	return errors.New("applicant not found")
}

func (s *memApplicantStore) SoftDelete(ctx context.Context, id uint) error {
	for i := range s.applicants {
		if s.applicants[i].ID == id {
			s.applicants = append(s.applicants[:i], s.applicants[i+1:]...)
			return nil
		}
	}
	return nil
}

func (s *memApplicantStore) UnscoredPortal(ctx context.Context, jobID uint) ([]domain.Applicant, error) {
	var out []domain.Applicant
	for _, a := range s.applicants {
		if a.JobID == jobID && a.Source == domain.SourcePortal && a.Score == 0 {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeJobStore struct {
	job      domain.Job
	criteria domain.JobCriteria
}

func (s *fakeJobStore) Resolve(ctx context.Context, idOrCode string) (*domain.Job, error) {
	dup := s.job
	return &dup, nil
}

func (s *fakeJobStore) Criteria(ctx context.Context, idOrCode string) (domain.JobCriteria, error) {
	return s.criteria, nil
}
