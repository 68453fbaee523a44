package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"gorm.io/gorm"

	"job-board/domain"
)

// GormBatchStore persists batch aggregates in MySQL.
type GormBatchStore struct {
	DB *gorm.DB
}

func NewGormBatchStore(db *gorm.DB) *GormBatchStore {
	return &GormBatchStore{DB: db}
}

func (s *GormBatchStore) Upsert(ctx context.Context, jobID uint, batchCode, name, state string) (*domain.Batch, error) {
	db := s.DB.WithContext(ctx)

	var batch domain.Batch
	err := db.Where("job_id = ? AND batch_code = ?", jobID, batchCode).First(&batch).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		var count int64
		if err := db.Model(&domain.Batch{}).Unscoped().Where("job_id = ?", jobID).Count(&count).Error; err != nil {
			return nil, err
		}
		batch = domain.Batch{
			BatchCode:   batchCode,
			JobID:       jobID,
			BatchNumber: int(count) + 1,
			Name:        name,
		}
		if batch.BatchCode == "" {
			batch.BatchCode = fmt.Sprintf("BATCH%04d", batch.BatchNumber)
		}
		batch.SetState(state)
		if err := db.Create(&batch).Error; err != nil {
			return nil, err
		}
		return &batch, nil
	case err != nil:
		return nil, err
	}

	// Re-run of an existing batch: drop previous resume entries.
	if err := db.Where("batch_id = ?", batch.ID).Delete(&domain.BatchResume{}).Error; err != nil {
		return nil, err
	}
	batch.Name = name
	batch.SetState(state)
	batch.Resumes = nil
	if err := db.Save(&batch).Error; err != nil {
		return nil, err
	}
	return &batch, nil
}

func (s *GormBatchStore) AppendResume(ctx context.Context, batchID uint, resume *domain.BatchResume) error {
	resume.BatchID = batchID
	return s.DB.WithContext(ctx).Create(resume).Error
}

func (s *GormBatchStore) SetState(ctx context.Context, batchID uint, state string) error {
	var batch domain.Batch
	if err := s.DB.WithContext(ctx).First(&batch, batchID).Error; err != nil {
		return err
	}
	batch.SetState(state)
	return s.DB.WithContext(ctx).Save(&batch).Error
}

func (s *GormBatchStore) Get(ctx context.Context, jobID uint, batchCode string) (*domain.Batch, error) {
	var batch domain.Batch
	err := s.DB.WithContext(ctx).
		Preload("Resumes", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Where("job_id = ? AND batch_code = ?", jobID, batchCode).
		First(&batch).Error
	if err != nil {
		return nil, err
	}
	return &batch, nil
}

func (s *GormBatchStore) ListByJob(ctx context.Context, jobID uint) ([]domain.Batch, error) {
	var batches []domain.Batch
	err := s.DB.WithContext(ctx).
		Preload("Resumes").
		Where("job_id = ?", jobID).
		Order("batch_number ASC").
		Find(&batches).Error
	return batches, err
}

func (s *GormBatchStore) ClearResumes(ctx context.Context, jobID uint, batchCode string) error {
	batch, err := s.Get(ctx, jobID, batchCode)
	if err != nil {
		return err
	}
	if err := s.DB.WithContext(ctx).Where("batch_id = ?", batch.ID).Delete(&domain.BatchResume{}).Error; err != nil {
		return err
	}
	batch.SetState(domain.BatchStateIdle)
	batch.Resumes = nil
	return s.DB.WithContext(ctx).Save(batch).Error
}

func (s *GormBatchStore) SoftDelete(ctx context.Context, jobID uint, batchCode string) error {
	return s.DB.WithContext(ctx).
		Where("job_id = ? AND batch_code = ?", jobID, batchCode).
		Delete(&domain.Batch{}).Error
}

// GormApplicantStore persists applicants and answers dedup queries.
type GormApplicantStore struct {
	DB *gorm.DB
}

func NewGormApplicantStore(db *gorm.DB) *GormApplicantStore {
	return &GormApplicantStore{DB: db}
}

// EmailTaken checks both sources. Bulk applicants carry the extracted email
// directly; portal applicants resolve it through their user account.
func (s *GormApplicantStore) EmailTaken(ctx context.Context, jobID uint, email string) (bool, error) {
	db := s.DB.WithContext(ctx)

	var count int64
	err := db.Model(&domain.Applicant{}).
		Where("job_id = ? AND email = ?", jobID, email).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	if count > 0 {
		return true, nil
	}

	err = db.Model(&domain.Applicant{}).
		Joins("JOIN users ON users.id = applicants.user_id").
		Where("applicants.job_id = ? AND applicants.source = ? AND LOWER(users.email) = ?", jobID, domain.SourcePortal, email).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *GormApplicantStore) Create(ctx context.Context, a *domain.Applicant) error {
	return s.DB.WithContext(ctx).Create(a).Error
}

func (s *GormApplicantStore) ListByJob(ctx context.Context, jobID uint, source string) ([]domain.Applicant, error) {
	db := s.DB.WithContext(ctx).Preload("User").Where("job_id = ?", jobID)
	if source != "" {
		db = db.Where("source = ?", source)
	}
	var applicants []domain.Applicant
	err := db.Order("applied_at DESC").Find(&applicants).Error
	return applicants, err
}

func (s *GormApplicantStore) Get(ctx context.Context, id uint) (*domain.Applicant, error) {
	var applicant domain.Applicant
	if err := s.DB.WithContext(ctx).Preload("User").First(&applicant, id).Error; err != nil {
		return nil, err
	}
	return &applicant, nil
}

func (s *GormApplicantStore) Save(ctx context.Context, a *domain.Applicant) error {
	return s.DB.WithContext(ctx).Save(a).Error
}

func (s *GormApplicantStore) SoftDelete(ctx context.Context, id uint) error {
	return s.DB.WithContext(ctx).Delete(&domain.Applicant{}, id).Error
}

func (s *GormApplicantStore) UnscoredPortal(ctx context.Context, jobID uint) ([]domain.Applicant, error) {
	var applicants []domain.Applicant
	err := s.DB.WithContext(ctx).
		Preload("User").
		Where("job_id = ? AND source = ? AND score = 0", jobID, domain.SourcePortal).
		Find(&applicants).Error
	return applicants, err
}

// GormJobStore resolves jobs by store id or human-facing code.
type GormJobStore struct {
	DB *gorm.DB
}

func NewGormJobStore(db *gorm.DB) *GormJobStore {
	return &GormJobStore{DB: db}
}

func (s *GormJobStore) Resolve(ctx context.Context, idOrCode string) (*domain.Job, error) {
	db := s.DB.WithContext(ctx).Preload("Company")

	var job domain.Job
	if id, err := strconv.ParseUint(idOrCode, 10, 64); err == nil {
		if err := db.First(&job, uint(id)).Error; err == nil {
			return &job, nil
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}
	if err := db.Where("job_code = ?", idOrCode).First(&job).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

func (s *GormJobStore) Criteria(ctx context.Context, idOrCode string) (domain.JobCriteria, error) {
	job, err := s.Resolve(ctx, idOrCode)
	if err != nil {
		return domain.JobCriteria{}, err
	}
	return domain.JobCriteria{
		CompanyName:   job.Company.CompanyName,
		CompanyID:     job.CompanyID,
		Description:   job.Description,
		Requirements:  job.Requirements,
		Experience:    job.Experience,
		Qualification: job.Qualification,
		Location:      job.Location,
		JobType:       job.JobType,
		WorkType:      job.WorkType,
	}, nil
}
