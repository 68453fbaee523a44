package usecase

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"job-board/domain"
)

// MinRequestDelay is the enforced wait between consecutive model calls while
// iterating a worklist. This is a deliberate throttle to stay under provider
// rate limits, not a tunable performance knob.
const MinRequestDelay = 500 * time.Millisecond

// RunParams identifies one batch-analyze run.
type RunParams struct {
	SessionID string
	BatchCode string
	BatchName string
	JobID     uint
	Criteria  domain.JobCriteria
}

// CVResult is one line of the result stream: either a scored CV or an
// isolated failure. Failed CVs carry the error message so the caller can
// render them distinctly instead of inferring failure from truncation.
type CVResult struct {
	CV            CVRef                    `json:"cv"`
	ExtractedData *domain.CandidateProfile `json:"extractedData,omitempty"`
	Analysis      *ResultAnalysis          `json:"analysis"`
}

type CVRef struct {
	ID         string `json:"id"`
	Filename   string `json:"filename"`
	UploadDate string `json:"uploadDate,omitempty"`
}

type ResultAnalysis struct {
	*domain.Analysis
	Status     string    `json:"status"`
	Error      string    `json:"error,omitempty"`
	Locked     bool      `json:"locked"`
	AnalyzedAt time.Time `json:"analyzedAt"`
}

// Emitter receives one complete, independently parseable record per processed
// CV. Emission happens before the matching persistence write completes.
type Emitter func(result CVResult) error

// Analyzer drives a batch run: one logical worker, strictly sequential, each
// CV fully processed before the next begins. Parallelizing would only produce
// more simultaneous 429s from the provider.
type Analyzer struct {
	structurer *Structurer
	scorer     *Scorer
	batches    BatchStore
	applicants *ApplicantService
	delay      time.Duration
}

func NewAnalyzer(structurer *Structurer, scorer *Scorer, batches BatchStore, applicants *ApplicantService) *Analyzer {
	return &Analyzer{
		structurer: structurer,
		scorer:     scorer,
		batches:    batches,
		applicants: applicants,
		delay:      MinRequestDelay,
	}
}

// Run processes the staged worklist for one batch. Per-CV failures are
// isolated: the failure is emitted and persisted and the loop continues. A
// rate-limit error is systemic, so it marks the batch failed and aborts. On a
// fully exhausted worklist the batch is completed and the deduplicator
// materializes applicants from the scored subset.
func (a *Analyzer) Run(ctx context.Context, params RunParams, cvs []StagedCV, emit Emitter) error {
	if len(cvs) == 0 {
		return nil
	}

	// Lazy batch creation: the batch record appears only when the first CV is
	// about to be scored.
	batch, err := a.batches.Upsert(ctx, params.JobID, params.BatchCode, params.BatchName, domain.BatchStateProcessing)
	if err != nil {
		return err
	}

	log := logrus.WithFields(logrus.Fields{"batch": params.BatchCode, "job": params.JobID})
	log.WithField("cvs", len(cvs)).Info("batch run started")

	for i, cv := range cvs {
		if i > 0 {
			select {
			case <-time.After(a.delay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		result, runErr := a.processOne(ctx, cv, params.Criteria)

		if runErr != nil && IsRateLimited(runErr) {
			// Emit the failure for this CV, then abort: every remaining CV
			// would hit the same limit.
			failure := failedResult(cv, runErr)
			_ = emit(failure)
			a.persistResume(ctx, batch.ID, cv, failure)
			if err := a.batches.SetState(ctx, batch.ID, domain.BatchStateFailed); err != nil {
				log.WithError(err).Error("failed to mark batch failed")
			}
			log.WithError(runErr).Warn("batch run aborted on provider rate limit")
			return runErr
		}

		if runErr != nil {
			failure := failedResult(cv, runErr)
			if err := emit(failure); err != nil {
				return err
			}
			a.persistResume(ctx, batch.ID, cv, failure)
			log.WithFields(logrus.Fields{"cv": cv.Filename, "error": runErr}).Warn("CV failed, continuing")
			continue
		}

		// Emit before persisting so a live consumer sees progress as it
		// happens. A crash between emit and persist loses the record; the
		// recovery policy is an operator re-run.
		if err := emit(*result); err != nil {
			return err
		}
		a.persistResume(ctx, batch.ID, cv, *result)
	}

	if err := a.batches.SetState(ctx, batch.ID, domain.BatchStateCompleted); err != nil {
		return err
	}
	log.Info("batch run completed")

	stored, err := a.batches.Get(ctx, params.JobID, params.BatchCode)
	if err != nil {
		return err
	}
	if _, err := a.applicants.Materialize(ctx, stored); err != nil {
		log.WithError(err).Error("bulk applicant materialization failed")
	}
	return nil
}

func (a *Analyzer) processOne(ctx context.Context, cv StagedCV, criteria domain.JobCriteria) (*CVResult, error) {
	profile, err := a.structurer.Structure(ctx, cv.Content, cv.Filename)
	if err != nil {
		return nil, err
	}

	analysis, err := a.scorer.Score(ctx, profile, criteria)
	if err != nil {
		return nil, err
	}

	return &CVResult{
		CV:            CVRef{ID: cv.ID, Filename: cv.Filename, UploadDate: cv.UploadDate},
		ExtractedData: profile,
		Analysis: &ResultAnalysis{
			Analysis:   analysis,
			Status:     domain.ResumeStatusCompleted,
			Locked:     true,
			AnalyzedAt: time.Now(),
		},
	}, nil
}

func (a *Analyzer) persistResume(ctx context.Context, batchID uint, cv StagedCV, result CVResult) {
	resume := &domain.BatchResume{
		BatchID:       batchID,
		CvID:          cv.ID,
		Filename:      cv.Filename,
		UploadDate:    cv.UploadDate,
		ExtractedData: result.ExtractedData,
		Status:        result.Analysis.Status,
		Locked:        result.Analysis.Locked,
		Error:         result.Analysis.Error,
	}
	if result.Analysis.Analysis != nil {
		resume.Analysis = result.Analysis.Analysis
		at := result.Analysis.AnalyzedAt
		resume.AnalyzedAt = &at
	}
	if err := a.batches.AppendResume(ctx, batchID, resume); err != nil {
		logrus.WithFields(logrus.Fields{"cv": cv.Filename, "error": err}).Error("failed to persist batch resume")
	}
}

func failedResult(cv StagedCV, err error) CVResult {
	return CVResult{
		CV: CVRef{ID: cv.ID, Filename: cv.Filename, UploadDate: cv.UploadDate},
		Analysis: &ResultAnalysis{
			Status:     domain.ResumeStatusFailed,
			Error:      err.Error(),
			AnalyzedAt: time.Now(),
		},
	}
}
