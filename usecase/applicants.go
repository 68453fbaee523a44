package usecase

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"job-board/domain"
)

var (
	gpaDenomRe   = regexp.MustCompile(`(\d+(\.\d+)?)\s*(?:/|out of|of)\s*(\d+(\.\d+)?)`)
	gpaPercentRe = regexp.MustCompile(`(\d+(\.\d+)?)\s*%`)
	gpaNumberRe  = regexp.MustCompile(`(\d+(\.\d+)?)`)
)

// ApplicantService creates applicants from scored batches and runs the
// on-demand portal scoring path.
type ApplicantService struct {
	applicants ApplicantStore
	jobs       JobStore
	scorer     *Scorer
	delay      time.Duration
}

func NewApplicantService(applicants ApplicantStore, jobs JobStore, scorer *Scorer) *ApplicantService {
	return &ApplicantService{
		applicants: applicants,
		jobs:       jobs,
		scorer:     scorer,
		delay:      MinRequestDelay,
	}
}

// Materialize creates one bulk applicant per scored resume in the batch,
// skipping any candidate whose email already belongs to a live applicant for
// the job — portal identity takes precedence over bulk, and a duplicate is
// not an error. Calling it twice on the same batch creates nothing new.
func (s *ApplicantService) Materialize(ctx context.Context, batch *domain.Batch) ([]domain.Applicant, error) {
	if batch == nil {
		return nil, nil
	}

	var created []domain.Applicant
	for _, resume := range batch.Resumes {
		if resume.Status != domain.ResumeStatusCompleted || resume.ExtractedData == nil {
			continue
		}

		email := strings.ToLower(strings.TrimSpace(resume.ExtractedData.PersonalInfo.Email))
		if email == "" {
			// No identity key, nothing to dedupe against.
			continue
		}

		taken, err := s.applicants.EmailTaken(ctx, batch.JobID, email)
		if err != nil {
			return created, err
		}
		if taken {
			continue
		}

		score := 0
		var breakdown *domain.ScoreBreakdown
		if resume.Analysis != nil {
			score = resume.Analysis.Score
			b := resume.Analysis.Breakdown
			breakdown = &b
		}

		applicant := domain.Applicant{
			JobID:         batch.JobID,
			Source:        domain.SourceBulk,
			CandidateKey:  uuid.NewString(),
			Email:         email,
			ExtractedData: resume.ExtractedData,
			Breakdown:     breakdown,
			Score:         score,
			GPA:           BestGPA(resume.ExtractedData.Education),
			Status:        domain.StatusApplied,
			AppliedAt:     time.Now(),
		}
		if err := s.applicants.Create(ctx, &applicant); err != nil {
			// A constraint violation here means a concurrent writer won the
			// race; treat it like the dedup-skip above.
			logrus.WithFields(logrus.Fields{"job": batch.JobID, "email": email, "error": err}).
				Warn("bulk applicant create skipped")
			continue
		}
		created = append(created, applicant)
	}

	if len(created) > 0 {
		logrus.WithFields(logrus.Fields{"job": batch.JobID, "batch": batch.BatchCode, "created": len(created)}).
			Info("bulk applicants materialized")
	}
	return created, nil
}

// ScorePortalApplicants scores every not-yet-scored portal applicant for the
// job against its criteria, reusing the stored profile without re-extraction.
// Applicants with a score above zero are skipped by the store query, which
// makes re-runs idempotent. A rate limit aborts the remainder of the list.
func (s *ApplicantService) ScorePortalApplicants(ctx context.Context, jobID uint) (int, error) {
	criteria, err := s.jobs.Criteria(ctx, fmt.Sprintf("%d", jobID))
	if err != nil {
		return 0, err
	}

	pending, err := s.applicants.UnscoredPortal(ctx, jobID)
	if err != nil {
		return 0, err
	}

	scored := 0
	for i := range pending {
		applicant := &pending[i]
		if applicant.ExtractedData == nil {
			continue
		}
		// Throttle between consecutive calls regardless of how the previous
		// one ended; a failed call still consumed a provider request.
		if i > 0 {
			select {
			case <-time.After(s.delay):
			case <-ctx.Done():
				return scored, ctx.Err()
			}
		}

		analysis, err := s.scorer.Score(ctx, applicant.ExtractedData, criteria)
		if err != nil {
			if IsRateLimited(err) {
				return scored, err
			}
			logrus.WithFields(logrus.Fields{"applicant": applicant.ID, "error": err}).
				Warn("portal applicant scoring failed, continuing")
			continue
		}

		applicant.Score = analysis.Score
		applicant.Breakdown = &analysis.Breakdown
		if err := s.applicants.Save(ctx, applicant); err != nil {
			return scored, err
		}
		scored++
	}
	return scored, nil
}

// BestGPA normalizes every GPA-like string in the education entries onto a
// 0-4 scale and keeps the maximum. Unparseable strings contribute nothing; if
// none parse, the result is nil rather than zero.
func BestGPA(education []domain.Education) *float64 {
	var best *float64
	for _, edu := range education {
		norm := NormalizeGPA(edu.GPA)
		if norm == nil {
			continue
		}
		if best == nil || *norm > *best {
			best = norm
		}
	}
	return best
}

// NormalizeGPA converts a free-text GPA onto a 0-4 scale. Recognized forms:
// "value/scale", "value out of scale", "NN%", or a bare number with scale
// inference (≤4 already 4-scale, ≤10 assume 10-scale, ≤100 assume percent).
// Anything else yields nil, never a guess.
func NormalizeGPA(raw string) *float64 {
	s := strings.ReplaceAll(strings.TrimSpace(strings.ToLower(raw)), ",", ".")
	if s == "" {
		return nil
	}

	if m := gpaDenomRe.FindStringSubmatch(s); m != nil {
		val, err1 := strconv.ParseFloat(m[1], 64)
		scale, err2 := strconv.ParseFloat(m[3], 64)
		if err1 != nil || err2 != nil || scale <= 0 {
			return nil
		}
		return gpaValue(val / scale * 4)
	}

	if m := gpaPercentRe.FindStringSubmatch(s); m != nil {
		val, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return nil
		}
		return gpaValue(val / 100 * 4)
	}

	m := gpaNumberRe.FindStringSubmatch(s)
	if m == nil {
		return nil
	}
	val, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return nil
	}
	switch {
	case val >= 0 && val <= 4:
		return gpaValue(val)
	case val > 4 && val <= 10:
		return gpaValue(val / 10 * 4)
	case val > 10 && val <= 100:
		return gpaValue(val / 100 * 4)
	}
	return nil
}

func gpaValue(v float64) *float64 {
	rounded := math.Round(v*100) / 100
	if rounded < 0 || rounded > 4 {
		return nil
	}
	return &rounded
}
