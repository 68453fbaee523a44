package usecase

import (
	"errors"
	"net/http"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"job-board/domain"
)

const (
	profileJSON = `{"personalInfo": {"fullName": "Budi", "email": "budi@example.com", "professionalJob": 24}}`
	scoreJSON   = `{"skills":{"technical":12,"tools":3,"soft":2},"roleFit":8,"education":7,"location":5,"other":2,"matchPercentage":80}`
)

func newTestAnalyzer(gw *fakeGateway, batches BatchStore, apps ApplicantStore) *Analyzer {
	structurer := NewStructurer(gw, &fakeExtractor{text: "resume text"})
	scorer := NewScorer(gw)
	svc := NewApplicantService(apps, &fakeJobStore{}, scorer)
	svc.delay = 0
	a := NewAnalyzer(structurer, scorer, batches, svc)
	a.delay = 0
	return a
}

func stagedCVs(n int) []StagedCV {
	staging := NewStagingStore()
	session := staging.NewSession()
	for i := 0; i < n; i++ {
		staging.Add(session, "cv.pdf", "2026-08-30", []byte("raw"))
	}
	return staging.List(session)
}

func runParams() RunParams {
	return RunParams{
		SessionID: "s1",
		BatchCode: "BATCH0001",
		BatchName: "August intake",
		JobID:     7,
		Criteria:  domain.JobCriteria{Description: "Backend Engineer"},
	}
}

func TestRunHappyPath(t *testing.T) {
	gw := &fakeGateway{steps: []gatewayStep{
		{resp: profileJSON}, {resp: scoreJSON},
		{resp: profileJSON}, {resp: scoreJSON},
	}}
	batches := newMemBatchStore()
	apps := &memApplicantStore{}
	analyzer := newTestAnalyzer(gw, batches, apps)

	var emitted []CVResult
	err := analyzer.Run(t.Context(), runParams(), stagedCVs(2), func(r CVResult) error {
		emitted = append(emitted, r)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, emitted, 2)

	for _, r := range emitted {
		assert.Equal(t, domain.ResumeStatusCompleted, r.Analysis.Status)
		assert.True(t, r.Analysis.Locked)
		require.NotNil(t, r.Analysis.Analysis)
		// 30 experience + 17 skills + 8 + 7 + 5 + 2
		assert.Equal(t, 69, r.Analysis.Score)
	}

	batch, err := batches.Get(t.Context(), 7, "BATCH0001")
	require.NoError(t, err)
	assert.Equal(t, domain.BatchStateCompleted, batch.State())
	require.Len(t, batch.Resumes, 2)
	assert.True(t, batch.Resumes[0].Locked)
	assert.Equal(t, domain.ResumeStatusCompleted, batch.Resumes[0].Status)

	// Only one applicant: both CVs carry the same extracted email.
	bulk, err := apps.ListByJob(t.Context(), 7, domain.SourceBulk)
	require.NoError(t, err)
	require.Len(t, bulk, 1)
	assert.Equal(t, "budi@example.com", bulk[0].Email)
	assert.Equal(t, 69, bulk[0].Score)
}

func TestRunIsolatesPerCVFailures(t *testing.T) {
	gw := &fakeGateway{steps: []gatewayStep{
		{resp: "not json at all"}, // CV 1 fails at structuring
		{resp: profileJSON}, {resp: scoreJSON}, // CV 2 succeeds
	}}
	batches := newMemBatchStore()
	analyzer := newTestAnalyzer(gw, batches, &memApplicantStore{})

	var emitted []CVResult
	err := analyzer.Run(t.Context(), runParams(), stagedCVs(2), func(r CVResult) error {
		emitted = append(emitted, r)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, emitted, 2)

	assert.Equal(t, domain.ResumeStatusFailed, emitted[0].Analysis.Status)
	assert.NotEmpty(t, emitted[0].Analysis.Error)
	assert.Nil(t, emitted[0].ExtractedData)
	assert.Equal(t, domain.ResumeStatusCompleted, emitted[1].Analysis.Status)

	batch, err := batches.Get(t.Context(), 7, "BATCH0001")
	require.NoError(t, err)
	assert.Equal(t, domain.BatchStateCompleted, batch.State())
	require.Len(t, batch.Resumes, 2)
	assert.Equal(t, domain.ResumeStatusFailed, batch.Resumes[0].Status)
	assert.False(t, batch.Resumes[0].Locked)
}

func TestRunAbortsOnRateLimit(t *testing.T) {
	rateLimit := &openai.APIError{
		HTTPStatusCode: http.StatusTooManyRequests,
		Message:        "rate limit reached",
	}
	gw := &fakeGateway{steps: []gatewayStep{
		{resp: profileJSON}, {resp: scoreJSON}, // CV 1 succeeds
		{err: rateLimit}, // CV 2 hits the limit
	}}
	batches := newMemBatchStore()
	analyzer := newTestAnalyzer(gw, batches, &memApplicantStore{})

	var emitted []CVResult
	err := analyzer.Run(t.Context(), runParams(), stagedCVs(3), func(r CVResult) error {
		emitted = append(emitted, r)
		return nil
	})
	require.Error(t, err)
	assert.True(t, IsRateLimited(err))

	// CV 3 was never attempted.
	assert.Equal(t, 3, gw.calls)
	require.Len(t, emitted, 2)
	assert.Equal(t, domain.ResumeStatusCompleted, emitted[0].Analysis.Status)
	assert.Equal(t, domain.ResumeStatusFailed, emitted[1].Analysis.Status)

	batch, getErr := batches.Get(t.Context(), 7, "BATCH0001")
	require.NoError(t, getErr)
	assert.Equal(t, domain.BatchStateFailed, batch.State())
	require.Len(t, batch.Resumes, 2)
}

func TestRunEmptyWorklistCreatesNothing(t *testing.T) {
	batches := newMemBatchStore()
	analyzer := newTestAnalyzer(&fakeGateway{}, batches, &memApplicantStore{})

	err := analyzer.Run(t.Context(), runParams(), nil, func(CVResult) error { return nil })
	require.NoError(t, err)

	_, err = batches.Get(t.Context(), 7, "BATCH0001")
	assert.Error(t, err)
}

func TestIsRateLimited(t *testing.T) {
	assert.True(t, IsRateLimited(&openai.APIError{HTTPStatusCode: http.StatusTooManyRequests}))
	assert.True(t, IsRateLimited(&openai.RequestError{HTTPStatusCode: http.StatusTooManyRequests, Err: assert.AnError}))
	assert.True(t, IsRateLimited(errors.New("Rate limit exceeded for model llama-3.1-8b-instant")))
	assert.False(t, IsRateLimited(assert.AnError))
	assert.False(t, IsRateLimited(nil))
}
