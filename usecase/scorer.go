package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"job-board/domain"
)

// Experience saturation thresholds and caps. A candidate at or past the
// threshold months gets full category credit; below it, proportional credit.
// The three caps sum to 45, which is the experience ceiling by construction;
// there is no separate aggregate re-cap.
const (
	professionalThresholdMonths = 24
	professionalCap             = 30
	freelancingThresholdMonths  = 12
	freelancingCap              = 8
	internshipThresholdMonths   = 6
	internshipCap               = 7
)

// Caps for the model-assessed categories. Each returned number is clamped
// into its range before it is trusted.
const (
	technicalCap = 18
	toolsCap     = 4
	softCap      = 3
	roleFitCap   = 10
	educationCap = 10
	locationCap  = 5
	otherCap     = 5
)

const scoreSystemPrompt = `You are a strict recruiting analyst. Evaluate the candidate profile against the job criteria and return ONLY a valid JSON object.

Do NOT compute experience scores. Experience durations are handled separately; report months only where asked. Do not invent numbers.

Return format:
{
  "skills": { "technical": 0-18, "tools": 0-4, "soft": 0-3 },
  "roleFit": 0-10,
  "education": 0-10,
  "location": 0-5,
  "other": 0-5,
  "matchPercentage": 0-100,
  "matchDetails": "",
  "strengths": [],
  "gaps": [],
  "recommendations": [],
  "matchedSkills": [],
  "experienceMatch": ""
}`

// modelScores is the untyped-trust-boundary shape returned by the LLM stage.
type modelScores struct {
	Skills struct {
		Technical float64 `json:"technical"`
		Tools     float64 `json:"tools"`
		Soft      float64 `json:"soft"`
	} `json:"skills"`
	RoleFit         float64  `json:"roleFit"`
	Education       float64  `json:"education"`
	Location        float64  `json:"location"`
	Other           float64  `json:"other"`
	MatchPercentage float64  `json:"matchPercentage"`
	MatchDetails    string   `json:"matchDetails"`
	Strengths       []string `json:"strengths"`
	Gaps            []string `json:"gaps"`
	Recommendations []string `json:"recommendations"`
	MatchedSkills   []string `json:"matchedSkills"`
	ExperienceMatch string   `json:"experienceMatch"`
}

// Scorer combines the deterministic experience sub-score with model-assessed
// category scores into one bounded composite.
type Scorer struct {
	gateway Gateway
}

func NewScorer(gateway Gateway) *Scorer {
	return &Scorer{gateway: gateway}
}

// Score evaluates a structured profile against job criteria. Months-of-
// experience is auditable ground truth, so that half never touches the
// model; the qualitative categories are delegated to it but clamped so no
// single category can dominate.
func (s *Scorer) Score(ctx context.Context, profile *domain.CandidateProfile, criteria domain.JobCriteria) (*domain.Analysis, error) {
	criteriaJSON, err := json.Marshal(criteria)
	if err != nil {
		return nil, err
	}
	profileJSON, err := json.Marshal(profile)
	if err != nil {
		return nil, err
	}

	userPrompt := fmt.Sprintf("Job criteria:\n%s\n\nCandidate profile:\n%s", criteriaJSON, profileJSON)
	resp, err := s.gateway.Complete(ctx, scoreSystemPrompt, userPrompt, true)
	if err != nil {
		return nil, err
	}

	var raw modelScores
	if err := CoerceInto(resp, &raw); err != nil {
		return nil, err
	}

	return buildAnalysis(profile.PersonalInfo, raw), nil
}

// buildAnalysis is the deterministic tail of scoring: clamp every model
// number, fold in the experience sub-scores and bound the composite. It
// never fails.
func buildAnalysis(info domain.PersonalInfo, raw modelScores) *domain.Analysis {
	breakdown := domain.ScoreBreakdown{
		Experience: ExperienceScores(info),
		Skills: domain.SkillsScore{
			Technical: clamp(raw.Skills.Technical, technicalCap),
			Tools:     clamp(raw.Skills.Tools, toolsCap),
			Soft:      clamp(raw.Skills.Soft, softCap),
		},
		RoleFit:   clamp(raw.RoleFit, roleFitCap),
		Education: clamp(raw.Education, educationCap),
		Location:  clamp(raw.Location, locationCap),
		Other:     clamp(raw.Other, otherCap),
	}
	breakdown.Skills.Total = breakdown.Skills.Technical + breakdown.Skills.Tools + breakdown.Skills.Soft

	analysis := &domain.Analysis{
		Score:           Composite(breakdown),
		MatchPercentage: int(clamp(raw.MatchPercentage, 100)),
		MatchDetails:    raw.MatchDetails,
		Breakdown:       breakdown,
		Strengths:       raw.Strengths,
		Gaps:            raw.Gaps,
		Recommendations: raw.Recommendations,
		MatchedSkills:   raw.MatchedSkills,
		ExperienceMatch: raw.ExperienceMatch,
	}
	if analysis.Strengths == nil {
		analysis.Strengths = []string{}
	}
	if analysis.Gaps == nil {
		analysis.Gaps = []string{}
	}
	if analysis.Recommendations == nil {
		analysis.Recommendations = []string{}
	}
	if analysis.MatchedSkills == nil {
		analysis.MatchedSkills = []string{}
	}
	return analysis
}

// ExperienceScores maps month counts onto points: linear up to the threshold,
// flat after it. Each sub-cap stands alone.
func ExperienceScores(info domain.PersonalInfo) domain.ExperienceScore {
	exp := domain.ExperienceScore{
		Professional: saturate(info.ProfessionalJob, professionalThresholdMonths, professionalCap),
		Freelancing:  saturate(info.Freelancing, freelancingThresholdMonths, freelancingCap),
		Internship:   saturate(info.Internship, internshipThresholdMonths, internshipCap),
	}
	exp.Total = round2(exp.Professional + exp.Freelancing + exp.Internship)
	return exp
}

// Composite sums the clamped sub-scores and bounds the result to [0,100].
// The sub-caps already total 100 nominally; the final clamp is a safety net
// against rounding or a misbehaving model.
func Composite(b domain.ScoreBreakdown) int {
	sum := b.Experience.Total + b.Skills.Total + b.RoleFit + b.Education + b.Location + b.Other
	return int(math.Round(math.Min(100, math.Max(0, sum))))
}

func saturate(months, threshold int, capPoints float64) float64 {
	if months <= 0 {
		return 0
	}
	ratio := math.Min(float64(months)/float64(threshold), 1)
	return round2(ratio * capPoints)
}

func clamp(v, limit float64) float64 {
	return math.Min(limit, math.Max(0, v))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
