package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"job-board/domain"
)

func TestExperienceScoresSaturation(t *testing.T) {
	cases := []struct {
		name string
		info domain.PersonalInfo
		want domain.ExperienceScore
	}{
		{
			name: "no experience",
			info: domain.PersonalInfo{},
			want: domain.ExperienceScore{},
		},
		{
			name: "half the professional threshold",
			info: domain.PersonalInfo{ProfessionalJob: 12},
			want: domain.ExperienceScore{Professional: 15, Total: 15},
		},
		{
			name: "exactly at every threshold",
			info: domain.PersonalInfo{ProfessionalJob: 24, Freelancing: 12, Internship: 6},
			want: domain.ExperienceScore{Professional: 30, Freelancing: 8, Internship: 7, Total: 45},
		},
		{
			name: "far past the thresholds still capped",
			info: domain.PersonalInfo{ProfessionalJob: 240, Freelancing: 120, Internship: 60},
			want: domain.ExperienceScore{Professional: 30, Freelancing: 8, Internship: 7, Total: 45},
		},
		{
			name: "fractional months round to two decimals",
			info: domain.PersonalInfo{Internship: 1},
			want: domain.ExperienceScore{Internship: 1.17, Total: 1.17},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ExperienceScores(tc.info))
		})
	}
}

func TestBuildAnalysisClampsModelNumbers(t *testing.T) {
	raw := modelScores{
		RoleFit:         15, // over the cap of 10
		Education:       -3, // negative
		Location:        5,
		Other:           99,
		MatchPercentage: 250,
	}
	raw.Skills.Technical = 30
	raw.Skills.Tools = 4
	raw.Skills.Soft = 3

	a := buildAnalysis(domain.PersonalInfo{}, raw)

	assert.Equal(t, float64(18), a.Breakdown.Skills.Technical)
	assert.Equal(t, float64(25), a.Breakdown.Skills.Total)
	assert.Equal(t, float64(10), a.Breakdown.RoleFit)
	assert.Equal(t, float64(0), a.Breakdown.Education)
	assert.Equal(t, float64(5), a.Breakdown.Location)
	assert.Equal(t, float64(5), a.Breakdown.Other)
	assert.Equal(t, 100, a.MatchPercentage)
}

func TestBuildAnalysisNeverReturnsNilLists(t *testing.T) {
	a := buildAnalysis(domain.PersonalInfo{}, modelScores{})
	assert.NotNil(t, a.Strengths)
	assert.NotNil(t, a.Gaps)
	assert.NotNil(t, a.Recommendations)
	assert.NotNil(t, a.MatchedSkills)
}

func TestCompositeZeroExperienceAllCategoriesMaxed(t *testing.T) {
	// With every model-assessed cap maxed and no experience at all the
	// composite lands at 55, the ceiling a fresh graduate can reach.
	raw := modelScores{RoleFit: 10, Education: 10, Location: 5, Other: 5}
	raw.Skills.Technical = 18
	raw.Skills.Tools = 4
	raw.Skills.Soft = 3

	a := buildAnalysis(domain.PersonalInfo{}, raw)
	assert.Equal(t, 55, a.Score)
}

func TestCompositeFullMarks(t *testing.T) {
	raw := modelScores{RoleFit: 10, Education: 10, Location: 5, Other: 5}
	raw.Skills.Technical = 18
	raw.Skills.Tools = 4
	raw.Skills.Soft = 3

	info := domain.PersonalInfo{ProfessionalJob: 24, Freelancing: 12, Internship: 6}
	a := buildAnalysis(info, raw)
	assert.Equal(t, 100, a.Score)
}

func TestCompositeBounds(t *testing.T) {
	assert.Equal(t, 0, Composite(domain.ScoreBreakdown{}))

	over := domain.ScoreBreakdown{
		Experience: domain.ExperienceScore{Total: 45},
		Skills:     domain.SkillsScore{Total: 25},
		RoleFit:    10, Education: 10, Location: 5, Other: 5,
	}
	// Nominal caps sum to exactly 100; the bound holds even if a future cap
	// change pushes the sum over.
	over.Other += 3
	assert.Equal(t, 100, Composite(over))
}

func TestScorerScore(t *testing.T) {
	gw := &fakeGateway{steps: []gatewayStep{{resp: `{
		"skills": {"technical": 12, "tools": 3, "soft": 2},
		"roleFit": 8, "education": 7, "location": 5, "other": 2,
		"matchPercentage": 78,
		"matchDetails": "solid backend background",
		"strengths": ["Go"], "gaps": ["Kubernetes"],
		"recommendations": ["interview"], "matchedSkills": ["Go", "MySQL"],
		"experienceMatch": "3 years relevant"
	}`}}}
	scorer := NewScorer(gw)

	profile := &domain.CandidateProfile{
		PersonalInfo: domain.PersonalInfo{FullName: "Dewi", ProfessionalJob: 36},
	}
	a, err := scorer.Score(t.Context(), profile, domain.JobCriteria{Description: "Backend Engineer"})
	assert.NoError(t, err)

	assert.Equal(t, float64(30), a.Breakdown.Experience.Professional)
	assert.Equal(t, float64(17), a.Breakdown.Skills.Total)
	// 30 + 17 + 8 + 7 + 5 + 2
	assert.Equal(t, 69, a.Score)
	assert.Equal(t, 78, a.MatchPercentage)
	assert.Equal(t, []string{"Go", "MySQL"}, a.MatchedSkills)
}
