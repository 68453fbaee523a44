package domain

// ScoreBreakdown holds the per-category sub-scores that make up a composite
// candidate score. Every sub-score is clamped into its cap before the
// breakdown is built, so values stored here are already trusted.
type ScoreBreakdown struct {
	Experience ExperienceScore `json:"experience"`
	Skills     SkillsScore     `json:"skills"`
	RoleFit    float64         `json:"roleFit"`
	Education  float64         `json:"education"`
	Location   float64         `json:"location"`
	Other      float64         `json:"other"`
}

// ExperienceScore is the deterministic half of the breakdown, computed from
// month counts without any model involvement.
type ExperienceScore struct {
	Professional float64 `json:"professional"`
	Freelancing  float64 `json:"freelancing"`
	Internship   float64 `json:"internship"`
	Total        float64 `json:"total"`
}

type SkillsScore struct {
	Technical float64 `json:"technical"`
	Tools     float64 `json:"tools"`
	Soft      float64 `json:"soft"`
	Total     float64 `json:"total"`
}

// Analysis is the full scoring result attached to a batch resume.
type Analysis struct {
	Score           int            `json:"score"`
	MatchPercentage int            `json:"matchPercentage"`
	MatchDetails    string         `json:"matchDetails"`
	Breakdown       ScoreBreakdown `json:"scoreBreakdown"`
	Strengths       []string       `json:"strengths"`
	Gaps            []string       `json:"gaps"`
	Recommendations []string       `json:"recommendations"`
	MatchedSkills   []string       `json:"matchedSkills"`
	ExperienceMatch string         `json:"experienceMatch"`
}
