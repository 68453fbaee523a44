package domain

// CandidateProfile is the normalized shape produced by the CV structurer.
// The four top-level keys are always present after Normalize, even when the
// model omits them.
type CandidateProfile struct {
	PersonalInfo PersonalInfo `json:"personalInfo"`
	Education    []Education  `json:"education"`
	Experience   []Experience `json:"experience"`
	Skills       Skills       `json:"skills"`
}

type PersonalInfo struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`

	// Experience month counters. The structuring prompt asks the model for
	// these explicitly; missing values default to 0.
	ProfessionalJob int `json:"professionalJob"`
	Internship      int `json:"internship"`
	Freelancing     int `json:"freelancing"`
}

type Education struct {
	Degree     string `json:"degree"`
	University string `json:"university"`
	GPA        string `json:"gpa"`
	Duration   string `json:"duration"`
}

type Experience struct {
	Years   string           `json:"years"`
	Details ExperienceDetail `json:"details"`
}

type ExperienceDetail struct {
	Company          string   `json:"company"`
	Position         string   `json:"position"`
	Responsibilities []string `json:"responsibilities"`
}

type Skills struct {
	Technical []string `json:"technical"`
	Soft      []string `json:"soft"`
	Tools     []string `json:"tools"`
}

// Normalize fills every optional field with its zero value so downstream
// consumers never see nil lists. All defaults for the profile contract live
// here and nowhere else.
func (p *CandidateProfile) Normalize() {
	if p.PersonalInfo.ProfessionalJob < 0 {
		p.PersonalInfo.ProfessionalJob = 0
	}
	if p.PersonalInfo.Internship < 0 {
		p.PersonalInfo.Internship = 0
	}
	if p.PersonalInfo.Freelancing < 0 {
		p.PersonalInfo.Freelancing = 0
	}
	if p.Education == nil {
		p.Education = []Education{}
	}
	if p.Experience == nil {
		p.Experience = []Experience{}
	}
	for i := range p.Experience {
		if p.Experience[i].Details.Responsibilities == nil {
			p.Experience[i].Details.Responsibilities = []string{}
		}
	}
	if p.Skills.Technical == nil {
		p.Skills.Technical = []string{}
	}
	if p.Skills.Soft == nil {
		p.Skills.Soft = []string{}
	}
	if p.Skills.Tools == nil {
		p.Skills.Tools = []string{}
	}
}
