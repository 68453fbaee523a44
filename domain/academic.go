package domain

// AcademicProfile is the structured shape for long-form academic CVs
// (researcher and faculty resumes). It is returned to the caller directly and
// never persisted, so it carries no gorm tags.
type AcademicProfile struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Citations    string `json:"citations"`
	ImpactFactor string `json:"impactFactor"`
	Scholar      string `json:"scholar"`

	Education  []AcademicEducation  `json:"education"`
	Experience []AcademicExperience `json:"experience"`

	Achievements           []string `json:"achievements"`
	BookAuthorship         []string `json:"bookAuthorship"`
	JournalGuestEditor     []string `json:"journalGuestEditor"`
	ResearchPublications   []string `json:"researchPublications"`
	MSSupervised           []string `json:"mssupervised"`
	PhDStudentsSupervised  []string `json:"phdstudentsupervised"`
	ResearchProjects       []string `json:"researchProjects"`
	ProfessionalActivities []string `json:"professionalActivities"`
	ProfessionalTraining   []string `json:"professionalTraining"`
	TechnicalSkills        []string `json:"technicalSkills"`
	Memberships            []string `json:"membershipsAndOtherAssociations"`
	References             []string `json:"reference"`
}

type AcademicEducation struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Year        string `json:"year"`
}

type AcademicExperience struct {
	Role    string `json:"role"`
	Company string `json:"company"`
	Years   string `json:"years"`
}

// Normalize fills every list with its empty value so consumers never see nil.
func (p *AcademicProfile) Normalize() {
	if p.Education == nil {
		p.Education = []AcademicEducation{}
	}
	if p.Experience == nil {
		p.Experience = []AcademicExperience{}
	}
	for _, list := range []*[]string{
		&p.Achievements, &p.BookAuthorship, &p.JournalGuestEditor,
		&p.ResearchPublications, &p.MSSupervised, &p.PhDStudentsSupervised,
		&p.ResearchProjects, &p.ProfessionalActivities, &p.ProfessionalTraining,
		&p.TechnicalSkills, &p.Memberships, &p.References,
	} {
		if *list == nil {
			*list = []string{}
		}
	}
}
