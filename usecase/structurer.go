package usecase

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"job-board/domain"
)

// Text handed to the model is truncated for cost control and to stay inside
// the context window. Long-form academic profiles get a wider window.
const (
	ParseTextLimit    = 6000
	AcademicTextLimit = 15000
)

// The arithmetic example anchors "today" for the model: month-level duration
// extraction is unreliable without one.
const structurePrompt = `You are a professional CV parser. Extract data from the CV and return a VALID JSON object.

CRITICAL INSTRUCTIONS for 'personalInfo':
You must include these specific keys for the experience chart:
- "professionalJob": Total number of months in Corporate/Full-time roles.
- "internship": Total number of months in Internship roles.
- "freelancing": Total number of months in Freelance/Contract roles.

Calculation Rule: If a role is "Aug 2024 - Present" and today is Jan 2026, that is 17 months.

Return format:
{
  "personalInfo": {
    "fullName": "Name here",
    "email": "Email here",
    "phone": "Phone here",
    "location": "City, Country",
    "professionalJob": 0,
    "internship": 0,
    "freelancing": 0
  },
  "education": [{ "degree": "", "university": "", "gpa": "", "duration": "" }],
  "experience": [{ "years": "", "details": { "company": "", "position": "", "responsibilities": [] } }],
  "skills": { "technical": [], "soft": [], "tools": [] }
}`

const academicPrompt = `Extract structured academic CV info.

Return ONLY JSON:

{
  "name": "",
  "email": "",
  "phone": "",
  "citations": "",
  "impactFactor": "",
  "scholar": "",
  "education": [{"degree":"","institution":"","year":""}],
  "experience": [{"role":"","company":"","years":""}],
  "achievements": [],
  "bookAuthorship": [],
  "journalGuestEditor": [],
  "researchPublications": [],
  "mssupervised": [],
  "phdstudentsupervised": [],
  "researchProjects": [],
  "professionalActivities": [],
  "professionalTraining": [],
  "technicalSkills": [],
  "membershipsAndOtherAssociations": [],
  "reference": []
}`

// Structurer turns a raw resume file into a normalized candidate profile.
type Structurer struct {
	gateway   Gateway
	extractor Extractor
}

func NewStructurer(gateway Gateway, extractor Extractor) *Structurer {
	return &Structurer{gateway: gateway, extractor: extractor}
}

// Structure extracts text from the file, asks the model for the profile
// schema and normalizes the result. It fails with ErrExtractionFailed when
// the document yields no text and with *CoerceError when the model response
// cannot be parsed.
func (s *Structurer) Structure(ctx context.Context, data []byte, filename string) (*domain.CandidateProfile, error) {
	text, err := s.extractor.Extract(data, filename)
	if err != nil {
		logrus.WithFields(logrus.Fields{"filename": filename, "error": err}).Warn("CV text extraction failed")
		return nil, ErrExtractionFailed
	}
	if strings.TrimSpace(text) == "" {
		return nil, ErrExtractionFailed
	}

	resp, err := s.gateway.Complete(ctx, structurePrompt, Truncate(text, ParseTextLimit), true)
	if err != nil {
		return nil, err
	}

	var profile domain.CandidateProfile
	if err := CoerceInto(resp, &profile); err != nil {
		logrus.WithField("filename", filename).Warn("model returned unparseable profile JSON")
		return nil, err
	}

	profile.Normalize()
	return &profile, nil
}

// StructureAcademic parses a long-form academic CV (publications, supervision
// records, impact metrics) into the academic schema. These documents run much
// longer than job resumes, so they get the wider truncation window.
func (s *Structurer) StructureAcademic(ctx context.Context, data []byte, filename string) (*domain.AcademicProfile, error) {
	text, err := s.extractor.Extract(data, filename)
	if err != nil {
		logrus.WithFields(logrus.Fields{"filename": filename, "error": err}).Warn("CV text extraction failed")
		return nil, ErrExtractionFailed
	}
	if strings.TrimSpace(text) == "" {
		return nil, ErrExtractionFailed
	}

	resp, err := s.gateway.Complete(ctx, academicPrompt, Truncate(text, AcademicTextLimit), true)
	if err != nil {
		return nil, err
	}

	var profile domain.AcademicProfile
	if err := CoerceInto(resp, &profile); err != nil {
		logrus.WithField("filename", filename).Warn("model returned unparseable academic profile JSON")
		return nil, err
	}

	profile.Normalize()
	return &profile, nil
}

// Truncate bounds text to at most n bytes, cutting on a rune boundary.
func Truncate(text string, n int) string {
	if len(text) <= n {
		return text
	}
	for n > 0 && !utf8.RuneStart(text[n]) {
		n--
	}
	return text[:n]
}
