package testutil

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/talentflow/talentflow-backend/internal/cvprocessing/domain"
)

// ExtractionFixture represents a persisted extraction row for tests
type ExtractionFixture struct {
	ID               string
	CandidateName    string
	DetectedLanguage string
	ConfidenceScore  float64
	Profile          []byte
	Status           string
	CreatedAt        time.Time
}

// FixtureFactory creates test fixtures with sensible defaults
type FixtureFactory struct {
	sequence int
}

// NewFixtureFactory creates a new fixture factory
func NewFixtureFactory() *FixtureFactory {
	return &FixtureFactory{sequence: 0}
}

// nextSeq returns the next sequence number for unique values
func (f *FixtureFactory) nextSeq() int {
	f.sequence++
	return f.sequence
}

// Profile creates a candidate profile fixture with defaults
func (f *FixtureFactory) Profile(opts ...func(*domain.CandidateProfile)) domain.CandidateProfile {
	seq := f.nextSeq()

	profile := domain.NewCandidateProfile()
	profile.PersonalInfo.FullName = fmt.Sprintf("Candidate %d", seq)
	profile.PersonalInfo.Position = "Software Engineer"
	profile.PersonalInfo.Email = fmt.Sprintf("candidate%d@example.com", seq)
	profile.Metadata.DetectedLanguage = domain.LanguageEnglish
	profile.Metadata.LanguageConfidence = 0.9
	profile.Metadata.SeniorityLevel = "Mid Level"
	profile.Metadata.Industry = "Software Development"
	profile.ConfidenceScore = 0.6

	for _, opt := range opts {
		opt(&profile)
	}

	return profile
}

// WithCandidateName sets the profile's candidate name
func WithCandidateName(name string) func(*domain.CandidateProfile) {
	return func(p *domain.CandidateProfile) {
		p.PersonalInfo.FullName = name
	}
}

// WithLanguage sets the profile's detected language
func WithLanguage(lang string) func(*domain.CandidateProfile) {
	return func(p *domain.CandidateProfile) {
		p.Metadata.DetectedLanguage = lang
	}
}

// WithConfidence sets the profile's confidence score
func WithConfidence(score float64) func(*domain.CandidateProfile) {
	return func(p *domain.CandidateProfile) {
		p.ConfidenceScore = score
	}
}

// Extraction creates an extraction row fixture backed by a profile
func (f *FixtureFactory) Extraction(opts ...func(*domain.CandidateProfile)) ExtractionFixture {
	profile := f.Profile(opts...)
	payload, _ := json.Marshal(profile)

	return ExtractionFixture{
		ID:               uuid.New().String(),
		CandidateName:    profile.PersonalInfo.FullName,
		DetectedLanguage: profile.Metadata.DetectedLanguage,
		ConfidenceScore:  profile.ConfidenceScore,
		Profile:          payload,
		Status:           domain.JobStatusCompleted,
		CreatedAt:        time.Now(),
	}
}

// EnglishResumeText returns a small English resume for extraction tests
func EnglishResumeText() string {
	return `JOHN SMITH
Senior Software Engineer | Boston, MA
john.smith@example.com | +1 (617) 555-0142

WORK EXPERIENCE
Jan 2019 - Present
Senior Software Engineer | Acme Corp
- Led the migration of billing services to Kubernetes
- Mentored a team of four engineers

EDUCATION
Master of Science in Computer Science, 2015
Boston University

SKILLS
Python, Go, Docker, Kubernetes, PostgreSQL
`
}

// FrenchResumeText returns a small French resume for extraction tests
func FrenchResumeText() string {
	return `MARIE DUPONT
Ingénieure Logiciel | Paris
marie.dupont@example.fr | 06 12 34 56 78

EXPÉRIENCE PROFESSIONNELLE
Mars 2020 - Présent
Ingénieure Logiciel | Société Exemple
- Développement d'applications web avec Python et React

FORMATION
Master en Informatique, 2020
Université Paris-Saclay

COMPÉTENCES
Python, React, Docker
`
}
