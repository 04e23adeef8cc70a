package domain

import "time"

// DocumentType identifies the kind of document submitted for extraction.
type DocumentType string

const (
	DocumentTypeResume  DocumentType = "resume"
	DocumentTypeUnknown DocumentType = "unknown"
)

// Detected resume languages.
const (
	LanguageFrench  = "fr"
	LanguageEnglish = "en"
	LanguageMixed   = "mixed"
)

// PersonalInfo holds the candidate's identity and contact details.
// Age and Gender are never inferred from the document and stay nil.
type PersonalInfo struct {
	FullName string  `json:"full_name"`
	Position string  `json:"position"`
	Email    string  `json:"email"`
	Phone    string  `json:"phone"`
	Location string  `json:"location"`
	LinkedIn string  `json:"linkedin"`
	Age      *int    `json:"age"`
	Gender   *string `json:"gender"`
}

// EducationEntry is one degree or diploma found in the education
// section. A single graduation year lands in EndDate.
type EducationEntry struct {
	Degree       string `json:"degree"`
	Institution  string `json:"institution"`
	FieldOfStudy string `json:"field_of_study"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
}

// ExperienceEntry is one dated work engagement. EndDate keeps the
// document's wording for ongoing roles ("Present", "Présent").
type ExperienceEntry struct {
	Position    string `json:"position"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
}

// SkillSet groups extracted skills by category.
type SkillSet struct {
	Technical []string `json:"technical"`
	Soft      []string `json:"soft"`
	Tools     []string `json:"tools"`
}

// CertificationEntry is one certification line. Issuer is never
// populated by the rule-based engine and stays empty.
type CertificationEntry struct {
	Name   string `json:"name"`
	Issuer string `json:"issuer"`
	Date   string `json:"date"`
}

// ProjectEntry is a project or internship block.
type ProjectEntry struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Date        string `json:"date"`
}

// Metadata carries metrics derived from the extracted profile.
type Metadata struct {
	TotalExperienceYears int      `json:"total_experience_years"`
	SeniorityLevel       string   `json:"seniority_level"`
	Industry             string   `json:"industry"`
	Keywords             []string `json:"keywords"`
	DetectedLanguage     string   `json:"detected_language"`
	LanguageConfidence   float64  `json:"language_confidence"`
}

// CandidateProfile is the structured result of a resume extraction.
// Slices are always non-nil so they serialize as [] rather than null.
type CandidateProfile struct {
	PersonalInfo        PersonalInfo         `json:"personal_info"`
	Education           []EducationEntry     `json:"education"`
	Experience          []ExperienceEntry    `json:"experience"`
	Skills              SkillSet             `json:"skills"`
	Languages           []string             `json:"languages"`
	Certifications      []CertificationEntry `json:"certifications"`
	Internships         []ProjectEntry       `json:"internships"`
	ProfessionalSummary string               `json:"professional_summary"`
	Metadata            Metadata             `json:"metadata"`
	ConfidenceScore     float64              `json:"confidence_score"`
	PhotoDetected       bool                 `json:"photo_detected"`
}

// NewCandidateProfile returns a profile with every slice initialized.
func NewCandidateProfile() CandidateProfile {
	return CandidateProfile{
		PersonalInfo: PersonalInfo{FullName: NameNotFound},
		Education:    []EducationEntry{},
		Experience:   []ExperienceEntry{},
		Skills: SkillSet{
			Technical: []string{},
			Soft:      []string{},
			Tools:     []string{},
		},
		Languages:      []string{},
		Certifications: []CertificationEntry{},
		Internships:    []ProjectEntry{},
		Metadata: Metadata{
			Keywords: []string{},
		},
	}
}

// NameNotFound is the sentinel used when no candidate name is detected.
const NameNotFound = "Name Not Found"

// Job statuses for asynchronous extraction requests.
const (
	JobStatusProcessing = "processing"
	JobStatusCompleted  = "completed"
	JobStatusFailed     = "failed"
)

// ExtractionJob tracks an asynchronous extraction request.
type ExtractionJob struct {
	ID           string            `json:"id"`
	Status       string            `json:"status"`
	DocumentType DocumentType      `json:"document_type"`
	Profile      *CandidateProfile `json:"profile,omitempty"`
	Error        string            `json:"error,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
	CompletedAt  *time.Time        `json:"completed_at,omitempty"`
}

// ExtractionRecord is a persisted extraction result.
type ExtractionRecord struct {
	ID               string    `db:"id" json:"id"`
	CandidateName    string    `db:"candidate_name" json:"candidate_name"`
	DetectedLanguage string    `db:"detected_language" json:"detected_language"`
	ConfidenceScore  float64   `db:"confidence_score" json:"confidence_score"`
	Profile          []byte    `db:"profile" json:"-"`
	Status           string    `db:"status" json:"status"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
}

// LanguageCount is a per-language extraction tally for stats.
type LanguageCount struct {
	Language string `db:"detected_language" json:"language"`
	Count    int    `db:"count" json:"count"`
}

// ExtractionRequest is the inbound payload for starting an extraction.
type ExtractionRequest struct {
	Text         string `json:"text" validate:"required,max=1048576"`
	DocumentType string `json:"document_type" validate:"omitempty,oneof=resume unknown"`
}
