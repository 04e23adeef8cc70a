package engine_test

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/talentflow/talentflow-backend/internal/cvprocessing/engine"
)

func fixedClock() time.Time {
	return time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
}

const englishResume = `JOHN SMITH
Senior Software Engineer | Boston, MA
john.smith@example.com | +1 (617) 555-0142
linkedin.com/in/john-smith-dev

SUMMARY
Seasoned engineer who ships reliable backend systems.

WORK EXPERIENCE

Senior Software Engineer | Acme Corp | Boston
January 2019 - Present
• Designed distributed services in Go and Python
• Led a team of five engineers
• Reduced infrastructure cost by 30%

Software Engineer | Initech Solutions
March 2015 - December 2018
• Built REST API services with Django
• Maintained PostgreSQL and Redis clusters

EDUCATION
Master of Science in Computer Science, 2015
Boston University

SKILLS
Python, Go, Docker, Kubernetes, PostgreSQL, Leadership, Communication

LANGUAGES
English, French

CERTIFICATIONS
• AWS Certified Solutions Architect, 2021
`

func TestEngine_Extract_EnglishResume(t *testing.T) {
	e := engine.New(engine.WithClock(fixedClock))
	profile := e.Extract(englishResume)

	if got := profile.PersonalInfo.FullName; got != "John Smith" {
		t.Errorf("FullName = %q, want John Smith", got)
	}
	if got := profile.PersonalInfo.Email; got != "john.smith@example.com" {
		t.Errorf("Email = %q", got)
	}
	if got := profile.PersonalInfo.Phone; got != "16175550142" {
		t.Errorf("Phone = %q, want 16175550142", got)
	}
	if got := profile.PersonalInfo.LinkedIn; got != "https://www.linkedin.com/in/john-smith-dev" {
		t.Errorf("LinkedIn = %q", got)
	}
	if got := profile.PersonalInfo.Position; !strings.Contains(got, "Software Engineer") {
		t.Errorf("Position = %q, want a software engineer title", got)
	}
	if profile.PersonalInfo.Age != nil || profile.PersonalInfo.Gender != nil {
		t.Error("Age and Gender must stay null")
	}

	if got := profile.Metadata.DetectedLanguage; got != "en" {
		t.Errorf("DetectedLanguage = %q, want en", got)
	}

	if len(profile.Experience) != 2 {
		t.Fatalf("Experience entries = %d, want 2", len(profile.Experience))
	}
	first := profile.Experience[0]
	if first.StartDate != "January 2019" {
		t.Errorf("StartDate = %q", first.StartDate)
	}
	if !strings.EqualFold(first.EndDate, "present") {
		t.Errorf("EndDate = %q, want Present kept verbatim", first.EndDate)
	}
	// 2019 to the pinned clock year 2026.
	if first.Duration != "7 years" {
		t.Errorf("Duration = %q, want 7 years", first.Duration)
	}
	if !strings.Contains(first.Description, "Designed distributed services") {
		t.Errorf("Description = %q, want the first bullet in it", first.Description)
	}
	if first.Company != "Acme Corp" {
		t.Errorf("Company = %q, want Acme Corp", first.Company)
	}

	if len(profile.Education) == 0 {
		t.Fatal("want at least one education entry")
	}
	if got := profile.Education[0].EndDate; got != "2015" {
		t.Errorf("education EndDate = %q, want 2015", got)
	}
	if got := profile.Education[0].FieldOfStudy; got != "Computer Science" {
		t.Errorf("education FieldOfStudy = %q, want Computer Science", got)
	}

	for _, want := range []string{"python", "django"} {
		if !containsFold(profile.Skills.Technical, want) {
			t.Errorf("Technical skills %v missing %q", profile.Skills.Technical, want)
		}
	}
	for _, want := range []string{"docker", "kubernetes", "postgresql"} {
		if !containsFold(profile.Skills.Tools, want) {
			t.Errorf("Tools %v missing %q", profile.Skills.Tools, want)
		}
	}
	if !containsFold(profile.Skills.Soft, "leadership") {
		t.Errorf("Soft skills %v missing leadership", profile.Skills.Soft)
	}

	if !reflect.DeepEqual(profile.Languages, []string{"english", "french"}) {
		t.Errorf("Languages = %v, want [english french]", profile.Languages)
	}

	if len(profile.Certifications) != 1 {
		t.Fatalf("Certifications = %v, want one entry", profile.Certifications)
	}
	cert := profile.Certifications[0]
	if cert.Name != "AWS Certified Solutions Architect" {
		t.Errorf("certification Name = %q", cert.Name)
	}
	if cert.Date != "2021" {
		t.Errorf("certification Date = %q, want 2021", cert.Date)
	}
	if cert.Issuer != "" {
		t.Errorf("certification Issuer = %q, want empty", cert.Issuer)
	}

	// 7 + 3 years across two entries.
	if got := profile.Metadata.TotalExperienceYears; got != 10 {
		t.Errorf("TotalExperienceYears = %d, want 10", got)
	}
	if got := profile.Metadata.SeniorityLevel; got != "Lead/Principal" {
		t.Errorf("SeniorityLevel = %q, want Lead/Principal", got)
	}
	if got := profile.Metadata.Industry; got != "Software Development" {
		t.Errorf("Industry = %q, want Software Development", got)
	}
	if !containsFold(profile.Metadata.Keywords, "python") || !containsFold(profile.Metadata.Keywords, "english") {
		t.Errorf("Keywords = %v, want skills and languages in the union", profile.Metadata.Keywords)
	}

	if profile.ConfidenceScore != 0.95 {
		t.Errorf("ConfidenceScore = %f, want capped 0.95", profile.ConfidenceScore)
	}
	if profile.PhotoDetected {
		t.Error("PhotoDetected must be false for text input")
	}
}

const frenchResume = `Marie Dupont
Développeuse Full Stack Senior
marie.dupont@exemple.fr | 06 12 34 56 78

Expérience professionnelle

Développeuse Full Stack | Capgemini | Lyon
Janvier 2021 - Présent
• Développé des applications web avec React et Node.js
• Réalisé la migration vers Docker

Formation
Master informatique, 2020
Université de Lyon

Compétences
JavaScript, React, Node.js, Docker, Travail d'équipe

Langues
Français, Anglais, Espagnol
`

func TestEngine_Extract_FrenchResume(t *testing.T) {
	e := engine.New(engine.WithClock(fixedClock))
	profile := e.Extract(frenchResume)

	if got := profile.Metadata.DetectedLanguage; got != "fr" {
		t.Errorf("DetectedLanguage = %q, want fr", got)
	}
	if got := profile.PersonalInfo.FullName; got != "Marie Dupont" {
		t.Errorf("FullName = %q, want Marie Dupont", got)
	}
	if got := profile.PersonalInfo.Phone; got != "0612345678" {
		t.Errorf("Phone = %q, want 0612345678", got)
	}
	if len(profile.Experience) != 1 {
		t.Fatalf("Experience = %v, want one entry", profile.Experience)
	}
	if got := profile.Experience[0].EndDate; !strings.EqualFold(got, "présent") {
		t.Errorf("EndDate = %q, want Présent", got)
	}
	if !reflect.DeepEqual(profile.Languages, []string{"french", "english", "spanish"}) {
		t.Errorf("Languages = %v", profile.Languages)
	}
	if len(profile.Education) == 0 || profile.Education[0].EndDate != "2020" {
		t.Errorf("Education = %v, want a 2020 master entry", profile.Education)
	}
}

func TestEngine_Extract_EmptyInput(t *testing.T) {
	e := engine.New()

	for _, input := range []string{"", "   \n\n\t  "} {
		profile := e.Extract(input)
		if profile.PersonalInfo.FullName != "Name Not Found" {
			t.Errorf("FullName = %q, want sentinel", profile.PersonalInfo.FullName)
		}
		if profile.ConfidenceScore != 0 {
			t.Errorf("ConfidenceScore = %f, want 0", profile.ConfidenceScore)
		}
		if profile.Metadata.DetectedLanguage != "mixed" {
			t.Errorf("DetectedLanguage = %q, want mixed", profile.Metadata.DetectedLanguage)
		}
		if profile.Metadata.LanguageConfidence != 0.5 {
			t.Errorf("LanguageConfidence = %f, want 0.5", profile.Metadata.LanguageConfidence)
		}
	}
}

func TestEngine_Extract_GarbageInputDoesNotPanic(t *testing.T) {
	e := engine.New()

	inputs := []string{
		"\x00\x01\x02 binary garbage \xff\xfe",
		strings.Repeat("@@@ ", 5000),
		"no headers here, just a rambling paragraph about nothing in particular",
	}
	for _, input := range inputs {
		profile := e.Extract(input)
		if profile.ConfidenceScore < 0 || profile.ConfidenceScore > 0.95 {
			t.Errorf("ConfidenceScore = %f out of range", profile.ConfidenceScore)
		}
	}
}

func TestEngine_Extract_Deterministic(t *testing.T) {
	e := engine.New(engine.WithClock(fixedClock))

	a := e.Extract(englishResume)
	for i := 0; i < 5; i++ {
		b := e.Extract(englishResume)
		if !reflect.DeepEqual(a, b) {
			t.Fatalf("extraction is not deterministic: run %d differs", i)
		}
	}
}

func TestEngine_Extract_JSONSlicesNeverNull(t *testing.T) {
	e := engine.New()
	profile := e.Extract("nothing useful")

	data, err := json.Marshal(profile)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(data), `:null,`) &&
		!strings.Contains(string(data), `"age":null`) {
		t.Errorf("unexpected null in JSON: %s", data)
	}
	for _, field := range []string{`"education":[]`, `"experience":[]`, `"technical":[]`, `"languages":[]`, `"certifications":[]`, `"internships":[]`} {
		if !strings.Contains(string(data), field) {
			t.Errorf("JSON %s missing empty slice %s", data, field)
		}
	}
}

func TestEngine_Extract_SpacedCapsName(t *testing.T) {
	e := engine.New()

	profile := e.Extract("J O H N  S M I T H\nSoftware Engineer with ten years of experience\njohn@example.com")
	if got := profile.PersonalInfo.FullName; got != "John Smith" {
		t.Errorf("FullName = %q, want John Smith", got)
	}
}

func TestEngine_Extract_PhoneRules(t *testing.T) {
	e := engine.New()

	tests := []struct {
		name string
		text string
		want string
	}{
		{"nine digits rejected", "call 123 456 789 anytime", ""},
		{"ten digits accepted", "call 0612345678 anytime", "0612345678"},
		{"ssn-like suffix rejected", "ref 123 45 6789-1234 is not a phone", ""},
		{"international formatted", "tel: +33 6 12 34 56 78", "33612345678"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := e.Extract(tt.text)
			if got := profile.PersonalInfo.Phone; got != tt.want {
				t.Errorf("Phone = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEngine_Extract_EmailRules(t *testing.T) {
	e := engine.New()

	tests := []struct {
		name string
		text string
		want string
	}{
		{"plain", "contact: jane.doe@example.org", "jane.doe@example.org"},
		{"uppercased input", "JANE.DOE@EXAMPLE.ORG", "jane.doe@example.org"},
		{"digit-tail local rejected", "badge 12345@example.org only", ""},
		{"glued id prefix", "id42jane@example.org", "id42jane@example.org"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := e.Extract(tt.text)
			if got := profile.PersonalInfo.Email; got != tt.want {
				t.Errorf("Email = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEngine_Extract_NoSectionHeaders(t *testing.T) {
	e := engine.New(engine.WithClock(fixedClock))

	profile := e.Extract(`JANE DOE
jane.doe@example.com
Worked on various contracts 2019 - 2022
• AWS Certified Solutions Architect
Master of Science, 2018`)

	if got := profile.PersonalInfo.FullName; got != "Jane Doe" {
		t.Errorf("FullName = %q, want Jane Doe", got)
	}
	if got := profile.PersonalInfo.Email; got != "jane.doe@example.com" {
		t.Errorf("Email = %q", got)
	}
	if len(profile.Experience) != 0 {
		t.Errorf("Experience = %v, want none without an experience section", profile.Experience)
	}
	if len(profile.Certifications) != 0 {
		t.Errorf("Certifications = %v, want none without a certifications section", profile.Certifications)
	}
	if len(profile.Education) != 0 {
		t.Errorf("Education = %v, want none without an education section", profile.Education)
	}
	if len(profile.Internships) != 0 {
		t.Errorf("Internships = %v, want none without a projects section", profile.Internships)
	}
}

func TestEngine_Extract_IndustryEmptyWithoutKeywords(t *testing.T) {
	e := engine.New()

	profile := e.Extract(`OLIVIA STONE
olivia.stone@example.org

SKILLS
Rigueur, Autonomie`)

	if got := profile.Metadata.Industry; got != "" {
		t.Errorf("Industry = %q, want empty when no bucket keyword matches", got)
	}
}

func TestEngine_Extract_DurationAlwaysPluralYears(t *testing.T) {
	e := engine.New(engine.WithClock(fixedClock))

	profile := e.Extract(`ALAN TURING
alan@example.com

EXPERIENCE
Developer | First Shop
2020 - 2021
Clerk | Corner Store
2019 - 2019`)

	if len(profile.Experience) != 2 {
		t.Fatalf("Experience entries = %d, want 2", len(profile.Experience))
	}
	if got := profile.Experience[0].Duration; got != "1 years" {
		t.Errorf("Duration = %q, want 1 years", got)
	}
	if got := profile.Experience[1].Duration; got != "0 years" {
		t.Errorf("Duration = %q, want 0 years", got)
	}
}

func TestEngine_Extract_SkillInMultipleCategories(t *testing.T) {
	e := engine.New()

	profile := e.Extract("SKILLS\nMySQL, Python")

	if !containsFold(profile.Skills.Technical, "mysql") {
		t.Errorf("Technical = %v, mysql matches the technical family too", profile.Skills.Technical)
	}
	if !containsFold(profile.Skills.Tools, "mysql") {
		t.Errorf("Tools = %v, missing mysql", profile.Skills.Tools)
	}
	if containsFold(profile.Skills.Tools, "python") {
		t.Errorf("Tools = %v, python is technical only", profile.Skills.Tools)
	}
}

func TestEngine_Extract_SummaryTemplate(t *testing.T) {
	e := engine.New(engine.WithClock(fixedClock))

	profile := e.Extract(englishResume)

	summary := profile.ProfessionalSummary
	if !strings.HasPrefix(summary, "John Smith, working as Senior Software Engineer in Software Development.") {
		t.Errorf("summary = %q, want name, position and industry up front", summary)
	}
	for _, want := range []string{
		"2 professional experience(s).",
		"1 educational qualification(s).",
		"Skilled in: ",
		"Languages: english, french.",
	} {
		if !strings.Contains(summary, want) {
			t.Errorf("summary = %q, missing %q", summary, want)
		}
	}
}

func TestEngine_Extract_GazetteerLocation(t *testing.T) {
	e := engine.New()

	profile := e.Extract(`PIERRE DURAND
Développeur Web
Lyon
pierre.durand@exemple.fr`)

	if got := profile.PersonalInfo.Location; got != "Lyon" {
		t.Errorf("Location = %q, want Lyon", got)
	}
}

func containsFold(list []string, want string) bool {
	for _, s := range list {
		if strings.EqualFold(s, want) {
			return true
		}
	}
	return false
}
