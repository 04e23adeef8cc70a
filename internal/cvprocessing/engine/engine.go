// Package engine implements the rule-based resume extraction pipeline.
// It turns raw resume text (French, English, or mixed) into a structured
// candidate profile using regex and keyword heuristics only. Extraction
// is deterministic and never fails: malformed input degrades to empty
// fields rather than errors.
package engine

import (
	"regexp"
	"strings"
	"time"

	"github.com/talentflow/talentflow-backend/internal/cvprocessing/domain"
)

// Context carries the shared state every extractor reads. It is built
// once per document and not mutated afterwards.
type Context struct {
	Text     string
	Lines    []string
	Language string
	Sections SectionMap
	Now      time.Time
}

// Engine runs the full extraction pipeline.
type Engine struct {
	detector  *LanguageDetector
	segmenter *SectionSegmenter
	now       func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the engine clock, used by tests to pin the
// current year for "Present" duration math.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// New builds an extraction engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		detector:  NewLanguageDetector(),
		segmenter: NewSectionSegmenter(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var (
	crlfRe       = regexp.MustCompile(`\r\n?`)
	blankRunRe   = regexp.MustCompile(`\n{3,}`)
	trailingWSRe = regexp.MustCompile(`[ \t]+\n`)
)

// normalize canonicalizes line endings, strips trailing whitespace and
// collapses runs of blank lines so line-oriented heuristics see a
// stable shape regardless of the upstream text extractor.
func normalize(text string) string {
	text = crlfRe.ReplaceAllString(text, "\n")
	text = trailingWSRe.ReplaceAllString(text, "\n")
	text = blankRunRe.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// Extract runs the complete pipeline over raw resume text and returns a
// candidate profile. It never returns an error: empty or unrecognizable
// input yields a zeroed profile with confidence 0.
func (e *Engine) Extract(text string) domain.CandidateProfile {
	profile := domain.NewCandidateProfile()

	text = normalize(text)
	if text == "" {
		profile.Metadata.DetectedLanguage = domain.LanguageMixed
		profile.Metadata.LanguageConfidence = 0.5
		profile.Metadata.SeniorityLevel = seniorityEntry
		profile.ProfessionalSummary = buildSummary(&profile)
		return profile
	}

	lang, langConf := e.detector.Detect(text)
	sections := e.segmenter.Segment(text, lang)

	ctx := &Context{
		Text:     text,
		Lines:    strings.Split(text, "\n"),
		Language: lang,
		Sections: sections,
		Now:      e.now(),
	}

	profile.PersonalInfo = extractPersonalInfo(ctx)
	profile.Experience = extractExperience(ctx)
	profile.Education = extractEducation(ctx)
	profile.Skills = extractSkills(ctx)
	profile.Languages = extractLanguages(ctx)
	profile.Certifications = extractCertifications(ctx)
	profile.Internships = extractProjects(ctx)

	profile.Metadata = deriveMetadata(&profile)
	profile.Metadata.DetectedLanguage = lang
	profile.Metadata.LanguageConfidence = langConf
	profile.ConfidenceScore = scoreConfidence(&profile)
	profile.ProfessionalSummary = buildSummary(&profile)

	return profile
}
