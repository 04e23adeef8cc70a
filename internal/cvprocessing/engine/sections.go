package engine

import (
	"regexp"
	"sort"
	"strings"

	"github.com/talentflow/talentflow-backend/internal/cvprocessing/domain"
)

// Section categories in match priority order. When a line matches the
// header pattern of several categories, the first one in this order
// claims it and later categories cannot reclaim the line.
const (
	SectionExperience     = "experience"
	SectionEducation      = "education"
	SectionSkills         = "skills"
	SectionLanguages      = "languages"
	SectionCertifications = "certifications"
	SectionProjects       = "projects"
	SectionSummary        = "summary"
)

var sectionOrder = []string{
	SectionExperience,
	SectionEducation,
	SectionSkills,
	SectionLanguages,
	SectionCertifications,
	SectionProjects,
	SectionSummary,
}

// Section is a contiguous span of resume text under one header.
type Section struct {
	Category   string
	HeaderLine int
	Text       string
}

// SectionMap indexes sections by category.
type SectionMap map[string]Section

// Get returns the section text for a category, empty when absent.
func (m SectionMap) Get(category string) string {
	return m[category].Text
}

// Has reports whether the category was found in the document.
func (m SectionMap) Has(category string) bool {
	_, ok := m[category]
	return ok
}

// Header patterns are matched against a whole trimmed line, tolerating
// trailing colons and decorations. French resumes get the fr family,
// English and mixed resumes the en family.
var frenchSectionPatterns = map[string]*regexp.Regexp{
	SectionExperience:     sectionHeaderRe(`exp[ée]riences?(\s+professionnelles?)?|parcours(\s+professionnel)?|emplois?`),
	SectionEducation:      sectionHeaderRe(`formations?(\s+acad[ée]miques?)?|[ée]tudes|dipl[ôo]mes?|scolarit[ée]`),
	SectionSkills:         sectionHeaderRe(`comp[ée]tences?(\s+(techniques?|cl[ée]s))?|savoir[-\s]faire|technologies`),
	SectionLanguages:      sectionHeaderRe(`langues?(\s+parl[ée]es)?`),
	SectionCertifications: sectionHeaderRe(`certifications?|certificats?|accr[ée]ditations?`),
	SectionProjects:       sectionHeaderRe(`projets?(\s+(personnels|acad[ée]miques))?|stages?|r[ée]alisations?`),
	SectionSummary:        sectionHeaderRe(`profil|r[ée]sum[ée]|[àa]\s+propos|objectifs?|pr[ée]sentation`),
}

var englishSectionPatterns = map[string]*regexp.Regexp{
	SectionExperience:     sectionHeaderRe(`(work|professional|employment)\s+(experience|history)|experiences?|career(\s+history)?`),
	SectionEducation:      sectionHeaderRe(`education(al)?(\s+background)?|academics?|qualifications?`),
	SectionSkills:         sectionHeaderRe(`(technical\s+|key\s+|core\s+)?skills(\s+(&|and)\s+\w+)?|competenc(ies|es)|technologies|expertise`),
	SectionLanguages:      sectionHeaderRe(`languages?(\s+spoken)?`),
	SectionCertifications: sectionHeaderRe(`certifications?|certificates?|licenses?(\s+(&|and)\s+certifications?)?`),
	SectionProjects:       sectionHeaderRe(`(personal\s+|academic\s+|key\s+)?projects?|internships?|portfolio`),
	SectionSummary:        sectionHeaderRe(`(professional\s+|career\s+|executive\s+)?summary|profile|objective|about(\s+me)?`),
}

// sectionHeaderRe anchors a header body to the full line, allowing
// leading bullets and trailing colon or dash decorations.
func sectionHeaderRe(body string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)^[\s•\-_=*]*(` + body + `)[\s:：\-_=*]*$`)
}

// SectionSegmenter splits resume text into category-labeled spans.
type SectionSegmenter struct{}

// NewSectionSegmenter returns a segmenter.
func NewSectionSegmenter() *SectionSegmenter {
	return &SectionSegmenter{}
}

type headerCandidate struct {
	line     int
	category string
}

// Segment locates section headers and assigns each category the span
// of lines between its header and the next header (or EOF). A repeated
// header for the same category overwrites the earlier span, so the last
// occurrence wins.
func (s *SectionSegmenter) Segment(text, language string) SectionMap {
	patterns := englishSectionPatterns
	if language == domain.LanguageFrench {
		patterns = frenchSectionPatterns
	}

	lines := strings.Split(text, "\n")
	candidates := make([]headerCandidate, 0, 8)
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || len(trimmed) > 60 {
			continue
		}
		for _, cat := range sectionOrder {
			if patterns[cat].MatchString(trimmed) {
				candidates = append(candidates, headerCandidate{line: i, category: cat})
				break
			}
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].line < candidates[j].line
	})

	sections := make(SectionMap, len(candidates))
	for i, c := range candidates {
		end := len(lines)
		if i+1 < len(candidates) {
			end = candidates[i+1].line
		}
		sections[c.category] = Section{
			Category:   c.category,
			HeaderLine: c.line,
			Text:       strings.TrimSpace(strings.Join(lines[c.line+1:end], "\n")),
		}
	}
	return sections
}

// isSectionHeader reports whether a line matches any known header in
// either language family.
func isSectionHeader(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || len(trimmed) > 60 {
		return false
	}
	for _, cat := range sectionOrder {
		if englishSectionPatterns[cat].MatchString(trimmed) ||
			frenchSectionPatterns[cat].MatchString(trimmed) {
			return true
		}
	}
	return false
}
