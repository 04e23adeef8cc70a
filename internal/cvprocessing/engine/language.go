package engine

import (
	"regexp"
	"strings"

	"github.com/talentflow/talentflow-backend/internal/cvprocessing/domain"
)

// Language markers. Section headers, date words and common resume terms
// that rarely cross the language boundary. Accented forms are listed
// verbatim; no diacritic folding is applied.
var frenchMarkers = []string{
	"expérience", "expériences", "professionnelle", "professionnelles",
	"formation", "formations", "compétences", "compétence", "diplôme",
	"diplômes", "langues", "stage", "stages", "projets", "projet",
	"certifications", "profil", "coordonnées", "année", "années",
	"depuis", "janvier", "février", "mars", "avril", "mai", "juin",
	"juillet", "août", "septembre", "octobre", "novembre", "décembre",
	"actuellement", "présent", "ingénieur", "développeur", "chef",
	"licence", "maîtrise", "baccalauréat", "entreprise", "société",
	"gestion", "équipe", "responsable", "université", "école",
}

var englishMarkers = []string{
	"experience", "work", "employment", "education", "skills", "skill",
	"degree", "languages", "internship", "internships", "projects",
	"project", "certifications", "summary", "objective", "profile",
	"contact", "references", "january", "february", "march", "april",
	"june", "july", "august", "september", "october", "november",
	"december", "present", "current", "engineer", "developer", "manager",
	"bachelor", "master", "company", "management", "team", "university",
	"college", "school", "achievements", "responsibilities",
}

// LanguageDetector scores resume text against bilingual keyword
// lexicons and decides between fr, en and mixed.
type LanguageDetector struct {
	french  []*regexp.Regexp
	english []*regexp.Regexp
}

// NewLanguageDetector compiles the marker patterns once.
func NewLanguageDetector() *LanguageDetector {
	return &LanguageDetector{
		french:  compileMarkers(frenchMarkers),
		english: compileMarkers(englishMarkers),
	}
}

func compileMarkers(words []string) []*regexp.Regexp {
	res := make([]*regexp.Regexp, 0, len(words))
	for _, w := range words {
		res = append(res, regexp.MustCompile(`(?i)`+wordPattern(w)))
	}
	return res
}

// Detect returns the detected language and a confidence in [0,1].
// A language wins only when its score exceeds 1.5x the other's;
// anything closer is reported as mixed. When neither lexicon matches
// at all the text is mixed with confidence 0.5.
func (d *LanguageDetector) Detect(text string) (string, float64) {
	lower := strings.ToLower(text)

	var fr, en int
	for _, re := range d.french {
		fr += len(re.FindAllStringIndex(lower, -1))
	}
	for _, re := range d.english {
		en += len(re.FindAllStringIndex(lower, -1))
	}

	if fr == 0 && en == 0 {
		return domain.LanguageMixed, 0.5
	}

	confidence := float64(max(fr, en)) / float64(fr+en)
	switch {
	case float64(fr) > 1.5*float64(en):
		return domain.LanguageFrench, confidence
	case float64(en) > 1.5*float64(fr):
		return domain.LanguageEnglish, confidence
	default:
		return domain.LanguageMixed, confidence
	}
}
