package engine

import (
	"regexp"
	"strings"

	"github.com/talentflow/talentflow-backend/internal/cvprocessing/domain"
)

var certTrailingYearRe = regexp.MustCompile(`[\s,(\-–—]*((?:19|20)\d{2})\)?\s*$`)

// extractCertifications lists bullet lines from the certifications
// section, skipping degree-shaped lines that belong to education. A
// trailing year becomes the entry date. Documents without a
// certifications header yield no entries.
func extractCertifications(ctx *Context) []domain.CertificationEntry {
	out := []domain.CertificationEntry{}
	sec := ctx.Sections.Get(SectionCertifications)
	if sec == "" {
		return out
	}

	seen := map[string]bool{}
	for _, raw := range strings.Split(sec, "\n") {
		if !bulletLineRe.MatchString(raw) {
			continue
		}
		line := strings.TrimSpace(bulletPrefix.ReplaceAllString(raw, ""))
		if line == "" || degreeKeywordRe.MatchString(line) {
			continue
		}

		date := ""
		if m := certTrailingYearRe.FindStringSubmatch(line); m != nil {
			date = m[1]
			line = strings.TrimSpace(certTrailingYearRe.ReplaceAllString(line, ""))
		}
		if line == "" {
			continue
		}

		key := strings.ToLower(line)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, domain.CertificationEntry{Name: line, Date: date})
	}
	return out
}
