package engine

import (
	"regexp"
	"strings"

	"github.com/talentflow/talentflow-backend/internal/cvprocessing/domain"
)

var fieldOfStudyRe = regexp.MustCompile(`(?i)\s+(?:in|en)\s+`)

// extractEducation builds one entry per degree-bearing block of the
// education section. A block is a degree-keyword or dated line plus the
// lines that follow it until the next block starts.
func extractEducation(ctx *Context) []domain.EducationEntry {
	text := ctx.Sections.Get(SectionEducation)
	if text == "" {
		return []domain.EducationEntry{}
	}

	lines := strings.Split(text, "\n")
	entries := make([]domain.EducationEntry, 0, 4)

	var current *domain.EducationEntry
	flush := func() {
		if current != nil && (current.Degree != "" || current.Institution != "") {
			entries = append(entries, *current)
		}
		current = nil
	}

	for _, raw := range lines {
		line := strings.TrimSpace(bulletPrefix.ReplaceAllString(raw, ""))
		if line == "" {
			flush()
			continue
		}

		isDegree := degreeKeywordRe.MatchString(line)
		isInstitution := institutionKeywordRe.MatchString(line)

		// A new degree line starts a new block.
		if isDegree && (current == nil || current.Degree != "") {
			flush()
			current = &domain.EducationEntry{}
		}
		if current == nil {
			if !isInstitution && !lineIsDated(line) && lastYear(line) == 0 {
				continue
			}
			current = &domain.EducationEntry{}
		}

		start, end, stripped := splitYearRange(line)
		if current.StartDate == "" && start != "" {
			current.StartDate = start
		}
		if current.EndDate == "" && end != "" {
			current.EndDate = end
		}
		switch {
		case isDegree && current.Degree == "":
			current.Degree, current.FieldOfStudy = splitFieldOfStudy(stripped)
		case isInstitution && current.Institution == "":
			current.Institution = stripped
		case current.Degree == "" && !isInstitution:
			current.Degree, current.FieldOfStudy = splitFieldOfStudy(stripped)
		case current.Institution == "":
			current.Institution = stripped
		}
	}
	flush()

	return entries
}

// splitYearRange pulls the years out of a line: a YYYY - YYYY range
// maps to start and end, a lone year is a graduation year and maps to
// end only. The returned rest has all date text removed from its edges.
func splitYearRange(line string) (start, end, rest string) {
	years := yearRe.FindAllString(line, -1)
	switch len(years) {
	case 0:
	case 1:
		end = years[0]
	default:
		start, end = years[0], years[len(years)-1]
	}
	rest = line
	for _, re := range dateRangeRes {
		rest = re.ReplaceAllString(rest, "")
	}
	rest = yearRe.ReplaceAllString(rest, "")
	rest = strings.Trim(rest, " \t,;|-–—()")
	return start, end, rest
}

// splitFieldOfStudy cuts a degree line at the first "in"/"en" joiner:
// "Master of Science in Computer Science" becomes the degree "Master
// of Science" and the field "Computer Science".
func splitFieldOfStudy(line string) (degree, field string) {
	loc := fieldOfStudyRe.FindStringIndex(line)
	if loc == nil {
		return line, ""
	}
	degree = strings.TrimSpace(line[:loc[0]])
	field = strings.TrimSpace(line[loc[1]:])
	if degree == "" {
		return line, ""
	}
	return degree, field
}
