package engine

import (
	"strings"

	"github.com/talentflow/talentflow-backend/internal/cvprocessing/domain"
)

// extractProjects walks the projects/internships section as a small
// state machine: a year-bearing line opens an entry with the stripped
// line as name and the year as date, and following lines append to its
// description until the next year-bearing line.
func extractProjects(ctx *Context) []domain.ProjectEntry {
	text := ctx.Sections.Get(SectionProjects)
	if text == "" {
		return []domain.ProjectEntry{}
	}

	entries := make([]domain.ProjectEntry, 0, 4)
	var current *domain.ProjectEntry
	var desc []string

	flush := func() {
		if current == nil {
			return
		}
		current.Description = strings.Join(desc, " ")
		entries = append(entries, *current)
		current, desc = nil, nil
	}

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(bulletPrefix.ReplaceAllString(raw, ""))
		if line == "" {
			continue
		}
		if year := yearRe.FindString(line); year != "" {
			flush()
			name := strings.Trim(yearRe.ReplaceAllString(line, ""), " \t,;|-–—():")
			current = &domain.ProjectEntry{Name: name, Date: lastYearString(line)}
			continue
		}
		if current != nil {
			desc = append(desc, line)
		}
	}
	flush()

	return entries
}

func lastYearString(line string) string {
	years := yearRe.FindAllString(line, -1)
	if len(years) == 0 {
		return ""
	}
	return years[len(years)-1]
}
