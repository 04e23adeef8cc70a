package engine

import (
	"fmt"
	"strings"

	"github.com/talentflow/talentflow-backend/internal/cvprocessing/domain"
)

// buildSummary assembles the fallback professional summary from the
// extracted fields. Every clause is dropped when its source is empty,
// so a sparse profile yields a short sentence rather than one with
// holes in it.
func buildSummary(p *domain.CandidateProfile) string {
	var sentences []string

	var head strings.Builder
	if name := p.PersonalInfo.FullName; name != "" && name != domain.NameNotFound {
		head.WriteString(name)
	}
	switch {
	case p.PersonalInfo.Position != "":
		if head.Len() > 0 {
			head.WriteString(", ")
		}
		head.WriteString("working as " + p.PersonalInfo.Position)
	case p.Metadata.SeniorityLevel != "":
		if head.Len() > 0 {
			head.WriteString(", ")
		}
		head.WriteString(p.Metadata.SeniorityLevel + " professional")
	}
	if head.Len() > 0 {
		if p.Metadata.Industry != "" {
			head.WriteString(" in " + p.Metadata.Industry)
		}
		sentences = append(sentences, head.String()+".")
	}

	if n := len(p.Experience); n > 0 {
		sentences = append(sentences, fmt.Sprintf("%d professional experience(s).", n))
	}
	if n := len(p.Education); n > 0 {
		sentences = append(sentences, fmt.Sprintf("%d educational qualification(s).", n))
	}
	if top := topSkills(p.Skills, 6); len(top) > 0 {
		sentences = append(sentences, "Skilled in: "+strings.Join(top, ", ")+".")
	}
	if len(p.Languages) > 0 {
		sentences = append(sentences, "Languages: "+strings.Join(p.Languages, ", ")+".")
	}

	return strings.Join(sentences, " ")
}

// topSkills takes the first n distinct skills, technical first. Skills
// sitting in more than one category appear once.
func topSkills(s domain.SkillSet, n int) []string {
	out := make([]string, 0, n)
	seen := map[string]bool{}
	for _, list := range [][]string{s.Technical, s.Tools, s.Soft} {
		for _, skill := range list {
			if len(out) == n {
				return out
			}
			if key := strings.ToLower(skill); !seen[key] {
				seen[key] = true
				out = append(out, skill)
			}
		}
	}
	return out
}
