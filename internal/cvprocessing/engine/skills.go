package engine

import (
	"regexp"
	"strings"

	"github.com/talentflow/talentflow-backend/internal/cvprocessing/domain"
)

type compiledSkill struct {
	name string
	re   *regexp.Regexp
}

var compiledSkills = compileSkills()

func compileSkills() []compiledSkill {
	out := make([]compiledSkill, 0, len(skillLexicon))
	for _, name := range skillLexicon {
		out = append(out, compiledSkill{
			name: name,
			re:   regexp.MustCompile(`(?i)` + wordPattern(name)),
		})
	}
	return out
}

// extractSkills matches the lexicon against the skills section and the
// whole document and unions the hits. Each found skill is then tested
// against the three category families independently and appended to
// every category that matches, so one skill may appear in several
// categories. Dedup is case-insensitive within a category and lexicon
// order is preserved, which keeps the output deterministic.
func extractSkills(ctx *Context) domain.SkillSet {
	set := domain.SkillSet{
		Technical: []string{},
		Soft:      []string{},
		Tools:     []string{},
	}

	haystacks := []string{ctx.Text}
	if sec := ctx.Sections.Get(SectionSkills); sec != "" {
		haystacks = []string{sec, ctx.Text}
	}

	seen := make(map[string]bool, 32)
	for _, s := range compiledSkills {
		key := strings.ToLower(s.name)
		if seen[key] {
			continue
		}
		for _, h := range haystacks {
			if s.re.MatchString(h) {
				seen[key] = true
				categorizeSkill(&set, s.name)
				break
			}
		}
	}

	return set
}

func categorizeSkill(set *domain.SkillSet, name string) {
	matched := false
	if technicalSkillRe.MatchString(name) {
		set.Technical = append(set.Technical, name)
		matched = true
	}
	if softSkillRe.MatchString(name) {
		set.Soft = append(set.Soft, name)
		matched = true
	}
	if toolSkillRe.MatchString(name) {
		set.Tools = append(set.Tools, name)
		matched = true
	}
	if !matched {
		set.Technical = append(set.Technical, name)
	}
}

func skillCount(s domain.SkillSet) int {
	return len(s.Technical) + len(s.Soft) + len(s.Tools)
}
