package engine

import (
	"regexp"
	"strings"

	"github.com/talentflow/talentflow-backend/internal/cvprocessing/domain"
)

type compiledIndustry struct {
	name string
	res  []*regexp.Regexp
}

var compiledIndustries = compileIndustries()

func compileIndustries() []compiledIndustry {
	out := make([]compiledIndustry, 0, len(industryBuckets))
	for _, b := range industryBuckets {
		res := make([]*regexp.Regexp, 0, len(b.keywords))
		for _, kw := range b.keywords {
			res = append(res, regexp.MustCompile(`(?i)`+wordPattern(kw)))
		}
		out = append(out, compiledIndustry{name: b.name, res: res})
	}
	return out
}

// deriveMetadata computes the profile metrics from the extracted
// fields: total years, seniority ladder, industry bucket and keywords.
func deriveMetadata(p *domain.CandidateProfile) domain.Metadata {
	meta := domain.Metadata{Keywords: []string{}}

	meta.TotalExperienceYears = totalYears(p.Experience)
	meta.SeniorityLevel = seniorityLevel(meta.TotalExperienceYears, p)
	meta.Industry = detectIndustry(p)
	meta.Keywords = buildKeywords(p)

	return meta
}

func totalYears(entries []domain.ExperienceEntry) int {
	total := 0
	for _, e := range entries {
		for _, f := range strings.Fields(e.Duration) {
			if v := atoiSafe(f); v > 0 {
				total += v
				break
			}
		}
	}
	return total
}

func atoiSafe(s string) int {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0
		}
		n = n*10 + int(r-'0')
	}
	return n
}

// seniorityLevel ranks the candidate. Lead-keyword titles push the
// band up one notch in the middle of the ladder.
func seniorityLevel(years int, p *domain.CandidateProfile) string {
	hasEducation := len(p.Education) > 0
	leadTitle := false
	for _, e := range p.Experience {
		if leadTitleRe.MatchString(e.Position) {
			leadTitle = true
			break
		}
	}
	if leadTitleRe.MatchString(p.PersonalInfo.Position) {
		leadTitle = true
	}

	advanced := false
	for _, e := range p.Education {
		if advancedDegreeRe.MatchString(e.Degree) {
			advanced = true
			break
		}
	}

	switch {
	case years == 0 && !hasEducation:
		return seniorityEntry
	case years < 2 && !advanced:
		return seniorityJunior
	case years < 5:
		if leadTitle {
			return seniorityMidSenior
		}
		return seniorityMid
	case years < 10:
		if leadTitle {
			return senioritySenior
		}
		return seniorityMidSenior
	default:
		return seniorityLead
	}
}

// detectIndustry scores the bucket keyword lists over the extracted
// skills and experience descriptions. Highest score wins, the
// first-declared bucket breaks ties, and no hit at all means no
// industry.
func detectIndustry(p *domain.CandidateProfile) string {
	var b strings.Builder
	for _, list := range [][]string{p.Skills.Technical, p.Skills.Soft, p.Skills.Tools} {
		for _, s := range list {
			b.WriteString(s)
			b.WriteByte('\n')
		}
	}
	for _, e := range p.Experience {
		b.WriteString(e.Description)
		b.WriteByte('\n')
	}
	text := b.String()

	best, bestScore := "", 0
	for _, bucket := range compiledIndustries {
		score := 0
		for _, re := range bucket.res {
			score += len(re.FindAllStringIndex(text, -1))
		}
		if score > bestScore {
			best, bestScore = bucket.name, score
		}
	}
	return best
}

// buildKeywords is the union of all extracted skills and spoken
// languages, deduplicated case-insensitively.
func buildKeywords(p *domain.CandidateProfile) []string {
	out := []string{}
	seen := map[string]bool{}
	add := func(kw string) {
		kw = strings.TrimSpace(kw)
		key := strings.ToLower(kw)
		if kw == "" || seen[key] {
			return
		}
		seen[key] = true
		out = append(out, kw)
	}

	for _, list := range [][]string{p.Skills.Technical, p.Skills.Soft, p.Skills.Tools} {
		for _, s := range list {
			add(s)
		}
	}
	for _, l := range p.Languages {
		add(l)
	}
	return out
}

// scoreConfidence weighs how much of the profile was found. The cap
// keeps a heuristic extraction from ever claiming certainty.
func scoreConfidence(p *domain.CandidateProfile) float64 {
	score := 0.0
	if p.PersonalInfo.FullName != "" && p.PersonalInfo.FullName != domain.NameNotFound {
		score += 0.20
	}
	if p.PersonalInfo.Email != "" {
		score += 0.15
	}
	if p.PersonalInfo.Phone != "" {
		score += 0.10
	}
	if len(p.Experience) > 0 {
		score += 0.25
	}
	if len(p.Education) > 0 {
		score += 0.15
	}
	if skillCount(p.Skills) > 5 {
		score += 0.15
	}
	if score > 0.95 {
		score = 0.95
	}
	return score
}
