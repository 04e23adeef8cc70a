package engine

import (
	"regexp"
	"strings"

	"github.com/talentflow/talentflow-backend/internal/cvprocessing/domain"
)

// Email detection. RE2 has no lookbehind, so the pattern accepts a
// leading non-local character (or start of text) and captures the
// address itself. The local part must end in a letter, which rejects
// ID-number prefixes glued onto an address.
var emailRe = regexp.MustCompile(`(?:^|[^0-9A-Za-z._%+-])([A-Za-z0-9._%+-]*[A-Za-z]@[A-Za-z0-9.-]+\.[A-Za-z]{2,})`)

// Phone candidates. Validation (digit count, SSN-like suffix) happens
// after the match since RE2 has no lookahead either.
var phoneRe = regexp.MustCompile(`\+?\d[\d \t().\-/]{7,20}\d`)

var (
	ssnSuffixRe = regexp.MustCompile(`^-\d{4}`)
	ssnShapeRe  = regexp.MustCompile(`^\d{3}[ .\-]\d{2}[ .\-]\d{4}(?:-\d{4})?$`)
)

var linkedinRe = regexp.MustCompile(`(?i)(?:linkedin\.com/in/|lnkd\.in/|linkedin\s*:\s*)([A-Za-z0-9\-_%]+)`)

var digitRe = regexp.MustCompile(`\d`)

func extractPersonalInfo(ctx *Context) domain.PersonalInfo {
	info := domain.PersonalInfo{FullName: domain.NameNotFound}

	info.Email = extractEmail(ctx.Text)
	info.Phone = extractPhone(ctx.Text)
	info.LinkedIn = extractLinkedIn(ctx.Text)

	name, nameLine := extractName(ctx)
	if name != "" {
		info.FullName = name
	}
	info.Position = extractPosition(ctx, nameLine)
	info.Location = extractLocation(ctx)

	return info
}

func extractEmail(text string) string {
	m := emailRe.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return strings.ToLower(m[1])
}

// extractPhone returns the first candidate with 10 to 15 digits,
// normalized to bare digits. SSN-shaped numbers (3-2-4 digit groups,
// with or without a trailing -XXXX extension) and candidates
// immediately followed by a dash and four digits are identifiers, not
// phones, and are skipped.
func extractPhone(text string) string {
	for _, loc := range phoneRe.FindAllStringIndex(text, -1) {
		candidate := text[loc[0]:loc[1]]
		if ssnSuffixRe.MatchString(text[loc[1]:]) || ssnShapeRe.MatchString(candidate) {
			continue
		}
		digits := digitRe.FindAllString(candidate, -1)
		if len(digits) < 10 || len(digits) > 15 {
			continue
		}
		return strings.Join(digits, "")
	}
	return ""
}

func extractLinkedIn(text string) string {
	m := linkedinRe.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return "https://www.linkedin.com/in/" + m[1]
}

var (
	spacedCapsRe = regexp.MustCompile(`^[A-ZÀ-Ý](?: +[A-ZÀ-Ý])+$`)
	allCapsRe    = regexp.MustCompile(`^[A-ZÀ-Ý][A-ZÀ-Ý'\- ]+[A-ZÀ-Ý]$`)
	titleCaseRe  = regexp.MustCompile(`^[A-ZÀ-Ý][a-zà-ÿ'\-]+(?: [A-ZÀ-Ý][a-zà-ÿ'\-]+){1,3}$`)
	mixedNameRe  = regexp.MustCompile(`^[A-ZÀ-Ý][A-Za-zÀ-ÿ'\-]+(?: [A-ZÀ-Ý][A-Za-zÀ-ÿ'\-]+){1,3}$`)
)

// Words that disqualify a line from being a name.
var nameStopRe = regexp.MustCompile(`(?i)\b(curriculum|vitae|resume|cv|email|e-mail|phone|tel|mobile|adresse|address|street|avenue|boulevard|rue|page|confidential)\b`)

// extractName tries three strategies in order and returns the found
// name with the line it was found on, or ("", -1).
func extractName(ctx *Context) (string, int) {
	lines := ctx.Lines

	// Phase 1: capitalized header lines near the top.
	limit := min(len(lines), 15)
	for i := 0; i < limit; i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" || isSectionHeader(line) || digitRe.MatchString(line) {
			continue
		}
		head := line
		if idx := strings.Index(head, "|"); idx > 0 {
			head = strings.TrimSpace(head[:idx])
		}

		// Letter-spaced caps: J O H N  S M I T H
		if spacedCapsRe.MatchString(head) && len(strings.ReplaceAll(head, " ", "")) >= 4 {
			if name := collapseSpacedCaps(head); name != "" {
				return name, i
			}
		}

		// Plain ALL CAPS name line.
		if allCapsRe.MatchString(head) && len(head) >= 8 && len(head) <= 50 {
			words := strings.Fields(head)
			if len(words) >= 2 && len(words) <= 4 &&
				!nameStopRe.MatchString(head) && !roleKeywordRe.MatchString(head) &&
				!insideCapsBlock(lines, i) {
				return titleCase(head), i
			}
		}
	}

	// Phase 2: strict Title-Case line before the first contact line.
	stop := firstContactLine(lines)
	if stop < 0 || stop > 40 {
		stop = min(len(lines), 40)
	}
	for i := 0; i < stop; i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" || isSectionHeader(line) {
			continue
		}
		if titleCaseRe.MatchString(line) &&
			!nameStopRe.MatchString(line) && !roleKeywordRe.MatchString(line) {
			return line, i
		}
	}

	// Phase 3: looser mixed-case scan over the top of the document.
	seen := 0
	for i := 0; i < len(lines) && seen < 30; i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		if isSectionHeader(line) {
			seen++
			continue
		}
		seen++
		if mixedNameRe.MatchString(line) && len(line) <= 50 &&
			!nameStopRe.MatchString(line) && !roleKeywordRe.MatchString(line) {
			return titleCase(line), i
		}
	}

	return "", -1
}

// collapseSpacedCaps turns "J O H N  S M I T H" into "John Smith".
// Words are separated by runs of two or more spaces.
func collapseSpacedCaps(line string) string {
	words := regexp.MustCompile(`\s{2,}`).Split(line, -1)
	if len(words) < 2 || len(words) > 4 {
		return ""
	}
	parts := make([]string, 0, len(words))
	for _, w := range words {
		letters := strings.ReplaceAll(w, " ", "")
		if letters == "" {
			return ""
		}
		parts = append(parts, letters)
	}
	return titleCase(strings.Join(parts, " "))
}

// insideCapsBlock reports whether the line sits inside a run of long
// all-caps lines, which marks a decorative banner or address block
// rather than a name.
func insideCapsBlock(lines []string, i int) bool {
	long := func(j int) bool {
		if j < 0 || j >= len(lines) {
			return false
		}
		l := strings.TrimSpace(lines[j])
		return len(l) >= 20 && allCapsRe.MatchString(l)
	}
	return long(i-1) || long(i+1) || len(strings.TrimSpace(lines[i])) >= 20 && long(i)
}

func firstContactLine(lines []string) int {
	for i, line := range lines {
		if strings.Contains(line, "@") || extractPhone(line) != "" {
			return i
		}
	}
	return -1
}

func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = upperFirst(w)
	}
	return strings.Join(words, " ")
}

func upperFirst(w string) string {
	runes := []rune(w)
	if len(runes) == 0 {
		return w
	}
	runes[0] = []rune(strings.ToUpper(string(runes[0])))[0]
	return string(runes)
}

// extractPosition looks for a role title either on the name line after
// a pipe, or on a nearby standalone line carrying a role keyword.
func extractPosition(ctx *Context, nameLine int) string {
	if nameLine >= 0 && nameLine < len(ctx.Lines) {
		if segs := strings.Split(ctx.Lines[nameLine], "|"); len(segs) > 1 {
			for _, seg := range segs[1:] {
				seg = strings.TrimSpace(seg)
				if roleKeywordRe.MatchString(seg) && validPosition(seg) {
					return seg
				}
			}
		}
	}

	limit := min(len(ctx.Lines), 15)
	for i := 0; i < limit; i++ {
		if i == nameLine {
			continue
		}
		line := strings.TrimSpace(ctx.Lines[i])
		if line == "" || isSectionHeader(line) {
			continue
		}
		if !roleKeywordRe.MatchString(line) {
			continue
		}
		// Pipe-decorated contact lines carry the title in one segment.
		for _, seg := range strings.Split(line, "|") {
			seg = strings.TrimSpace(seg)
			if roleKeywordRe.MatchString(seg) && validPosition(seg) {
				return seg
			}
		}
		if validPosition(line) {
			return line
		}
	}
	return ""
}

func validPosition(s string) bool {
	return len(s) >= 10 && len(s) <= 200 && !strings.Contains(s, "@")
}

var (
	cityRegionRe   = regexp.MustCompile(`\b([A-ZÀ-Ý][a-zà-ÿ\-]+(?: [A-ZÀ-Ý][a-zà-ÿ\-]+)?,\s*(?:[A-Z]{2}\b|[A-ZÀ-Ý][a-zà-ÿ\-]+))`)
	locationLineRe = regexp.MustCompile(`(?i)^(?:location|address|adresse|localisation|ville)\s*[:\-]\s*(.+)$`)
	bulletPlaceRe  = regexp.MustCompile(`^l\s+([A-ZÀ-Ý][A-Za-zà-ÿ\-]+(?: [A-ZÀ-Ý][A-Za-zà-ÿ\-]+)*)\s*$`)
)

// extractLocation tries, in order: a City, Region pattern on a contact
// line, a known city from the gazetteer near the top of the document or
// an explicitly labeled address line, and finally the most frequent
// place-like "l <Name>" bullet anywhere in the text (a common PDF
// artifact for location bullets).
func extractLocation(ctx *Context) string {
	limit := min(len(ctx.Lines), 20)
	for i := 0; i < limit; i++ {
		line := ctx.Lines[i]
		if strings.Contains(line, "@") || extractPhone(line) != "" ||
			strings.Contains(line, "|") {
			if m := cityRegionRe.FindStringSubmatch(line); m != nil {
				return strings.TrimSpace(m[1])
			}
		}
	}

	for i := 0; i < limit; i++ {
		if m := knownCityRe.FindString(ctx.Lines[i]); m != "" {
			return m
		}
	}
	for _, line := range ctx.Lines {
		if m := locationLineRe.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
			return strings.TrimSpace(m[1])
		}
	}

	counts := map[string]int{}
	order := []string{}
	for _, line := range ctx.Lines {
		if m := bulletPlaceRe.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
			place := m[1]
			if roleKeywordRe.MatchString(place) {
				continue
			}
			if counts[place] == 0 {
				order = append(order, place)
			}
			counts[place]++
		}
	}
	best, bestCount := "", 1
	for _, place := range order {
		if counts[place] > bestCount {
			best, bestCount = place, counts[place]
		}
	}
	if best != "" {
		return best
	}

	return ""
}
