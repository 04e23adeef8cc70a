package engine

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/talentflow/talentflow-backend/internal/cvprocessing/domain"
)

var presentWords = `present|pr[ée]sent|current|aujourd'hui|actuel(?:le)?|now|ongoing|en cours`

// Date-range families tried in order on every line. The first match
// wins, so the most specific shapes come first.
var dateRangeRes = []*regexp.Regexp{
	// January 2020 - March 2023, Janvier 2020 - Présent
	regexp.MustCompile(`(?i)(` + monthPattern + `\s+\d{4})\s*(?:[-–—]|to|a[u]?|à)\s*(` + monthPattern + `\s+\d{4}|` + presentWords + `)`),
	// 01/2020 - 03/2023
	regexp.MustCompile(`(?i)(\d{1,2}/\d{4})\s*(?:[-–—]|to|a[u]?|à)\s*(\d{1,2}/\d{4}|` + presentWords + `)`),
	// 2020 - 2023, 2020 - Present
	regexp.MustCompile(`(?i)\b((?:19|20)\d{2})\s*(?:[-–—]|to|a[u]?|à)\s*((?:19|20)\d{2}|` + presentWords + `)`),
}

var (
	yearRe        = regexp.MustCompile(`\d{4}`)
	presentRe     = regexp.MustCompile(`(?i)^(?:` + presentWords + `)$`)
	bulletLineRe  = regexp.MustCompile(`^\s*(?:[•·▪‣*]|-\s|l\s)`)
	actionVerbRe  = regexp.MustCompile(`(?i)^(developed|designed|managed|led|built|created|implemented|maintained|improved|delivered|coordinated|analyzed|optimized|deployed|automated|développé|conçu|géré|dirigé|créé|mis en place|réalisé|amélioré|participé|assuré|piloté|encadré)\b`)
	bulletPrefix  = regexp.MustCompile(`^\s*(?:[•·▪‣*]|-|l)\s+`)
	companyHintRe = regexp.MustCompile(`(?i)\b(inc|llc|ltd|corp|sas|sarl|sa|group|groupe|solutions|technologies|consulting|labs)\b\.?`)
)

type dateMatch struct {
	line      int
	start     string
	end       string
	startIdx  int
	lineText  string
	startYear int
	endYear   int
}

// findDateRanges scans every line for a date range, one per line.
func findDateRanges(ctx *Context, lines []string, offset int) []dateMatch {
	matches := make([]dateMatch, 0, 8)
	for i, line := range lines {
		for _, re := range dateRangeRes {
			m := re.FindStringSubmatchIndex(line)
			if m == nil {
				continue
			}
			start := line[m[2]:m[3]]
			end := line[m[4]:m[5]]
			dm := dateMatch{
				line:      offset + i,
				start:     strings.TrimSpace(start),
				end:       strings.TrimSpace(end),
				startIdx:  m[0],
				lineText:  line,
				startYear: lastYear(start),
				endYear:   endYearOf(end, ctx.Now.Year()),
			}
			matches = append(matches, dm)
			break
		}
	}
	return matches
}

func lastYear(s string) int {
	ys := yearRe.FindAllString(s, -1)
	if len(ys) == 0 {
		return 0
	}
	y, _ := strconv.Atoi(ys[len(ys)-1])
	return y
}

func endYearOf(s string, currentYear int) int {
	if presentRe.MatchString(strings.TrimSpace(s)) {
		return currentYear
	}
	return lastYear(s)
}

// lineIsDated reports whether a line carries any date range.
func lineIsDated(line string) bool {
	for _, re := range dateRangeRes {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

// extractExperience walks the experience section building one entry
// per dated line. Documents without an experience header yield no
// entries. Context lines around each date fill position, company and
// location; following bullets become the description.
func extractExperience(ctx *Context) []domain.ExperienceEntry {
	sec, ok := ctx.Sections[SectionExperience]
	if !ok {
		return []domain.ExperienceEntry{}
	}
	lines := strings.Split(sec.Text, "\n")
	offset := sec.HeaderLine + 1

	matches := findDateRanges(ctx, lines, offset)
	entries := make([]domain.ExperienceEntry, 0, len(matches))

	for mi, m := range matches {
		entry := domain.ExperienceEntry{
			StartDate: m.start,
			EndDate:   m.end,
			Duration:  formatDuration(m.startYear, m.endYear),
		}

		// Anything on the date line before the dates is a title.
		if head := strings.TrimSpace(strings.Trim(m.lineText[:m.startIdx], " -–—|,")); head != "" {
			assignHeadline(&entry, head)
		}

		// Backward walk: up to 5 lines above the date fill the slots.
		local := m.line - offset
		for back := 1; back <= 5; back++ {
			j := local - back
			if j < 0 {
				break
			}
			line := strings.TrimSpace(lines[j])
			if line == "" || isSectionHeader(line) || lineIsDated(line) {
				break
			}
			if mi > 0 && j+offset <= matches[mi-1].line {
				break
			}
			if strings.Contains(line, "|") {
				fillFromPipeline(&entry, line)
				break
			}
			if pm := bulletPlaceRe.FindStringSubmatch(line); pm != nil {
				setIfEmpty(&entry.Company, pm[1])
				continue
			}
			if roleKeywordRe.MatchString(line) && len(line) <= 120 {
				setIfEmpty(&entry.Position, line)
				continue
			}
			if companyHintRe.MatchString(line) && len(line) <= 80 {
				setIfEmpty(&entry.Company, line)
			}
		}

		// Forward walk: collect up to 5 bullet lines from the next 15
		// into the description, stopping at the next dated line or
		// section header.
		var bullets []string
		for fwd := 1; fwd <= 15 && len(bullets) < 5; fwd++ {
			j := local + fwd
			if j >= len(lines) {
				break
			}
			line := strings.TrimSpace(lines[j])
			if line == "" {
				continue
			}
			if lineIsDated(line) || isSectionHeader(line) {
				break
			}
			if bulletLineRe.MatchString(lines[j]) || actionVerbRe.MatchString(line) {
				resp := strings.TrimSpace(bulletPrefix.ReplaceAllString(lines[j], ""))
				if resp != "" && !bulletPlaceRe.MatchString(line) {
					bullets = append(bullets, resp)
				}
			}
		}
		entry.Description = strings.Join(bullets, "\n")

		entries = append(entries, entry)
	}

	return entries
}

// assignHeadline splits "Position | Company | Location" heads; a head
// without pipes becomes the position.
func assignHeadline(entry *domain.ExperienceEntry, head string) {
	if strings.Contains(head, "|") {
		fillFromPipeline(entry, head)
		return
	}
	setIfEmpty(&entry.Position, head)
}

// fillFromPipeline maps pipe-separated segments onto position, company
// and location in order.
func fillFromPipeline(entry *domain.ExperienceEntry, line string) {
	segs := strings.Split(line, "|")
	slots := []*string{&entry.Position, &entry.Company, &entry.Location}
	for i, seg := range segs {
		if i >= len(slots) {
			break
		}
		setIfEmpty(slots[i], strings.TrimSpace(seg))
	}
}

// setIfEmpty keeps the first value written to a slot.
func setIfEmpty(slot *string, value string) {
	if *slot == "" && value != "" {
		*slot = value
	}
}

// formatDuration always renders "N years", including N of 0 and 1.
func formatDuration(startYear, endYear int) string {
	if startYear == 0 || endYear == 0 || endYear < startYear {
		return ""
	}
	return fmt.Sprintf("%d years", endYear-startYear)
}
