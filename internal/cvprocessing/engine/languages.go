package engine

import (
	"regexp"
	"strings"
)

type compiledSpokenLanguage struct {
	canonical string
	re        *regexp.Regexp
}

var compiledSpoken = compileSpoken()

func compileSpoken() []compiledSpokenLanguage {
	out := make([]compiledSpokenLanguage, 0, len(spokenLanguages))
	for _, l := range spokenLanguages {
		parts := make([]string, 0, len(l.forms))
		for _, f := range l.forms {
			parts = append(parts, wordPattern(f))
		}
		out = append(out, compiledSpokenLanguage{
			canonical: l.canonical,
			re:        regexp.MustCompile(`(?i)` + strings.Join(parts, "|")),
		})
	}
	return out
}

// extractLanguages emits canonical lowercase English language names.
// The languages section is preferred; the whole document is the
// fallback when no section exists. Output keeps document order of the
// first occurrence.
func extractLanguages(ctx *Context) []string {
	haystack := ctx.Sections.Get(SectionLanguages)
	if haystack == "" {
		haystack = ctx.Text
	}

	type hit struct {
		canonical string
		pos       int
	}
	hits := make([]hit, 0, 4)
	for _, l := range compiledSpoken {
		if loc := l.re.FindStringIndex(haystack); loc != nil {
			hits = append(hits, hit{canonical: l.canonical, pos: loc[0]})
		}
	}

	// Document order, not lexicon order.
	for i := 1; i < len(hits); i++ {
		for j := i; j > 0 && hits[j].pos < hits[j-1].pos; j-- {
			hits[j], hits[j-1] = hits[j-1], hits[j]
		}
	}

	out := make([]string, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.canonical)
	}
	return out
}
