package engine_test

import (
	"strings"
	"testing"

	"github.com/talentflow/talentflow-backend/internal/cvprocessing/engine"
)

func TestSectionSegmenter_EnglishHeaders(t *testing.T) {
	s := engine.NewSectionSegmenter()

	text := strings.Join([]string{
		"John Smith",
		"WORK EXPERIENCE",
		"Software Engineer at Acme",
		"2020 - 2023",
		"EDUCATION",
		"Bachelor of Science",
		"SKILLS",
		"Python, Go",
	}, "\n")

	sections := s.Segment(text, "en")

	tests := []struct {
		category string
		contains string
	}{
		{engine.SectionExperience, "Software Engineer at Acme"},
		{engine.SectionEducation, "Bachelor of Science"},
		{engine.SectionSkills, "Python, Go"},
	}
	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			got := sections.Get(tt.category)
			if !strings.Contains(got, tt.contains) {
				t.Errorf("section %s = %q, want it to contain %q", tt.category, got, tt.contains)
			}
		})
	}

	// Spans are contiguous: the experience section must stop at the
	// education header.
	if strings.Contains(sections.Get(engine.SectionExperience), "Bachelor") {
		t.Errorf("experience span leaked into education: %q", sections.Get(engine.SectionExperience))
	}
}

func TestSectionSegmenter_FrenchHeaders(t *testing.T) {
	s := engine.NewSectionSegmenter()

	text := strings.Join([]string{
		"Marie Dupont",
		"Expérience professionnelle",
		"Développeuse chez Capgemini",
		"Formation",
		"Licence informatique",
		"Compétences",
		"Python, Java",
		"Langues",
		"Français, Anglais",
	}, "\n")

	sections := s.Segment(text, "fr")

	if got := sections.Get(engine.SectionExperience); !strings.Contains(got, "Capgemini") {
		t.Errorf("experience = %q, want Capgemini entry", got)
	}
	if got := sections.Get(engine.SectionEducation); !strings.Contains(got, "Licence") {
		t.Errorf("education = %q, want Licence entry", got)
	}
	if got := sections.Get(engine.SectionLanguages); !strings.Contains(got, "Français") {
		t.Errorf("languages = %q, want Français entry", got)
	}
}

func TestSectionSegmenter_RepeatedHeaderLastWins(t *testing.T) {
	s := engine.NewSectionSegmenter()

	text := strings.Join([]string{
		"EXPERIENCE",
		"first block",
		"EXPERIENCE",
		"second block",
	}, "\n")

	sections := s.Segment(text, "en")
	got := sections.Get(engine.SectionExperience)
	if !strings.Contains(got, "second block") {
		t.Errorf("experience = %q, want span of the last header occurrence", got)
	}
	if strings.Contains(got, "first block") {
		t.Errorf("experience = %q, earlier span should have been overwritten", got)
	}
}

func TestSectionSegmenter_LineClaimedOnce(t *testing.T) {
	s := engine.NewSectionSegmenter()

	// "Projects" also resembles other headers in loose matching; a
	// claimed header line must not re-appear inside any section body.
	text := strings.Join([]string{
		"EXPERIENCE",
		"built things",
		"PROJECTS",
		"side project",
	}, "\n")

	sections := s.Segment(text, "en")
	for _, cat := range []string{engine.SectionExperience, engine.SectionProjects} {
		body := sections.Get(cat)
		if strings.Contains(body, "EXPERIENCE") || strings.Contains(body, "PROJECTS") {
			t.Errorf("section %s body %q contains a header line", cat, body)
		}
	}
}

func TestSectionSegmenter_NoHeaders(t *testing.T) {
	s := engine.NewSectionSegmenter()

	sections := s.Segment("just a paragraph of prose with no structure at all", "en")
	if len(sections) != 0 {
		t.Errorf("sections = %v, want none", sections)
	}
}
