package engine_test

import (
	"testing"

	"github.com/talentflow/talentflow-backend/internal/cvprocessing/engine"
)

func TestEngine_Extract_SkillBoundaries(t *testing.T) {
	e := engine.New()

	profile := e.Extract("SKILLS\nC++, C#, .NET, Node.js, Java, scalable systems")

	for _, want := range []string{"c++", "c#", ".net", "node.js", "java"} {
		if !containsFold(profile.Skills.Technical, want) {
			t.Errorf("Technical = %v, missing %q", profile.Skills.Technical, want)
		}
	}

	// "scalable" must not trigger the scala entry, and "Node.js" must
	// not double as a bare java hit.
	if containsFold(profile.Skills.Technical, "scala") {
		t.Errorf("Technical = %v, scala is a false positive", profile.Skills.Technical)
	}
}

func TestEngine_Extract_SkillsDeduplicated(t *testing.T) {
	e := engine.New()

	profile := e.Extract("SKILLS\nPython, python, PYTHON\nEXPERIENCE\nWrote Python services")

	count := 0
	for _, s := range profile.Skills.Technical {
		if s == "python" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("python appears %d times, want 1", count)
	}
}
