package matching

import (
	"strings"
	"testing"
)

func TestRubricPromptIncludesProfiles(t *testing.T) {
	prompt := RubricPrompt(testPair())

	for _, want := range []string{
		"Title: Backend Engineer",
		"Required Skills: Go, PostgreSQL",
		"Responsibilities: Design APIs, Operate services",
		"Name: Ada",
		`"institution":"MIT"`,
		"Certifications: CKA",
		"skills: 40%, experience: 40%, education: 20%",
	} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("rubric prompt missing %q", want)
		}
	}
	if strings.Contains(prompt, "{{") {
		t.Fatalf("rubric prompt has unrendered placeholders:\n%s", prompt)
	}
}

func TestExplanationPromptShowsPercentage(t *testing.T) {
	prompt := ExplanationPrompt(testPair(), 0.8234)

	if !strings.Contains(prompt, "is 82.3%.") {
		t.Fatalf("explanation prompt should state the rounded percentage:\n%s", prompt)
	}
	if strings.Contains(prompt, "{{") {
		t.Fatalf("explanation prompt has unrendered placeholders")
	}
}

func TestRenderDoesNotExpandValues(t *testing.T) {
	pair := testPair()
	pair.Candidate.Name = "{{job_title}}"

	prompt := RubricPrompt(pair)
	if !strings.Contains(prompt, "Name: {{job_title}}") {
		t.Fatalf("candidate values must be inserted literally")
	}
}
