package matching

import (
	"errors"
	"testing"

	"github.com/spigell/cv-matcher/internal/ai"
)

func TestParseRubric(t *testing.T) {
	raw := "```json\n" + `{
		"score": 0.8,
		"skills_match": {"score": 0.9, "explanation": "Go matches"},
		"experience_match": {"score": "0.7", "details": "Enough years"},
		"education_match": {},
		"explanation": "Strong fit"
	}` + "\n```"

	score, b, err := parseRubric(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if score != 0.8 {
		t.Fatalf("score = %v, want 0.8", score)
	}
	if b.SkillsMatch == nil || b.SkillsMatch.Score != 0.9 || b.SkillsMatch.Explanation != "Go matches" {
		t.Fatalf("unexpected skills match: %+v", b.SkillsMatch)
	}
	if b.ExperienceMatch == nil || b.ExperienceMatch.Score != 0.7 || b.ExperienceMatch.Explanation != "Enough years" {
		t.Fatalf("unexpected experience match: %+v", b.ExperienceMatch)
	}
	if b.EducationMatch != nil {
		t.Fatalf("empty education match should decode to nil, got %+v", b.EducationMatch)
	}
	if b.Explanation != "Strong fit" {
		t.Fatalf("explanation = %q", b.Explanation)
	}
}

func TestParseRubricTrailingProse(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"trailing":    `{"score": 0.8, "explanation": "Solid"} Hope this helps!`,
		"leading":     `Sure! {"score": 0.8, "explanation": "Solid"}`,
		"both sides":  `Result: {"score": 0.8, "explanation": "Solid"} Let me know.`,
		"after fence": "```json\n{\"score\": 0.8, \"explanation\": \"Solid\"}\n```\nCheers",
	}

	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			score, b, err := parseRubric(raw)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if score != 0.8 || b.Explanation != "Solid" {
				t.Fatalf("got score=%v explanation=%q", score, b.Explanation)
			}
		})
	}
}

func TestParseRubricPassesOutOfRangeScores(t *testing.T) {
	score, b, err := parseRubric(`{"score": 1.4, "skills_match": {"score": -0.2, "explanation": "odd"}}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if score != 1.4 || b.SkillsMatch.Score != -0.2 {
		t.Fatalf("scores must pass through untouched, got %v and %v", score, b.SkillsMatch.Score)
	}
}

func TestParseRubricMalformed(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"not json":          "I think the candidate is great",
		"missing score":     `{"explanation": "no score"}`,
		"non numeric score": `{"score": "high"}`,
		"component string":  `{"score": 0.5, "skills_match": "good"}`,
		"array":             `[1, 2]`,
		"null":              `null`,
	}

	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			if _, _, err := parseRubric(raw); !errors.Is(err, ai.ErrMalformedResponse) {
				t.Fatalf("expected ErrMalformedResponse, got %v", err)
			}
		})
	}
}

func TestParseExplanationAllowsMissingComponents(t *testing.T) {
	b, err := parseExplanation(`{"explanation": "only text"}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.SkillsMatch != nil || b.ExperienceMatch != nil || b.EducationMatch != nil {
		t.Fatalf("expected empty components, got %+v", b)
	}
	if b.Explanation != "only text" {
		t.Fatalf("explanation = %q", b.Explanation)
	}
}
