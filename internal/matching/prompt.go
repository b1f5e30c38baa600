package matching

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/spigell/cv-matcher/internal/utils"
)

//go:embed prompts/rubric.md
var rubricPromptTemplate string

//go:embed prompts/explanation.md
var explanationPromptTemplate string

// RubricPrompt renders the rubric scoring prompt for a pair.
func RubricPrompt(p Pair) string {
	return render(rubricPromptTemplate, pairValues(p))
}

// ExplanationPrompt renders the explanation prompt for a pair whose score is
// already known. The score is shown as a percentage with one decimal.
func ExplanationPrompt(p Pair, score float64) string {
	values := pairValues(p)
	values["match_score"] = formatPercent(score)
	return render(explanationPromptTemplate, values)
}

func pairValues(p Pair) map[string]string {
	return map[string]string{
		"job_title":           p.Job.Title,
		"job_summary":         p.Job.Summary,
		"required_skills":     utils.JoinNonEmpty(p.Job.RequiredSkills, ", "),
		"required_experience": p.Job.RequiredExperience,
		"responsibilities":    utils.JoinNonEmpty(p.Job.Responsibilities, ", "),
		"candidate_name":      p.Candidate.Name,
		"education":           p.Candidate.EducationJSON(),
		"work_experience":     p.Candidate.WorkExperienceJSON(),
		"skills":              utils.JoinNonEmpty(p.Candidate.Skills, ", "),
		"certifications":      utils.JoinNonEmpty(p.Candidate.Certifications, ", "),
	}
}

func render(template string, values map[string]string) string {
	pairs := make([]string, 0, len(values)*2)
	for key, value := range values {
		pairs = append(pairs, "{{"+key+"}}", value)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

func formatPercent(score float64) string {
	return fmt.Sprintf("%.1f", score*100)
}
