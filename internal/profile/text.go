package profile

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spigell/cv-matcher/internal/utils"
)

// EmbeddingText is the composite job text submitted for embedding:
// title, summary and required skills, one per line.
func (j JobProfile) EmbeddingText() string {
	return strings.Join([]string{
		strings.TrimSpace(j.Title),
		strings.TrimSpace(j.Summary),
		utils.JoinNonEmpty(j.RequiredSkills, ", "),
	}, "\n")
}

// EmbeddingText is the composite candidate text submitted for embedding:
// skills, work experience and education, one block per line.
func (c CandidateProfile) EmbeddingText() string {
	return strings.Join([]string{
		utils.JoinNonEmpty(c.Skills, ", "),
		c.ExperienceText(),
		c.EducationText(),
	}, "\n")
}

// ExperienceText renders work history as "role at company (years): description" entries.
func (c CandidateProfile) ExperienceText() string {
	entries := make([]string, 0, len(c.WorkExperience))
	for _, w := range c.WorkExperience {
		entry := fmt.Sprintf("%s at %s", w.Role, w.Company)
		if w.Years != "" {
			entry += fmt.Sprintf(" (%s)", w.Years)
		}
		if w.Description != "" {
			entry += ": " + w.Description
		}
		entries = append(entries, entry)
	}
	return strings.Join(entries, "; ")
}

// EducationText renders education as "degree in field from institution (years)" entries.
func (c CandidateProfile) EducationText() string {
	entries := make([]string, 0, len(c.Education))
	for _, e := range c.Education {
		entry := fmt.Sprintf("%s in %s from %s", e.Degree, e.Field, e.Institution)
		if e.Years != "" {
			entry += fmt.Sprintf(" (%s)", e.Years)
		}
		entries = append(entries, entry)
	}
	return strings.Join(entries, "; ")
}

// EducationJSON and WorkExperienceJSON serialise the records for prompts.
func (c CandidateProfile) EducationJSON() string {
	return mustJSON(c.Education)
}

func (c CandidateProfile) WorkExperienceJSON() string {
	return mustJSON(c.WorkExperience)
}

func mustJSON[T any](v []T) string {
	if v == nil {
		v = []T{}
	}
	data, err := json.Marshal(v)
	if err != nil {
		return "[]"
	}
	return string(data)
}
