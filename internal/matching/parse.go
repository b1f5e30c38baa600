package matching

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/spigell/cv-matcher/internal/ai"
	"github.com/spigell/cv-matcher/internal/utils"
)

// rawComponent is the loosely typed shape of a category object from a generator.
type rawComponent struct {
	Score       any `mapstructure:"score"`
	Explanation any `mapstructure:"explanation"`
	Details     any `mapstructure:"details"`
}

// parseObject strips code fences and decodes the top-level JSON object.
func parseObject(raw string) (map[string]any, error) {
	cleaned := utils.ExtractJSON(raw)

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, fmt.Errorf("%w: %v", ai.ErrMalformedResponse, err)
	}
	if data == nil {
		return nil, fmt.Errorf("%w: expected a json object", ai.ErrMalformedResponse)
	}

	return data, nil
}

// parseRubric decodes the rubric schema {score, skills_match, experience_match,
// education_match, explanation}. The overall score is required.
func parseRubric(raw string) (float64, Breakdown, error) {
	data, err := parseObject(raw)
	if err != nil {
		return 0, Breakdown{}, err
	}

	value, ok := data["score"]
	if !ok {
		return 0, Breakdown{}, fmt.Errorf("%w: missing score", ai.ErrMalformedResponse)
	}

	score := coerceFloat(value)
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return 0, Breakdown{}, fmt.Errorf("%w: score %v is not a number", ai.ErrMalformedResponse, value)
	}

	breakdown, err := parseBreakdown(data)
	if err != nil {
		return 0, Breakdown{}, err
	}

	return score, breakdown, nil
}

// parseExplanation decodes the explanation schema {skills_match,
// experience_match, education_match, explanation}.
func parseExplanation(raw string) (Breakdown, error) {
	data, err := parseObject(raw)
	if err != nil {
		return Breakdown{}, err
	}

	return parseBreakdown(data)
}

func parseBreakdown(data map[string]any) (Breakdown, error) {
	var (
		b   Breakdown
		err error
	)

	if b.SkillsMatch, err = decodeComponent("skills_match", data["skills_match"]); err != nil {
		return Breakdown{}, err
	}
	if b.ExperienceMatch, err = decodeComponent("experience_match", data["experience_match"]); err != nil {
		return Breakdown{}, err
	}
	if b.EducationMatch, err = decodeComponent("education_match", data["education_match"]); err != nil {
		return Breakdown{}, err
	}

	b.Explanation = coerceString(data["explanation"])
	return b, nil
}

// decodeComponent returns nil for an absent or empty mapping.
func decodeComponent(key string, v any) (*ComponentMatch, error) {
	if v == nil {
		return nil, nil
	}

	fields, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s is %T, want object", ai.ErrMalformedResponse, key, v)
	}
	if len(fields) == 0 {
		return nil, nil
	}

	var raw rawComponent
	if err := mapstructure.Decode(fields, &raw); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ai.ErrMalformedResponse, key, err)
	}

	score := coerceFloat(raw.Score)
	if math.IsNaN(score) {
		score = 0
	}

	explanation := coerceString(raw.Explanation)
	if explanation == "" {
		explanation = coerceString(raw.Details)
	}

	return &ComponentMatch{Score: score, Explanation: explanation}, nil
}

func coerceFloat(v any) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case int:
		return float64(val)
	case string:
		trimmed := strings.TrimSuffix(strings.TrimSpace(val), "%")
		if trimmed == "" {
			return math.NaN()
		}
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return math.NaN()
		}
		return f
	default:
		return math.NaN()
	}
}

func coerceString(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case fmt.Stringer:
		return strings.TrimSpace(val.String())
	default:
		if v == nil {
			return ""
		}
		bytes, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(bytes)
	}
}
