package matching

import (
	"encoding/json"

	"github.com/spigell/cv-matcher/internal/profile"
)

// FailedExplanation is the explanation carried by every failed match.
const FailedExplanation = "Error analyzing match"

// Status tells a genuine score apart from the failure sentinel.
type Status string

const (
	StatusOK     Status = "ok"
	StatusFailed Status = "failed"
)

// ComponentMatch scores one category (skills, experience or education).
// Scores from a generator are passed through and may fall outside [0, 1].
type ComponentMatch struct {
	Score       float64 `json:"score"`
	Explanation string  `json:"explanation"`
}

// Breakdown is the per-category explanation of a score.
// A nil component is an empty mapping.
type Breakdown struct {
	SkillsMatch     *ComponentMatch
	ExperienceMatch *ComponentMatch
	EducationMatch  *ComponentMatch
	Explanation     string
}

// MatchResult is the outcome of scoring one job/candidate pair.
type MatchResult struct {
	// Score is always within [0, 1].
	Score float64
	Breakdown
	Status   Status
	Strategy Strategy
}

// Failed returns the sentinel result used whenever no genuine score exists.
func Failed() MatchResult {
	return MatchResult{
		Score:     0,
		Breakdown: Breakdown{Explanation: FailedExplanation},
		Status:    StatusFailed,
		Strategy:  StrategyNone,
	}
}

// OK reports whether the result carries a genuine score.
func (r MatchResult) OK() bool {
	return r.Status == StatusOK
}

// Pair is a job/candidate pair to score.
type Pair struct {
	Job       profile.JobProfile
	Candidate profile.CandidateProfile
}

type resultJSON struct {
	Score           float64  `json:"score"`
	SkillsMatch     any      `json:"skills_match"`
	ExperienceMatch any      `json:"experience_match"`
	EducationMatch  any      `json:"education_match"`
	Explanation     string   `json:"explanation"`
	Status          Status   `json:"status"`
	Strategy        Strategy `json:"strategy"`
}

// MarshalJSON renders empty components as {}.
func (r MatchResult) MarshalJSON() ([]byte, error) {
	return json.Marshal(resultJSON{
		Score:           r.Score,
		SkillsMatch:     componentJSON(r.SkillsMatch),
		ExperienceMatch: componentJSON(r.ExperienceMatch),
		EducationMatch:  componentJSON(r.EducationMatch),
		Explanation:     r.Explanation,
		Status:          r.Status,
		Strategy:        r.Strategy,
	})
}

func componentJSON(c *ComponentMatch) any {
	if c == nil {
		return struct{}{}
	}
	return c
}
