package matching

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/cv-matcher/internal/ai"
	"github.com/spigell/cv-matcher/internal/logger"
	"github.com/spigell/cv-matcher/internal/utils"
)

// PlaceholderScore is the component score used when no breakdown could be generated.
const PlaceholderScore = 0.7

// Explainer asks a generator to break an already computed score down by category.
type Explainer struct {
	generator    ai.Generator
	timeout      time.Duration
	maxLogLength int
	logger       *zap.Logger
}

func NewExplainer(generator ai.Generator, timeout time.Duration, maxLogLength int, log *zap.Logger) *Explainer {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Explainer{
		generator:    generator,
		timeout:      timeout,
		maxLogLength: maxLogLength,
		logger:       logger.WithFields(log),
	}
}

// Explain never fails: a generation or parse error, or a nil Explainer,
// yields SynthesizedBreakdown(score).
func (e *Explainer) Explain(ctx context.Context, pair Pair, score float64) Breakdown {
	if e == nil {
		return SynthesizedBreakdown(score)
	}

	breakdown, err := e.explain(ctx, pair, score)
	if err != nil {
		e.logger.Error("error generating component breakdowns, using placeholders", zap.Error(err))
		return SynthesizedBreakdown(score)
	}

	return breakdown
}

func (e *Explainer) explain(ctx context.Context, pair Pair, score float64) (Breakdown, error) {
	raw, err := generate(ctx, e.generator, ExplanationPrompt(pair, score), e.timeout)
	if err != nil {
		return Breakdown{}, err
	}

	e.logger.Debug("explanation response received",
		zap.String("response_preview", utils.TruncateForLog(raw, e.maxLogLength)),
	)

	breakdown, err := parseExplanation(raw)
	if err != nil {
		return Breakdown{}, err
	}

	if breakdown.Explanation == "" {
		breakdown.Explanation = overallExplanation(score)
	}

	return breakdown, nil
}

// SynthesizedBreakdown is the generic breakdown substituted for a failed explanation.
func SynthesizedBreakdown(score float64) Breakdown {
	return Breakdown{
		SkillsMatch:     &ComponentMatch{Score: PlaceholderScore, Explanation: "Skills were semantically analyzed."},
		ExperienceMatch: &ComponentMatch{Score: PlaceholderScore, Explanation: "Experience was semantically analyzed."},
		EducationMatch:  &ComponentMatch{Score: PlaceholderScore, Explanation: "Education was semantically analyzed."},
		Explanation:     overallExplanation(score),
	}
}

func overallExplanation(score float64) string {
	return fmt.Sprintf("The candidate's profile has an overall semantic match score of %s%% with the job requirements.", formatPercent(score))
}

func rubricExplanation(score float64) string {
	return fmt.Sprintf("The candidate's profile has an overall rubric match score of %s%% with the job requirements.", formatPercent(score))
}
