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

const defaultMaxLogLength = 200

// RubricEvaluator scores a pair with a single generation call. The 40/40/20
// weighting lives in the prompt only and the returned scores are not re-derived.
type RubricEvaluator struct {
	generator    ai.Generator
	timeout      time.Duration
	maxLogLength int
	logger       *zap.Logger
}

func NewRubricEvaluator(generator ai.Generator, timeout time.Duration, maxLogLength int, log *zap.Logger) *RubricEvaluator {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &RubricEvaluator{
		generator:    generator,
		timeout:      timeout,
		maxLogLength: maxLogLength,
		logger:       logger.WithFields(log),
	}
}

// Evaluate returns the generator's overall score and breakdown. Errors wrap
// ai.ErrGenerationFailure or ai.ErrMalformedResponse.
func (r *RubricEvaluator) Evaluate(ctx context.Context, pair Pair) (float64, Breakdown, error) {
	if r == nil {
		return 0, Breakdown{}, fmt.Errorf("%w: rubric evaluator is not configured", ai.ErrGenerationFailure)
	}

	raw, err := generate(ctx, r.generator, RubricPrompt(pair), r.timeout)
	if err != nil {
		return 0, Breakdown{}, err
	}

	r.logger.Debug("rubric response received",
		zap.String("response_preview", utils.TruncateForLog(raw, r.maxLogLength)),
	)

	score, breakdown, err := parseRubric(raw)
	if err != nil {
		r.logger.Error("failed to parse rubric response",
			zap.Error(err),
			zap.String("response_preview", utils.TruncateForLog(raw, r.maxLogLength)),
		)
		return 0, Breakdown{}, err
	}

	return score, breakdown, nil
}

func generate(ctx context.Context, generator ai.Generator, prompt string, timeout time.Duration) (string, error) {
	if generator == nil {
		return "", fmt.Errorf("%w: generator is not configured", ai.ErrGenerationFailure)
	}

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	raw, err := generator.GenerateContent(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ai.ErrGenerationFailure, err)
	}

	return raw, nil
}
