// Package matching scores how well a candidate fits a job.
//
// The score comes from cosine similarity of the two profile embeddings. When
// either embedding is unavailable a single generative rubric call scores the
// pair instead. Any unrecovered failure yields the Failed result.
package matching

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/cv-matcher/internal/ai"
	"github.com/spigell/cv-matcher/internal/logger"
	"github.com/spigell/cv-matcher/internal/similarity"
)

// TextEmbedder returns the embedding of a composite profile text.
type TextEmbedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

type rubric interface {
	Evaluate(ctx context.Context, pair Pair) (float64, Breakdown, error)
}

type explainer interface {
	Explain(ctx context.Context, pair Pair, score float64) Breakdown
}

// Matcher is safe for concurrent use when its providers are.
type Matcher struct {
	embedder   TextEmbedder
	rubric     rubric
	explainer  explainer
	similarity func(v1, v2 []float32) (float64, error)
	newID      func() string
	logger     *zap.Logger
}

func New(embedder TextEmbedder, rubric *RubricEvaluator, explainer *Explainer, log *zap.Logger) *Matcher {
	return &Matcher{
		embedder:   embedder,
		rubric:     rubric,
		explainer:  explainer,
		similarity: similarity.Cosine,
		newID:      uuid.NewString,
		logger:     logger.WithFields(log),
	}
}

// Match scores one pair. It never returns an error: failures produce Failed().
func (m *Matcher) Match(ctx context.Context, pair Pair) (result MatchResult) {
	log := logger.WithMatchID(m.logger, m.newID())

	defer func() {
		if r := recover(); r != nil {
			log.Error("match aborted", zap.Error(fmt.Errorf("%w: panic: %v", ai.ErrComputation, r)))
			result = Failed()
		}
	}()

	res, err := m.match(ctx, pair, log)
	if err != nil {
		log.Error("error analyzing match", zap.Error(err))
		return Failed()
	}

	log.Info("match scored",
		zap.Float64("score", res.Score),
		zap.String(logger.FieldStrategy, string(res.Strategy)),
	)
	return res
}

func (m *Matcher) match(ctx context.Context, pair Pair, log *zap.Logger) (MatchResult, error) {
	jobVec, candidateVec, jobErr, candidateErr := m.embedPair(ctx, pair, log)

	strategy := SelectStrategy(jobErr, candidateErr)
	log = log.With(zap.String(logger.FieldStrategy, string(strategy)))

	switch strategy {
	case StrategyEmbedding:
		return m.scoreBySimilarity(ctx, pair, jobVec, candidateVec, log)
	case StrategyRubric:
		return m.scoreByRubric(ctx, pair, log)
	default:
		return MatchResult{}, fmt.Errorf("%w: unknown strategy %q", ai.ErrComputation, strategy)
	}
}

// embedPair requests both embeddings concurrently and waits for both outcomes.
func (m *Matcher) embedPair(ctx context.Context, pair Pair, log *zap.Logger) (job, candidate []float32, jobErr, candidateErr error) {
	if m.embedder == nil {
		err := fmt.Errorf("%w: embedder is not configured", ai.ErrEmbeddingUnavailable)
		return nil, nil, err, err
	}

	var g errgroup.Group
	g.Go(func() error {
		job, jobErr = m.embedder.Embed(ctx, pair.Job.EmbeddingText())
		return jobErr
	})
	g.Go(func() error {
		candidate, candidateErr = m.embedder.Embed(ctx, pair.Candidate.EmbeddingText())
		return candidateErr
	})

	if err := g.Wait(); err != nil {
		log.Warn("embedding unavailable, using rubric evaluation", zap.Error(err))
	}

	return job, candidate, jobErr, candidateErr
}

func (m *Matcher) scoreBySimilarity(ctx context.Context, pair Pair, jobVec, candidateVec []float32, log *zap.Logger) (MatchResult, error) {
	score, err := m.similarity(jobVec, candidateVec)
	if err != nil {
		return MatchResult{}, fmt.Errorf("%w: %v", ai.ErrComputation, err)
	}

	log.Debug("similarity computed", zap.Float64("similarity", score))

	return MatchResult{
		Score:     similarity.Clamp(score),
		Breakdown: m.explainer.Explain(ctx, pair, score),
		Status:    StatusOK,
		Strategy:  StrategyEmbedding,
	}, nil
}

func (m *Matcher) scoreByRubric(ctx context.Context, pair Pair, log *zap.Logger) (MatchResult, error) {
	score, breakdown, err := m.rubric.Evaluate(ctx, pair)
	if err != nil {
		return MatchResult{}, err
	}

	clamped := similarity.Clamp(score)
	if clamped != score {
		log.Warn("rubric score out of range, clamped",
			zap.Float64("score", score),
			zap.Float64("clamped", clamped),
		)
	}

	if breakdown.Explanation == "" {
		breakdown.Explanation = rubricExplanation(clamped)
	}

	return MatchResult{
		Score:     clamped,
		Breakdown: breakdown,
		Status:    StatusOK,
		Strategy:  StrategyRubric,
	}, nil
}
