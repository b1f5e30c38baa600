package embedding

import (
	"context"
	"errors"
	"math/rand/v2"

	"go.uber.org/zap"

	"github.com/spigell/cv-matcher/internal/ai"
	"github.com/spigell/cv-matcher/internal/logger"
)

// DemoDimensions is the size of the substituted random vector.
const DemoDimensions = 768

// DemoFallback substitutes a random normally distributed vector when the
// wrapped embedder cannot be reached. A provider that answered and declined
// (ai.ErrDeclined) is passed through, so the match still falls back to the
// rubric. Similarity scores computed from a random vector are meaningless and
// not reproducible. Use it for demos and tests only.
type DemoFallback struct {
	next   ai.Embedder
	rand   func() float64
	logger *zap.Logger
}

// NewDemoFallback wraps next with the random-vector substitution.
func NewDemoFallback(next ai.Embedder, log *zap.Logger) *DemoFallback {
	return &DemoFallback{
		next:   next,
		rand:   rand.NormFloat64,
		logger: logger.WithFields(log),
	}
}

func (d *DemoFallback) Embed(ctx context.Context, model, text string) ([]float32, error) {
	vec, err := d.next.Embed(ctx, model, text)
	if err == nil || errors.Is(err, ai.ErrDeclined) {
		return vec, err
	}

	d.logger.Warn("using random fallback embedding, scores are for demonstration only",
		zap.Error(err),
		zap.Int("dimensions", DemoDimensions),
	)

	random := make([]float32, DemoDimensions)
	for i := range random {
		random[i] = float32(d.rand())
	}
	return random, nil
}
