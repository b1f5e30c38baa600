package embedding

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/spigell/cv-matcher/internal/ai"
	"github.com/spigell/cv-matcher/internal/logger"
	"github.com/spigell/cv-matcher/internal/utils"
)

// MaxInputChars is the longest text, in characters, submitted for embedding.
const MaxInputChars = 8192

// Provider applies the embedding call contract on top of a raw ai.Embedder:
// oversized input is truncated, each call gets its own deadline, and every
// failure is reported as ai.ErrEmbeddingUnavailable. There are no retries.
type Provider struct {
	embedder ai.Embedder
	model    string
	timeout  time.Duration
	logger   *zap.Logger
}

// NewProvider wraps embedder. A non-positive timeout disables the per-call deadline.
func NewProvider(embedder ai.Embedder, model string, timeout time.Duration, log *zap.Logger) *Provider {
	return &Provider{
		embedder: embedder,
		model:    model,
		timeout:  timeout,
		logger:   logger.WithFields(log, logger.StringFields(logger.StringField{Key: logger.FieldModel, Value: model})...),
	}
}

// Embed returns the vector for text or an error wrapping ai.ErrEmbeddingUnavailable.
func (p *Provider) Embed(ctx context.Context, text string) ([]float32, error) {
	if truncated, cut := utils.TruncateRunes(text, MaxInputChars); cut {
		p.logger.Warn("embedding input truncated",
			zap.Int("original_chars", utf8.RuneCountInString(text)),
			zap.Int("truncated_chars", MaxInputChars),
		)
		text = truncated
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	vec, err := p.embedder.Embed(ctx, p.model, text)
	if err != nil {
		p.logger.Error("embedding request failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ai.ErrEmbeddingUnavailable, err)
	}

	if len(vec) == 0 {
		p.logger.Error("embedding provider returned an empty vector")
		return nil, fmt.Errorf("%w: empty vector", ai.ErrEmbeddingUnavailable)
	}

	return vec, nil
}
