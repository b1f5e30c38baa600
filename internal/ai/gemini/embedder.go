package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/spigell/cv-matcher/internal/ai"
	"github.com/spigell/cv-matcher/internal/logger"
)

// Embedder produces text embeddings through the Gemini embedding models.
type Embedder struct {
	models models
	logger *zap.Logger
}

func NewEmbedder(client *genai.Client, log *zap.Logger) (*Embedder, error) {
	if client == nil || client.Models == nil {
		return nil, errors.New("gemini client is not initialized")
	}

	return &Embedder{
		models: client.Models,
		logger: logger.WithFields(log, logger.CommonFields(Provider, "")...),
	}, nil
}

// Embed returns the first embedding vector for text. No retries are made.
func (e *Embedder) Embed(ctx context.Context, model, text string) ([]float32, error) {
	if model = strings.TrimSpace(model); model == "" {
		model = DefaultEmbedModel
	}

	result, err := e.models.EmbedContent(ctx, model, genai.Text(text), nil)
	if err != nil {
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			return nil, fmt.Errorf("embed content: %w: %w", ai.ErrDeclined, err)
		}
		return nil, fmt.Errorf("embed content: %w", err)
	}

	if result == nil || len(result.Embeddings) == 0 || result.Embeddings[0] == nil || len(result.Embeddings[0].Values) == 0 {
		return nil, fmt.Errorf("embed content: %w: empty embedding result", ai.ErrDeclined)
	}

	e.logger.Debug("gemini embedding received",
		zap.String(logger.FieldModel, model),
		zap.Int("dimensions", len(result.Embeddings[0].Values)),
	)

	return result.Embeddings[0].Values, nil
}
