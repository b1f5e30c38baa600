package cmd

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/spigell/cv-matcher/internal/ai"
	"github.com/spigell/cv-matcher/internal/ai/gemini"
	"github.com/spigell/cv-matcher/internal/ai/ollama"
	"github.com/spigell/cv-matcher/internal/embedding"
	"github.com/spigell/cv-matcher/internal/extraction"
	"github.com/spigell/cv-matcher/internal/matching"
	"github.com/spigell/cv-matcher/internal/secrets"
)

// providers builds AI clients from configuration. The Gemini and Ollama
// clients are created once and shared between embedding and generation.
type providers struct {
	cfg    *AIConfig
	logger *zap.Logger

	gemini *genai.Client
	ollama *ollama.Client
}

func newProviders(cfg *AIConfig, logger *zap.Logger) *providers {
	return &providers{cfg: cfg, logger: logger}
}

func (p *providers) geminiClient(ctx context.Context) (*genai.Client, error) {
	if p.gemini != nil {
		return p.gemini, nil
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: p.cfg.Gemini.APIKeyFile,
		Env:  "GEMINI_API_KEY",
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file, GEMINI_API_KEY_FILE or GEMINI_API_KEY)", err)
	}

	client, err := gemini.NewClient(ctx, apiKey)
	if err != nil {
		return nil, err
	}

	p.gemini = client
	return client, nil
}

func (p *providers) ollamaClient() *ollama.Client {
	if p.ollama == nil {
		p.ollama = ollama.New(p.cfg.Ollama.BaseURL, p.logger)
	}
	return p.ollama
}

// embedder returns the raw embedder and the model it should be asked for.
func (p *providers) embedder(ctx context.Context) (ai.Embedder, string, error) {
	model := strings.TrimSpace(p.cfg.Embedding.Model)

	switch normalize(p.cfg.Embedding.Provider) {
	case "", ollama.Provider:
		if model == "" {
			model = ollama.DefaultEmbedModel
		}
		return p.ollamaClient(), model, nil
	case gemini.Provider:
		client, err := p.geminiClient(ctx)
		if err != nil {
			return nil, "", err
		}
		embedder, err := gemini.NewEmbedder(client, p.logger)
		if err != nil {
			return nil, "", err
		}
		if model == "" {
			model = gemini.DefaultEmbedModel
		}
		return embedder, model, nil
	default:
		return nil, "", fmt.Errorf("unsupported embedding provider: %s", p.cfg.Embedding.Provider)
	}
}

func (p *providers) generator(ctx context.Context) (ai.Generator, error) {
	model := strings.TrimSpace(p.cfg.Generation.Model)

	switch normalize(p.cfg.Generation.Provider) {
	case "", ollama.Provider:
		return ollama.NewGenerator(p.ollamaClient(), model), nil
	case gemini.Provider:
		client, err := p.geminiClient(ctx)
		if err != nil {
			return nil, err
		}
		return gemini.NewGenerator(client, model, p.cfg.Generation.MaxRetries, p.logger)
	default:
		return nil, fmt.Errorf("unsupported generation provider: %s", p.cfg.Generation.Provider)
	}
}

func (p *providers) matcher(ctx context.Context) (*matching.Matcher, error) {
	rawEmbedder, model, err := p.embedder(ctx)
	if err != nil {
		return nil, fmt.Errorf("building embedder: %w", err)
	}

	if p.cfg.Embedding.DemoFallback {
		p.logger.Warn("demo fallback embeddings enabled, failed embeddings are replaced with random vectors")
		rawEmbedder = embedding.NewDemoFallback(rawEmbedder, p.logger)
	}

	generator, err := p.generator(ctx)
	if err != nil {
		return nil, fmt.Errorf("building generator: %w", err)
	}

	genLogger := p.logger.With(zap.String("generation_model", generator.Model()))

	return matching.New(
		embedding.NewProvider(rawEmbedder, model, p.cfg.Timeout, p.logger),
		matching.NewRubricEvaluator(generator, p.cfg.Timeout, p.cfg.MaxLogLength, genLogger),
		matching.NewExplainer(generator, p.cfg.Timeout, p.cfg.MaxLogLength, genLogger),
		p.logger,
	), nil
}

func (p *providers) extractor(ctx context.Context) (*extraction.Extractor, error) {
	generator, err := p.generator(ctx)
	if err != nil {
		return nil, fmt.Errorf("building generator: %w", err)
	}

	return extraction.New(generator, p.cfg.Timeout, p.cfg.MaxLogLength, p.logger), nil
}

func normalize(provider string) string {
	return strings.TrimSpace(strings.ToLower(provider))
}
