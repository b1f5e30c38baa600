package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/cv-matcher/internal/ai"
	"github.com/spigell/cv-matcher/internal/logger"
)

const (
	Provider = "ollama"

	DefaultBaseURL    = "http://localhost:11434"
	DefaultModel      = "phi4-mini"
	DefaultEmbedModel = "nomic-embed-text"

	maxErrorBody = 512
)

// Client communicates with an Ollama instance over HTTP. It is safe for
// concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// New creates a Client targeting the given Ollama base URL. Request deadlines
// come from the caller's context.
func New(baseURL string, log *zap.Logger) *Client {
	if baseURL = strings.TrimSpace(baseURL); baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		logger:     logger.WithFields(log, logger.CommonFields(Provider, "")...),
	}
}

// embeddingsRequest is the JSON body for POST /api/embeddings.
type embeddingsRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

// embeddingsResponse is the JSON returned by POST /api/embeddings.
type embeddingsResponse struct {
	Embedding []float32 `json:"embedding"`
}

// Embed returns the embedding vector for text using the given model.
func (c *Client) Embed(ctx context.Context, model, text string) ([]float32, error) {
	if model = strings.TrimSpace(model); model == "" {
		model = DefaultEmbedModel
	}

	var result embeddingsResponse
	if err := c.post(ctx, "/api/embeddings", embeddingsRequest{Model: model, Prompt: text}, &result); err != nil {
		return nil, fmt.Errorf("embed: %w", err)
	}

	if len(result.Embedding) == 0 {
		return nil, fmt.Errorf("embed: %w: empty embedding", ai.ErrDeclined)
	}

	return result.Embedding, nil
}

// generateRequest is the JSON body for POST /api/generate.
type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
	Format string `json:"format,omitempty"`
}

// generateResponse is the JSON returned by POST /api/generate (non-streaming).
type generateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// Generator adapts the Client to a single generation model.
type Generator struct {
	client *Client
	model  string
}

// NewGenerator binds the client to a generation model.
func NewGenerator(client *Client, model string) *Generator {
	if model = strings.TrimSpace(model); model == "" {
		model = DefaultModel
	}
	return &Generator{client: client, model: model}
}

// GenerateContent sends the prompt with JSON output mode and returns the model's text.
func (g *Generator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", errors.New("prompt must not be empty")
	}

	var result generateResponse
	req := generateRequest{Model: g.model, Prompt: prompt, Stream: false, Format: "json"}
	if err := g.client.post(ctx, "/api/generate", req, &result); err != nil {
		return "", fmt.Errorf("generate: %w", err)
	}

	output := strings.TrimSpace(result.Response)
	if output == "" {
		return "", errors.New("generate: empty response")
	}

	return output, nil
}

// Model returns the configured generation model.
func (g *Generator) Model() string {
	return g.model
}

func (c *Client) post(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		c.logger.Debug("ollama request rejected",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", bytes.TrimSpace(detail)),
		)
		return fmt.Errorf("%w: unexpected status %d", ai.ErrDeclined, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	return nil
}
