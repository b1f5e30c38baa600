package ai

import (
	"context"
	"errors"
)

// Embedder maps text to a fixed-length vector using the given model.
type Embedder interface {
	Embed(ctx context.Context, model, text string) ([]float32, error)
}

// Generator sends a prompt to a generative model and returns its raw text output.
type Generator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
	Model() string
}

// Error kinds surfaced by the scoring core. Callers branch with errors.Is.
var (
	ErrEmbeddingUnavailable = errors.New("embedding unavailable")
	ErrGenerationFailure    = errors.New("generation failure")
	ErrMalformedResponse    = errors.New("malformed response")
	ErrComputation          = errors.New("computation error")

	// ErrDeclined marks a provider that answered but refused the request or
	// returned nothing usable, as opposed to a transport failure.
	ErrDeclined = errors.New("provider declined the request")
)
