package ollama

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/cv-matcher/internal/ai"
)

func TestEmbed(t *testing.T) {
	var captured embeddingsRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/embeddings" {
			http.NotFound(w, r)
			return
		}
		json.NewDecoder(r.Body).Decode(&captured)
		json.NewEncoder(w).Encode(embeddingsResponse{Embedding: []float32{1, 0, 0.5}})
	}))
	defer srv.Close()

	c := New(srv.URL+"/", zap.NewNop())
	vec, err := c.Embed(context.Background(), "", "Go, Kubernetes")
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}

	if len(vec) != 3 || vec[0] != 1 || vec[2] != 0.5 {
		t.Fatalf("unexpected vector: %v", vec)
	}

	if captured.Model != DefaultEmbedModel {
		t.Errorf("model = %q, want %q", captured.Model, DefaultEmbedModel)
	}
	if captured.Prompt != "Go, Kubernetes" {
		t.Errorf("prompt = %q", captured.Prompt)
	}
}

func TestEmbedNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer srv.Close()

	c := New(srv.URL, zap.NewNop())
	_, err := c.Embed(context.Background(), "nomic-embed-text", "text")
	if !errors.Is(err, ai.ErrDeclined) {
		t.Fatalf("expected ErrDeclined on non-200 status, got %v", err)
	}
}

func TestEmbedEmptyVectorIsDeclined(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(embeddingsResponse{})
	}))
	defer srv.Close()

	c := New(srv.URL, zap.NewNop())
	_, err := c.Embed(context.Background(), "nomic-embed-text", "text")
	if !errors.Is(err, ai.ErrDeclined) {
		t.Fatalf("expected ErrDeclined for an empty embedding, got %v", err)
	}
}

func TestEmbedServerDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := New(srv.URL, zap.NewNop())
	_, err := c.Embed(context.Background(), "nomic-embed-text", "text")
	if err == nil {
		t.Fatal("expected error when server is down")
	}
	if errors.Is(err, ai.ErrDeclined) {
		t.Fatalf("a transport failure must not be reported as declined: %v", err)
	}
}

func TestEmbedHonoursContextDeadline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(2 * time.Second):
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	c := New(srv.URL, zap.NewNop())
	start := time.Now()
	if _, err := c.Embed(ctx, "nomic-embed-text", "text"); err == nil {
		t.Fatal("expected deadline error")
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("Embed took %v, want prompt cancellation", elapsed)
	}
}

func TestGenerateContent(t *testing.T) {
	var captured generateRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			http.NotFound(w, r)
			return
		}
		json.NewDecoder(r.Body).Decode(&captured)
		json.NewEncoder(w).Encode(generateResponse{Response: " {\"score\":0.8} ", Done: true})
	}))
	defer srv.Close()

	g := NewGenerator(New(srv.URL, zap.NewNop()), "")
	out, err := g.GenerateContent(context.Background(), "rate the match")
	if err != nil {
		t.Fatalf("GenerateContent: %v", err)
	}

	if out != `{"score":0.8}` {
		t.Errorf("output = %q", out)
	}
	if captured.Model != DefaultModel || captured.Format != "json" || captured.Stream {
		t.Errorf("unexpected request: %+v", captured)
	}
	if g.Model() != DefaultModel {
		t.Errorf("Model() = %q", g.Model())
	}
}

func TestGenerateContentEmptyResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(generateResponse{Done: true})
	}))
	defer srv.Close()

	g := NewGenerator(New(srv.URL, zap.NewNop()), "phi4-mini")
	if _, err := g.GenerateContent(context.Background(), "prompt"); err == nil {
		t.Fatal("expected error on empty response")
	}
}

func TestGenerateContentMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	g := NewGenerator(New(srv.URL, zap.NewNop()), "phi4-mini")
	if _, err := g.GenerateContent(context.Background(), "prompt"); err == nil {
		t.Fatal("expected decode error")
	}
}
