package matching

import (
	"context"
	"errors"
	"sync"

	"github.com/spigell/cv-matcher/internal/profile"
)

var errProviderDown = errors.New("provider down")

func testPair() Pair {
	return Pair{
		Job: profile.JobProfile{
			Title:              "Backend Engineer",
			Summary:            "Build Go services",
			RequiredSkills:     []string{"Go", "PostgreSQL"},
			RequiredExperience: "3+ years",
			Responsibilities:   []string{"Design APIs", "Operate services"},
		},
		Candidate: profile.CandidateProfile{
			Name:   "Ada",
			Skills: []string{"Go", "Kubernetes"},
			Education: []profile.Education{
				{Institution: "MIT", Degree: "BSc", Field: "CS", Years: "2010-2014"},
			},
			WorkExperience: []profile.WorkExperience{
				{Company: "Acme", Role: "Engineer", Years: "2014-2020", Description: "APIs"},
			},
			Certifications: []string{"CKA"},
		},
	}
}

// stubTextEmbedder answers per composite text; safe for the concurrent embedding phase.
type stubTextEmbedder struct {
	mu      sync.Mutex
	vectors map[string][]float32
	errs    map[string]error
	calls   []string
}

func newStubTextEmbedder(pair Pair, job, candidate []float32, jobErr, candidateErr error) *stubTextEmbedder {
	return &stubTextEmbedder{
		vectors: map[string][]float32{
			pair.Job.EmbeddingText():       job,
			pair.Candidate.EmbeddingText(): candidate,
		},
		errs: map[string]error{
			pair.Job.EmbeddingText():       jobErr,
			pair.Candidate.EmbeddingText(): candidateErr,
		},
	}
}

func (s *stubTextEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls = append(s.calls, text)
	if err := s.errs[text]; err != nil {
		return nil, err
	}
	return s.vectors[text], nil
}

type stubGenerator struct {
	responses []string
	errs      []error
	prompts   []string
	panicMsg  string
}

func (s *stubGenerator) GenerateContent(_ context.Context, prompt string) (string, error) {
	if s.panicMsg != "" {
		panic(s.panicMsg)
	}

	idx := len(s.prompts)
	s.prompts = append(s.prompts, prompt)

	var err error
	if idx < len(s.errs) {
		err = s.errs[idx]
	}
	if err != nil {
		return "", err
	}
	if idx < len(s.responses) {
		return s.responses[idx], nil
	}
	return "", errors.New("no response queued")
}

func (s *stubGenerator) Model() string {
	return "stub"
}
