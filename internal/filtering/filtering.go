// Package filtering narrows the candidates sent for scoring and the results
// reported afterwards.
package filtering

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/cv-matcher/internal/matching"
	"github.com/spigell/cv-matcher/internal/profile"
)

// Filter represents a single filtering step applied to entries.
type Filter interface {
	Name() string
	Disable(reason string)
	IsEnabled() bool

	Apply(ctx context.Context, deps Deps, e *Entries) (*Entries, Step, error)
}

// Deps aggregates dependencies shared across all filtering steps.
type Deps struct {
	Logger *zap.Logger
}

// Step describes the result of executing a filtering step.
type Step struct {
	Initial int
	Dropped int
	Left    int
}

// Entry is a candidate and, once scored, its result.
type Entry struct {
	Candidate profile.CandidateProfile
	Result    *matching.MatchResult
}

type Entries struct {
	Items []*Entry
}

// NewEntries wraps unscored candidates.
func NewEntries(candidates []profile.CandidateProfile) *Entries {
	items := make([]*Entry, 0, len(candidates))
	for _, c := range candidates {
		items = append(items, &Entry{Candidate: c})
	}
	return &Entries{Items: items}
}

func (e *Entries) Len() int {
	return len(e.Items)
}

// Candidates returns the candidate profiles in order.
func (e *Entries) Candidates() []profile.CandidateProfile {
	candidates := make([]profile.CandidateProfile, 0, len(e.Items))
	for _, item := range e.Items {
		candidates = append(candidates, item.Candidate)
	}
	return candidates
}

// ExcludeNames removes entries whose candidate name matches one of names,
// ignoring case and surrounding spaces. It returns the removed names.
func (e *Entries) ExcludeNames(names []string) []string {
	normalized := make([]string, 0, len(names))
	for _, name := range names {
		if name = normalizeName(name); name != "" {
			normalized = append(normalized, name)
		}
	}

	return e.exclude(func(item *Entry) bool {
		return slices.Contains(normalized, normalizeName(item.Candidate.Name))
	})
}

func (e *Entries) exclude(drop func(*Entry) bool) []string {
	var removed []string
	kept := e.Items[:0]
	for _, item := range e.Items {
		if drop(item) {
			removed = append(removed, item.Candidate.Name)
			continue
		}
		kept = append(kept, item)
	}
	e.Items = kept
	return removed
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Run executes the supplied filters sequentially and returns the remaining entries.
func Run(ctx context.Context, deps Deps, steps []Filter, e *Entries) (*Entries, error) {
	for _, step := range steps {
		if !step.IsEnabled() {
			if deps.Logger != nil {
				deps.Logger.Info("filter disabled", zap.String("name", step.Name()))
			}
			continue
		}

		next, info, err := step.Apply(ctx, deps, e)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}

		if deps.Logger != nil {
			deps.Logger.Info("filter step",
				zap.String("name", step.Name()),
				zap.Int("initial", info.Initial),
				zap.Int("dropped", info.Dropped),
				zap.Int("left", info.Left),
			)
		}

		e = next
	}

	return e, nil
}
