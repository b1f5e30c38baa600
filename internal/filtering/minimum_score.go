package filtering

import (
	"context"

	"go.uber.org/zap"
)

type minimumScoreFilter struct {
	minimum float64
	enabled bool
}

// NewMinimumScore creates a filter that removes unscored, failed and
// below-threshold results.
func NewMinimumScore(minimum float64) Filter {
	return &minimumScoreFilter{minimum: minimum, enabled: true}
}

func (f *minimumScoreFilter) Name() string { return "minimum_score" }

func (f *minimumScoreFilter) Disable(string) { f.enabled = false }

func (f *minimumScoreFilter) IsEnabled() bool { return f.enabled }

func (f *minimumScoreFilter) Apply(_ context.Context, deps Deps, e *Entries) (*Entries, Step, error) {
	initial := e.Len()

	removed := e.exclude(func(item *Entry) bool {
		return !Fit(item, f.minimum)
	})
	if deps.Logger != nil && len(removed) > 0 {
		deps.Logger.Info("excluding candidates below the minimum score",
			zap.Float64("minimum_score", f.minimum),
			zap.Strings("excluded_candidates", removed),
			zap.Int("candidates_left", e.Len()),
		)
	}

	return e, Step{Initial: initial, Dropped: len(removed), Left: e.Len()}, nil
}

// Fit reports whether the entry carries a genuine score of at least minimum.
func Fit(item *Entry, minimum float64) bool {
	return item.Result != nil && item.Result.OK() && item.Result.Score >= minimum
}
