package filtering

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const excludeFileKey = "candidates"

type excludedFilter struct {
	names []string
}

// NewExcluded creates a filter that removes candidates listed by name in the config.
func NewExcluded(names []string) Filter {
	return &excludedFilter{names: names}
}

func (f *excludedFilter) Name() string { return "excluded_candidates" }

func (f *excludedFilter) Disable(string) {}

func (f *excludedFilter) IsEnabled() bool { return true }

func (f *excludedFilter) Apply(_ context.Context, deps Deps, e *Entries) (*Entries, Step, error) {
	initial := e.Len()
	if len(f.names) == 0 {
		return e, Step{Initial: initial, Left: e.Len()}, nil
	}

	removed := e.ExcludeNames(f.names)
	if deps.Logger != nil && len(removed) > 0 {
		deps.Logger.Info("excluding candidates by name",
			zap.Strings("excluded_candidates", removed),
			zap.Int("candidates_left", e.Len()),
		)
	}

	return e, Step{Initial: initial, Dropped: len(removed), Left: e.Len()}, nil
}

type excludeFileFilter struct {
	path string
}

// NewExcludeFile creates a filter that removes candidates listed under the
// "candidates" key of a yaml or json file. An empty path drops nothing.
func NewExcludeFile(path string) Filter {
	return &excludeFileFilter{path: strings.TrimSpace(path)}
}

func (f *excludeFileFilter) Name() string { return "exclude_file" }

func (f *excludeFileFilter) Disable(string) {}

func (f *excludeFileFilter) IsEnabled() bool { return true }

func (f *excludeFileFilter) Apply(_ context.Context, deps Deps, e *Entries) (*Entries, Step, error) {
	initial := e.Len()
	if f.path == "" {
		return e, Step{Initial: initial, Left: e.Len()}, nil
	}

	names, err := excludedFromFile(f.path)
	if err != nil {
		return e, Step{}, fmt.Errorf("getting excluded candidates from file: %w", err)
	}

	removed := e.ExcludeNames(names)
	if deps.Logger != nil && len(removed) > 0 {
		deps.Logger.Info("excluding candidates based on exclude file",
			zap.String("path", f.path),
			zap.Strings("excluded_candidates", removed),
			zap.Int("candidates_left", e.Len()),
		)
	}

	return e, Step{Initial: initial, Dropped: len(removed), Left: e.Len()}, nil
}

func excludedFromFile(path string) ([]string, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	return v.GetStringSlice(excludeFileKey), nil
}
