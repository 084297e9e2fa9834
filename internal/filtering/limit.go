package filtering

import (
	"context"
	"fmt"

	"github.com/spigell/resume-screener/internal/similarity"
)

type limitFilter struct {
	toggle
}

// NewLimit creates a filter that keeps only the top results. Zero means unlimited.
func NewLimit() Filter {
	return &limitFilter{}
}

func (f *limitFilter) Name() string { return "limit" }

func (f *limitFilter) Validate(cfg *Config) error {
	if cfg.Limit < 0 {
		return fmt.Errorf("limit must not be negative, got %d", cfg.Limit)
	}
	return nil
}

func (f *limitFilter) Apply(_ context.Context, cfg *Config, _ Deps, results []similarity.MatchResult) ([]similarity.MatchResult, Step, error) {
	initial, limit := len(results), cfg.Limit
	if limit == 0 || initial <= limit {
		return results, Step{Initial: initial, Left: initial}, nil
	}
	return results[:limit], Step{Initial: initial, Dropped: initial - limit, Left: limit}, nil
}
