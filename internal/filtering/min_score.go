package filtering

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spigell/resume-screener/internal/similarity"
)

type minScoreFilter struct {
	toggle
}

// NewMinScore creates a filter that drops results scoring below the configured minimum.
func NewMinScore() Filter {
	return &minScoreFilter{}
}

func (f *minScoreFilter) Name() string { return "min_score" }

func (f *minScoreFilter) Validate(cfg *Config) error {
	if cfg.MinScore < 0 || cfg.MinScore > 1 {
		return fmt.Errorf("minimum score must be within [0, 1], got %v", cfg.MinScore)
	}
	return nil
}

func (f *minScoreFilter) Apply(_ context.Context, cfg *Config, deps Deps, results []similarity.MatchResult) ([]similarity.MatchResult, Step, error) {
	initial := len(results)
	threshold := cfg.MinScore
	if threshold == 0 {
		return results, Step{Initial: initial, Left: initial}, nil
	}

	kept := make([]similarity.MatchResult, 0, len(results))
	var dropped []string
	for _, r := range results {
		if r.Score < threshold {
			dropped = append(dropped, r.Filename)
			continue
		}
		kept = append(kept, r)
	}

	if deps.Logger != nil && len(dropped) > 0 {
		deps.Logger.Info("excluding resumes below minimum score",
			zap.Float64("min_score", threshold),
			zap.Strings("excluded_resumes", dropped),
			zap.Int("resumes_left", len(kept)),
		)
	}

	return kept, Step{Initial: initial, Dropped: len(dropped), Left: len(kept)}, nil
}
