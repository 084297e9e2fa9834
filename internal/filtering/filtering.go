package filtering

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spigell/resume-screener/internal/similarity"
)

// Filter represents a single filtering step applied to ranked results.
// Filters keep no per-run state, so one chain may serve concurrent runs once
// Disable calls are done.
type Filter interface {
	Name() string
	Disable(reason string)
	IsEnabled() bool

	Validate(cfg *Config) error
	Apply(ctx context.Context, cfg *Config, deps Deps, results []similarity.MatchResult) ([]similarity.MatchResult, Step, error)
}

// Deps aggregates dependencies shared across all filtering steps.
type Deps struct {
	Logger *zap.Logger
	// Docs are the scored documents, indexed by MatchResult.Index.
	Docs []similarity.Document
}

// Text returns the source text of a result, or "" when it is unknown.
func (d Deps) Text(r similarity.MatchResult) string {
	if r.Index < 0 || r.Index >= len(d.Docs) {
		return ""
	}
	return d.Docs[r.Index].Text
}

// Step describes the result of executing a filtering step.
type Step struct {
	Initial int `json:"initial" yaml:"initial"`
	Dropped int `json:"dropped" yaml:"dropped"`
	Left    int `json:"left" yaml:"left"`
}

// Applied is a Step tagged with the filter that produced it.
type Applied struct {
	Name string `json:"name" yaml:"name"`
	Step `yaml:",inline"`
}

// Config contains configuration settings consumed by the filters.
type Config struct {
	MinScore        float64
	Limit           int
	RequireSections []string
}

// Status represents runtime information about a filter.
type Status struct {
	Name    string
	Enabled bool
	Reason  string
}

// Default returns the standard filter chain in execution order.
func Default() []Filter {
	return []Filter{
		NewRequiredSections(),
		NewMinScore(),
		NewLimit(),
	}
}

// DisableByName marks a filter with the provided name as disabled while keeping it in the list.
func DisableByName(steps []Filter, name, reason string) {
	for _, step := range steps {
		if step.Name() == name {
			step.Disable(reason)
		}
	}
}

// Run executes the supplied filters sequentially and returns the surviving
// results together with per-step counters.
func Run(ctx context.Context, cfg *Config, deps Deps, steps []Filter, results []similarity.MatchResult) ([]similarity.MatchResult, []Applied, error) {
	if cfg == nil {
		cfg = &Config{}
	}

	for _, step := range steps {
		if !step.IsEnabled() {
			continue
		}
		if err := step.Validate(cfg); err != nil {
			return nil, nil, fmt.Errorf("%s: %w", step.Name(), err)
		}
	}

	applied := make([]Applied, 0, len(steps))
	for _, step := range steps {
		if !step.IsEnabled() {
			if deps.Logger != nil {
				deps.Logger.Debug("filter disabled", zap.String("name", step.Name()))
			}
			continue
		}

		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		next, info, err := step.Apply(ctx, cfg, deps, results)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", step.Name(), err)
		}

		if deps.Logger != nil {
			deps.Logger.Info("filter step",
				zap.String("name", step.Name()),
				zap.Int("initial", info.Initial),
				zap.Int("dropped", info.Dropped),
				zap.Int("left", info.Left),
			)
		}

		results = next
		applied = append(applied, Applied{Name: step.Name(), Step: info})
	}

	return results, applied, nil
}

// Describe returns status entries for the provided filters.
func Describe(steps []Filter) []Status {
	statuses := make([]Status, 0, len(steps))
	for _, step := range steps {
		status := Status{Name: step.Name(), Enabled: step.IsEnabled()}
		if r, ok := step.(interface{ Reason() string }); ok {
			status.Reason = r.Reason()
		}
		statuses = append(statuses, status)
	}
	return statuses
}

// toggle carries the enabled state shared by every filter.
type toggle struct {
	disabled bool
	reason   string
}

func (t *toggle) Disable(reason string) {
	t.disabled = true
	t.reason = reason
}

func (t *toggle) IsEnabled() bool { return !t.disabled }

func (t *toggle) Reason() string { return t.reason }
