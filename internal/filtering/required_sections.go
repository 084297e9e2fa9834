package filtering

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/resume-screener/internal/similarity"
)

type requiredSectionsFilter struct {
	toggle
}

// NewRequiredSections creates a filter that drops resumes missing any of the
// configured section words. An empty list keeps everything.
func NewRequiredSections() Filter {
	return &requiredSectionsFilter{}
}

func (f *requiredSectionsFilter) Name() string { return "required_sections" }

func (f *requiredSectionsFilter) Validate(cfg *Config) error {
	for _, s := range cfg.RequireSections {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("required section names must not be blank")
		}
	}
	return nil
}

func (f *requiredSectionsFilter) Apply(_ context.Context, cfg *Config, deps Deps, results []similarity.MatchResult) ([]similarity.MatchResult, Step, error) {
	initial := len(results)
	if len(cfg.RequireSections) == 0 {
		return results, Step{Initial: initial, Left: initial}, nil
	}

	sections := make([]string, len(cfg.RequireSections))
	for i, s := range cfg.RequireSections {
		sections[i] = strings.ToLower(strings.TrimSpace(s))
	}

	kept := make([]similarity.MatchResult, 0, len(results))
	for _, r := range results {
		missing := missingSections(strings.ToLower(deps.Text(r)), sections)
		if len(missing) == 0 {
			kept = append(kept, r)
			continue
		}
		if deps.Logger != nil {
			deps.Logger.Info("excluding resume without required sections",
				zap.String("document", r.Filename),
				zap.Strings("missing_sections", missing),
			)
		}
	}

	return kept, Step{Initial: initial, Dropped: initial - len(kept), Left: len(kept)}, nil
}

func missingSections(text string, sections []string) []string {
	var out []string
	for _, s := range sections {
		if !strings.Contains(text, s) {
			out = append(out, s)
		}
	}
	return out
}
