// Package matching runs a screening pass: scoring, result filters and
// optional enrichment of the ranked results with parsed resume records.
package matching

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spigell/resume-screener/internal/filtering"
	"github.com/spigell/resume-screener/internal/logger"
	"github.com/spigell/resume-screener/internal/resume"
	"github.com/spigell/resume-screener/internal/similarity"
	"github.com/spigell/resume-screener/internal/utils"
)

// Advisory messages reported instead of errors when input is missing.
const (
	MsgNoJobDescription = "Please paste or provide a Job Description."
	MsgNoResumes        = "Please upload at least one resume."
	MsgNoReadable       = "Could not read any resumes."
)

const logPreviewRunes = 80

// EnrichMode selects which ranked results get a parsed resume attached.
type EnrichMode string

const (
	EnrichAll       EnrichMode = "all"
	EnrichQualified EnrichMode = "qualified"
	EnrichNone      EnrichMode = "none"
)

// ParseEnrichMode validates a mode name. An empty name means EnrichAll.
func ParseEnrichMode(s string) (EnrichMode, error) {
	switch mode := EnrichMode(strings.ToLower(strings.TrimSpace(s))); mode {
	case "":
		return EnrichAll, nil
	case EnrichAll, EnrichQualified, EnrichNone:
		return mode, nil
	default:
		return "", fmt.Errorf("unknown enrich mode %q", s)
	}
}

// Options configures a Pipeline.
type Options struct {
	Policy  similarity.Policy
	Filters filtering.Config
	Enrich  EnrichMode
}

// Result is one ranked resume.
type Result struct {
	Rank int
	similarity.MatchResult
	// Parsed is nil when the result was not enriched.
	Parsed *resume.ParsedResume
}

// Report is the outcome of a screening run.
type Report struct {
	RunID string
	// Message is set instead of Results when input was missing.
	Message string
	Results []Result
	Steps   []filtering.Applied
}

// Pipeline scores documents against a job description. Run may be called
// concurrently; the filter chain must not be changed while runs are active.
type Pipeline struct {
	engine  *similarity.Engine
	filters []filtering.Filter
	opts    Options
	logger  *zap.Logger
}

// New validates opts and builds a Pipeline. When no filters are given the
// default chain is used.
func New(opts Options, log *zap.Logger, filters ...filtering.Filter) (*Pipeline, error) {
	engine, err := similarity.NewEngine(opts.Policy)
	if err != nil {
		return nil, fmt.Errorf("scoring policy: %w", err)
	}

	mode, err := ParseEnrichMode(string(opts.Enrich))
	if err != nil {
		return nil, err
	}
	opts.Enrich = mode

	if len(filters) == 0 {
		filters = filtering.Default()
	}

	return &Pipeline{
		engine:  engine,
		filters: filters,
		opts:    opts,
		logger:  logger.WithFields(log),
	}, nil
}

// Filters returns the filter chain, for status reporting.
func (p *Pipeline) Filters() []filtering.Filter { return p.filters }

// Run scores docs against jd. Missing input yields a report with an advisory
// Message and no error.
func (p *Pipeline) Run(ctx context.Context, jd string, docs []similarity.Document) (*Report, error) {
	report := &Report{RunID: uuid.NewString()}
	log := logger.WithCommonFields(p.logger, report.RunID, "")

	switch {
	case strings.TrimSpace(jd) == "":
		report.Message = MsgNoJobDescription
	case len(docs) == 0:
		report.Message = MsgNoResumes
	case len(similarity.Scoreable(docs)) == 0:
		report.Message = MsgNoReadable
	}
	if report.Message != "" {
		log.Warn("nothing to score", zap.String("reason", report.Message))
		return report, nil
	}

	log.Info("scoring resumes",
		zap.Int("documents", len(docs)),
		zap.String("job_description", utils.TruncateForLog(jd, logPreviewRunes)),
	)

	scored, err := p.engine.Score(jd, docs)
	if err != nil {
		if errors.Is(err, similarity.ErrNoDocuments) {
			report.Message = MsgNoReadable
			return report, nil
		}
		return nil, fmt.Errorf("scoring resumes: %w", err)
	}

	deps := filtering.Deps{Logger: log, Docs: docs}
	kept, steps, err := filtering.Run(ctx, &p.opts.Filters, deps, p.filters, scored)
	if err != nil {
		return nil, fmt.Errorf("filtering results: %w", err)
	}
	report.Steps = steps

	report.Results = make([]Result, len(kept))
	for i, m := range kept {
		report.Results[i] = Result{Rank: i + 1, MatchResult: m}
		if !p.shouldEnrich(m) {
			continue
		}
		report.Results[i].Parsed = resume.Parse(deps.Text(m), m.Status)
		logger.WithCommonFields(p.logger, report.RunID, m.Filename).Debug("parsed resume",
			zap.Int("rank", i+1),
			zap.Float64("score", m.Score),
			zap.Stringer("status", m.Status),
		)
	}

	log.Info("screening finished",
		zap.Int("ranked", len(report.Results)),
		zap.Int("excluded", len(scored)-len(report.Results)),
	)

	return report, nil
}

func (p *Pipeline) shouldEnrich(m similarity.MatchResult) bool {
	switch p.opts.Enrich {
	case EnrichNone:
		return false
	case EnrichQualified:
		return m.Score > p.opts.Policy.Good
	default:
		return true
	}
}
