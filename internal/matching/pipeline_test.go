package matching

import (
	"context"
	"sync"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/resume-screener/internal/filtering"
	"github.com/spigell/resume-screener/internal/logger"
	"github.com/spigell/resume-screener/internal/similarity"
)

const jd = "python developer with django experience"

func newPipeline(t *testing.T, opts Options, log *zap.Logger) *Pipeline {
	t.Helper()
	if opts.Policy == (similarity.Policy{}) {
		opts.Policy = similarity.DefaultPolicy()
	}
	p, err := New(opts, log)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return p
}

func TestRunAdvisoryMessages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		jd   string
		docs []similarity.Document
		want string
	}{
		{name: "no job description", jd: "   ", docs: []similarity.Document{{ID: "a", Text: "go"}}, want: MsgNoJobDescription},
		{name: "no resumes", jd: jd, want: MsgNoResumes},
		{name: "nothing readable", jd: jd, docs: []similarity.Document{{ID: "a.pdf"}, {ID: "b.pdf", Text: " \n"}}, want: MsgNoReadable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := newPipeline(t, Options{}, nil)
			report, err := p.Run(context.Background(), tt.jd, tt.docs)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if report.Message != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, report.Message)
			}
			if len(report.Results) != 0 {
				t.Fatalf("expected no results, got %+v", report.Results)
			}
			if report.RunID == "" {
				t.Fatalf("expected run id to be set")
			}
		})
	}
}

func TestRunRanksAndEnriches(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.InfoLevel)
	p := newPipeline(t, Options{}, zap.New(core))

	docs := []similarity.Document{
		{ID: "cook.txt", Text: "I only know cooking"},
		{ID: "empty.pdf", Text: ""},
		{ID: "dev.txt", Text: "Jane Smith\nExperienced Python and Django engineer"},
	}
	report, err := p.Run(context.Background(), jd, docs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Message != "" {
		t.Fatalf("unexpected advisory %q", report.Message)
	}
	if len(report.Results) != 2 {
		t.Fatalf("expected blank document to be excluded, got %+v", report.Results)
	}

	first := report.Results[0]
	if first.Rank != 1 || first.Filename != "dev.txt" || report.Results[1].Rank != 2 {
		t.Fatalf("unexpected ranking %+v", report.Results)
	}
	if first.Parsed == nil || first.Parsed.FullName.String() != "Jane Smith" {
		t.Fatalf("expected enriched record for dev.txt, got %+v", first.Parsed)
	}
	if report.Results[1].Parsed == nil {
		t.Fatalf("enrich mode all must parse every result")
	}
	if len(report.Steps) != len(filtering.Default()) {
		t.Fatalf("expected a step per filter, got %+v", report.Steps)
	}

	finished := logs.FilterMessage("screening finished").All()
	if len(finished) != 1 || finished[0].ContextMap()[logger.FieldRunID] != report.RunID {
		t.Fatalf("expected finish log tagged with run id, got %+v", finished)
	}
}

func TestRunEnrichesDuplicateIDsWithTheirOwnText(t *testing.T) {
	t.Parallel()

	p := newPipeline(t, Options{}, nil)
	docs := []similarity.Document{
		{ID: "resume.pdf", Text: "Alice Brown\nalice@x.com\nPython and Django developer"},
		{ID: "resume.pdf", Text: "Bob Stone\nbob@y.com\nI only know cooking"},
	}

	report, err := p.Run(context.Background(), jd, docs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(report.Results) != 2 {
		t.Fatalf("expected both documents ranked, got %+v", report.Results)
	}

	want := []struct {
		index int
		name  string
		email string
	}{
		{index: 0, name: "Alice Brown", email: "alice@x.com"},
		{index: 1, name: "Bob Stone", email: "bob@y.com"},
	}
	for i, w := range want {
		r := report.Results[i]
		if r.Index != w.index {
			t.Fatalf("result %d: expected document %d, got %d", i, w.index, r.Index)
		}
		if r.Parsed.FullName.String() != w.name || r.Parsed.Email.String() != w.email {
			t.Fatalf("result %d: expected %s <%s>, got %s <%s>", i, w.name, w.email,
				r.Parsed.FullName.String(), r.Parsed.Email.String())
		}
	}
}

func TestRunConcurrently(t *testing.T) {
	t.Parallel()

	p := newPipeline(t, Options{Filters: filtering.Config{MinScore: 0.01, RequireSections: []string{"python"}}}, nil)
	docs := []similarity.Document{
		{ID: "a.txt", Text: "python"},
		{ID: "b.txt", Text: "python django developer"},
		{ID: "c.txt", Text: "cooking"},
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			report, err := p.Run(context.Background(), jd, docs)
			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}
			if len(report.Results) != 2 || report.Results[0].Filename != "b.txt" {
				t.Errorf("unexpected results %+v", report.Results)
			}
		}()
	}
	wg.Wait()
}

func TestRunEnrichModes(t *testing.T) {
	t.Parallel()

	docs := []similarity.Document{
		{ID: "match.txt", Text: "python developer with django experience"},
		{ID: "cook.txt", Text: "I only know cooking"},
	}

	tests := []struct {
		mode EnrichMode
		want []bool
	}{
		{mode: EnrichAll, want: []bool{true, true}},
		{mode: EnrichQualified, want: []bool{true, false}},
		{mode: EnrichNone, want: []bool{false, false}},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			t.Parallel()
			p := newPipeline(t, Options{Enrich: tt.mode}, nil)
			report, err := p.Run(context.Background(), jd, docs)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			for i, r := range report.Results {
				if (r.Parsed != nil) != tt.want[i] {
					t.Fatalf("result %d (%s): expected enriched=%v", i, r.Filename, tt.want[i])
				}
			}
		})
	}
}

func TestRunAppliesFilters(t *testing.T) {
	t.Parallel()

	p := newPipeline(t, Options{Filters: filtering.Config{MinScore: 0.01, Limit: 1}}, nil)
	report, err := p.Run(context.Background(), jd, []similarity.Document{
		{ID: "a.txt", Text: "python"},
		{ID: "b.txt", Text: "python django developer"},
		{ID: "c.txt", Text: "cooking"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(report.Results) != 1 || report.Results[0].Filename != "b.txt" || report.Results[0].Rank != 1 {
		t.Fatalf("unexpected results %+v", report.Results)
	}
}

func TestNewRejectsInvalidOptions(t *testing.T) {
	t.Parallel()

	if _, err := New(Options{Policy: similarity.Policy{Strong: 0.1, Good: 0.9}}, nil); err == nil {
		t.Fatalf("expected invalid policy to be rejected")
	}
	if _, err := New(Options{Policy: similarity.DefaultPolicy(), Enrich: "sometimes"}, nil); err == nil {
		t.Fatalf("expected unknown enrich mode to be rejected")
	}
}

func TestParseEnrichMode(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]EnrichMode{"": EnrichAll, " Qualified ": EnrichQualified, "none": EnrichNone} {
		got, err := ParseEnrichMode(in)
		if err != nil || got != want {
			t.Fatalf("ParseEnrichMode(%q) = %q, %v", in, got, err)
		}
	}
}
