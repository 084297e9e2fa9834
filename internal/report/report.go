// Package report renders screening results for the terminal or for machines.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/spigell/resume-screener/internal/filtering"
	"github.com/spigell/resume-screener/internal/matching"
	"github.com/spigell/resume-screener/internal/resume"
	"github.com/spigell/resume-screener/internal/similarity"
)

// MsgSuccess heads a table report with at least one result.
const MsgSuccess = "Resumes matched successfully!"

// Format selects the renderer.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// ParseFormat validates a format name. An empty name means FormatTable.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatTable, nil
	case FormatTable, FormatJSON, FormatYAML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown output format %q", s)
	}
}

// Output is the machine-readable form of a report.
type Output struct {
	RunID   string              `json:"run_id" yaml:"run_id"`
	Message string              `json:"message,omitempty" yaml:"message,omitempty"`
	Results []Row               `json:"results" yaml:"results"`
	Steps   []filtering.Applied `json:"steps,omitempty" yaml:"steps,omitempty"`
}

// Row is one ranked resume. Score is a percentage rounded to two decimals.
type Row struct {
	Rank       int            `json:"sno" yaml:"sno"`
	Filename   string         `json:"filename" yaml:"filename"`
	Score      float64        `json:"score" yaml:"score"`
	Status     string         `json:"status" yaml:"status"`
	Color      string         `json:"color" yaml:"color"`
	Suggestion string         `json:"suggestion" yaml:"suggestion"`
	Details    *resume.Record `json:"details,omitempty" yaml:"details,omitempty"`
}

// Build converts a report into its output form.
func Build(r *matching.Report) Output {
	out := Output{
		RunID:   r.RunID,
		Message: r.Message,
		Results: make([]Row, 0, len(r.Results)),
		Steps:   r.Steps,
	}
	for _, res := range r.Results {
		row := Row{
			Rank:       res.Rank,
			Filename:   res.Filename,
			Score:      res.Percent(),
			Status:     res.Status.String(),
			Color:      colorName(res.Status),
			Suggestion: res.Suggestion,
		}
		if res.Parsed != nil {
			rec := res.Parsed.Record()
			row.Details = &rec
		}
		out.Results = append(out.Results, row)
	}
	return out
}

// Render writes the report to w in the given format.
func Render(w io.Writer, r *matching.Report, format Format) error {
	switch format {
	case FormatJSON:
		return encodeJSON(w, Build(r))
	case FormatYAML:
		return encodeYAML(w, Build(r))
	case FormatTable, "":
		return renderTable(w, r)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// FileRecord is a parsed resume tagged with the file it came from.
type FileRecord struct {
	Filename      string `json:"filename" yaml:"filename"`
	resume.Record `yaml:",inline"`
}

// RenderRecords writes parsed resumes as a single document: one list for
// json and yaml, one titled block per file for the table format.
func RenderRecords(w io.Writer, recs []FileRecord, format Format) error {
	if recs == nil {
		recs = []FileRecord{}
	}
	switch format {
	case FormatJSON:
		return encodeJSON(w, recs)
	case FormatYAML:
		return encodeYAML(w, recs)
	case FormatTable, "":
		for _, rec := range recs {
			if _, err := fmt.Fprintf(w, "%s\n", messageStyle.Render("== "+rec.Filename+" ==")); err != nil {
				return err
			}
			if err := renderRecord(w, rec.Record); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// RenderRecord writes a single parsed resume.
func RenderRecord(w io.Writer, rec resume.Record, format Format) error {
	switch format {
	case FormatJSON:
		return encodeJSON(w, rec)
	case FormatYAML:
		return encodeYAML(w, rec)
	case FormatTable, "":
		return renderRecord(w, rec)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func encodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding json: %w", err)
	}
	return nil
}

func encodeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding yaml: %w", err)
	}
	return enc.Close()
}

func colorName(t similarity.Tier) string {
	switch t {
	case similarity.StrongMatch:
		return "green"
	case similarity.GoodMatch:
		return "orange"
	case similarity.NeedsImprovement:
		return "red"
	default:
		return ""
	}
}
