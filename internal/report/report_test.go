package report

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/spigell/resume-screener/internal/filtering"
	"github.com/spigell/resume-screener/internal/matching"
	"github.com/spigell/resume-screener/internal/resume"
	"github.com/spigell/resume-screener/internal/similarity"
)

func sampleReport() *matching.Report {
	parsed := resume.Parse("Jane Smith\njane.smith@example.com\nSkills: Go, Python", similarity.StrongMatch)
	return &matching.Report{
		RunID: "run-1",
		Results: []matching.Result{
			{
				Rank: 1,
				MatchResult: similarity.MatchResult{
					Filename:   "jane.pdf",
					Score:      0.71234,
					Status:     similarity.StrongMatch,
					Suggestion: similarity.StrongMatch.Suggestion(),
				},
				Parsed: parsed,
			},
			{
				Rank: 2,
				MatchResult: similarity.MatchResult{
					Filename:   "cook.txt",
					Score:      0,
					Status:     similarity.NeedsImprovement,
					Suggestion: similarity.NeedsImprovement.Suggestion(),
				},
			},
		},
		Steps: []filtering.Applied{{Name: "limit", Step: filtering.Step{Initial: 2, Left: 2}}},
	}
}

func TestRenderJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleReport(), FormatJSON))

	var out map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, "run-1", out["run_id"])

	results := out["results"].([]any)
	require.Len(t, results, 2)

	first := results[0].(map[string]any)
	assert.Equal(t, float64(1), first["sno"])
	assert.Equal(t, "jane.pdf", first["filename"])
	assert.Equal(t, 71.23, first["score"])
	assert.Equal(t, "Strong Match", first["status"])
	assert.Equal(t, "green", first["color"])

	details := first["details"].(map[string]any)
	assert.Equal(t, "Jane Smith", details["full_name"])
	assert.Equal(t, "", details["linkedin"])
	assert.Equal(t, []any{"Go", "Python"}, details["technical_skills"])

	second := results[1].(map[string]any)
	assert.NotContains(t, second, "details")
	assert.Equal(t, "red", second["color"])

	steps := out["steps"].([]any)
	assert.Equal(t, "limit", steps[0].(map[string]any)["name"])
	assert.Equal(t, float64(2), steps[0].(map[string]any)["initial"])
}

func TestRenderYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleReport(), FormatYAML))

	var out Output
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, "run-1", out.RunID)
	require.Len(t, out.Results, 2)
	assert.Equal(t, "Good Match", Build(&matching.Report{Results: []matching.Result{{
		MatchResult: similarity.MatchResult{Status: similarity.GoodMatch},
	}}}).Results[0].Status)
	assert.Equal(t, "jane.smith@example.com", out.Results[0].Details.Email)
	assert.Equal(t, 2, out.Steps[0].Left)
}

func TestRenderTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleReport(), FormatTable))

	text := buf.String()
	assert.Contains(t, text, MsgSuccess)
	assert.Contains(t, text, "jane.pdf")
	assert.Contains(t, text, "71.23%")
	assert.Contains(t, text, "Needs Improvement")
}

func TestRenderTableAdvisory(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, &matching.Report{Message: matching.MsgNoResumes}, FormatTable))
	assert.Contains(t, buf.String(), matching.MsgNoResumes)
	assert.NotContains(t, buf.String(), MsgSuccess)
}

func TestRenderRecord(t *testing.T) {
	rec := resume.Parse("", similarity.Unknown).Record()

	var buf bytes.Buffer
	require.NoError(t, RenderRecord(&buf, rec, FormatTable))
	assert.Contains(t, buf.String(), resume.NotFound)

	buf.Reset()
	require.NoError(t, RenderRecord(&buf, rec, FormatJSON))
	assert.Contains(t, buf.String(), `"technical_skills": []`)
}

func TestRenderRecordsSingleDocument(t *testing.T) {
	recs := []FileRecord{
		{Filename: "a.txt", Record: resume.Parse("Jane Smith\njane@example.com", similarity.Unknown).Record()},
		{Filename: "b.txt", Record: resume.Parse("John Doe\njohn@example.com", similarity.Unknown).Record()},
	}

	var buf bytes.Buffer
	require.NoError(t, RenderRecords(&buf, recs, FormatJSON))
	var fromJSON []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &fromJSON))
	require.Len(t, fromJSON, 2)
	assert.Equal(t, "a.txt", fromJSON[0]["filename"])
	assert.Equal(t, "Jane Smith", fromJSON[0]["full_name"])
	assert.Equal(t, "b.txt", fromJSON[1]["filename"])
	assert.Equal(t, "john@example.com", fromJSON[1]["email"])

	buf.Reset()
	require.NoError(t, RenderRecords(&buf, recs, FormatYAML))
	var fromYAML []map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &fromYAML))
	require.Len(t, fromYAML, 2)
	assert.Equal(t, "b.txt", fromYAML[1]["filename"])
	assert.Equal(t, "John Doe", fromYAML[1]["full_name"])

	buf.Reset()
	require.NoError(t, RenderRecords(&buf, recs, FormatTable))
	assert.Contains(t, buf.String(), "== a.txt ==")
	assert.Contains(t, buf.String(), "== b.txt ==")

	buf.Reset()
	require.NoError(t, RenderRecords(&buf, nil, FormatJSON))
	assert.JSONEq(t, "[]", buf.String())
}

func TestParseFormat(t *testing.T) {
	tests := map[string]Format{"": FormatTable, "JSON": FormatJSON, "yml": FormatYAML, " yaml ": FormatYAML}
	for in, want := range tests {
		got, err := ParseFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseFormat("xml")
	assert.Error(t, err)
	assert.Error(t, Render(&bytes.Buffer{}, sampleReport(), Format("xml")))
}
