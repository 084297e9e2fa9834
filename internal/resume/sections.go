package resume

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/spigell/resume-screener/internal/patterns"
)

var (
	lineBreakRe = regexp.MustCompile(`\r\n|\r|\n`)
	spacesRe    = regexp.MustCompile(`[ \t]+`)
)

// Sections maps a label to the text of its section, header line included.
type Sections map[patterns.Label]string

// Get returns the section text. Missing and empty sections both report false.
func (s Sections) Get(label patterns.Label) (string, bool) {
	text, ok := s[label]
	return text, ok && text != ""
}

type boundary struct {
	line  int
	label patterns.Label
}

// Segment splits text into sections using the header patterns.
//
// Every line is tested against every header, so one line can open several
// sections; ties on a line are ordered by label name. A section runs until the
// next recorded boundary. When a label is recorded more than once the later
// section replaces the earlier one.
func Segment(text string) Sections {
	lines := splitLines(text)

	var bounds []boundary
	for i, line := range lines {
		for _, label := range patterns.Labels() {
			if _, ok := patterns.Header(label, line); ok {
				bounds = append(bounds, boundary{line: i, label: label})
			}
		}
	}

	sort.SliceStable(bounds, func(i, j int) bool {
		if bounds[i].line != bounds[j].line {
			return bounds[i].line < bounds[j].line
		}
		return bounds[i].label < bounds[j].label
	})

	sections := make(Sections, len(bounds))
	for j, b := range bounds {
		end := len(lines)
		if j+1 < len(bounds) {
			end = bounds[j+1].line
		}
		sections[b.label] = strings.TrimSpace(strings.Join(lines[b.line:end], "\n"))
	}

	return sections
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	return lineBreakRe.Split(text, -1)
}

// clean collapses runs of spaces and tabs and trims the result.
func clean(s string) string {
	return strings.TrimSpace(spacesRe.ReplaceAllString(s, " "))
}

// isHeading reports whether line is a bare section heading such as
// "Work Experience:" rather than prose that happens to contain the keyword.
// isBareHeading is stricter than isHeading: besides the header keyword the
// line may hold at most one qualifier word such as "Personal" or "Key".
func isBareHeading(label patterns.Label, line string) bool {
	m, ok := patterns.Header(label, line)
	if !ok {
		return false
	}
	rest := line[:m.Start] + " " + line[m.End:]
	words := strings.FieldsFunc(rest, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	if len(words) > 1 {
		return false
	}
	return len(words) == 0 || !strings.ContainsAny(words[0], "0123456789")
}

func isHeading(label patterns.Label, line string) bool {
	if _, ok := patterns.Header(label, line); !ok {
		return false
	}
	return len(strings.Fields(line)) <= 4 && !strings.ContainsAny(line, ",|")
}
