package resume

import (
	"regexp"
	"strings"

	"github.com/spigell/resume-screener/internal/patterns"
)

var (
	degreeRe = regexp.MustCompile(`(?i)(Bachelor|Master|PhD|Diploma)[^,;\n]*`)
	yearRe   = regexp.MustCompile(`\b(19|20)\d{2}\b`)

	degreeKeywords = []string{"bachelor", "master", "phd", "diploma", "degree"}
)

// extractEducation only reads the education section; there is no full-text
// fallback because degree keywords are too common elsewhere.
func extractEducation(sections Sections) []EduEntry {
	src, ok := sections.Get(patterns.Education)
	if !ok {
		return nil
	}

	var entries []EduEntry
	for _, line := range splitLines(src) {
		if !containsAny(strings.ToLower(line), degreeKeywords) {
			continue
		}
		entries = append(entries, EduEntry{
			Degree:  clean(degreeRe.FindString(line)),
			Details: clean(line),
			Year:    yearRe.FindString(line),
		})
	}

	return truncate(entries, maxEducation)
}

func extractProjects(sections Sections) []string {
	src, ok := sections.Get(patterns.Projects)
	if !ok {
		return nil
	}

	var projects []string
	for i, line := range splitLines(src) {
		if i == 0 && isBareHeading(patterns.Projects, line) {
			continue
		}
		if len(line) <= 5 {
			continue
		}
		if _, ok := patterns.Header(patterns.Skills, line); ok {
			continue
		}
		projects = append(projects, clean(line))
	}

	return truncate(projects, maxProjects)
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
