package resume

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/spigell/resume-screener/internal/patterns"
)

const (
	bulletGlyphs      = "•*- \t"
	headingSeparators = " \t|,-–—()"
)

var headingSplitRe = regexp.MustCompile(`\s*[|–—]\s*|\s+-\s*|\s*-\s+`)

// extractExperience groups experience lines into job blocks anchored on date
// ranges. A date line that also carries text is its own heading; otherwise the
// line right above it is. Each block runs until the next heading.
func extractExperience(sections Sections, text string) []JobEntry {
	src, ok := sections.Get(patterns.Experience)
	if !ok {
		src = text
	}

	lines := experienceLines(src)
	if len(lines) == 0 {
		return nil
	}

	starts := blockStarts(lines)
	if len(starts) == 0 {
		return []JobEntry{buildJob(lines)}
	}

	jobs := make([]JobEntry, 0, len(starts))
	for k, start := range starts {
		end := len(lines)
		if k+1 < len(starts) {
			end = starts[k+1]
		}
		jobs = append(jobs, buildJob(lines[start:end]))
	}

	// "Company / Title / Dates": the line above the first block names the
	// employer. Only inside a real section, where it cannot be contact info.
	if ok && starts[0] > 0 && jobs[0].Company == "" {
		jobs[0].Company = clean(strings.Trim(lines[starts[0]-1], headingSeparators))
	}

	return truncate(jobs, maxJobs)
}

// experienceLines strips bullets, drops blanks and the leading heading, and
// stops at the first education or projects header.
func experienceLines(src string) []string {
	var lines []string
	for _, raw := range splitLines(src) {
		line := strings.Trim(raw, bulletGlyphs)
		if strings.TrimSpace(line) == "" {
			continue
		}
		if _, ok := patterns.Header(patterns.Education, line); ok {
			break
		}
		if _, ok := patterns.Header(patterns.Projects, line); ok {
			break
		}
		if len(lines) == 0 && isHeading(patterns.Experience, line) {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

func blockStarts(lines []string) []int {
	var starts []int
	prevDate := -1
	for i, line := range lines {
		if _, ok := patterns.DateRange(line); !ok {
			continue
		}

		start := i
		if !hasTitle(line) && i-1 > prevDate {
			start = i - 1
		}
		starts = append(starts, start)
		prevDate = i
	}
	return starts
}

func buildJob(block []string) JobEntry {
	job := JobEntry{}

	if m, ok := patterns.DateRange(strings.Join(block, " ")); ok {
		job.Duration = m.Text
	}

	heading := strings.Trim(patterns.RemoveDateRanges(block[0]), headingSeparators)
	job.Role, job.Company = splitHeading(heading)

	for _, line := range block[1:] {
		if isDateOnly(line) || len(line) <= 3 {
			continue
		}
		job.Achievements = append(job.Achievements, clean(line))
	}
	job.Achievements = truncate(job.Achievements, maxAchievements)

	return job
}

// splitHeading derives role and company from "Role | Company", "Role - Company"
// or "Role, Company"; anything else is a bare role.
func splitHeading(heading string) (string, string) {
	if parts := headingSplitRe.Split(heading, -1); len(parts) >= 2 {
		return clean(parts[0]), clean(parts[1])
	}
	if strings.Contains(heading, ",") {
		parts := strings.Split(heading, ",")
		return clean(parts[0]), clean(parts[1])
	}
	return clean(heading), ""
}

func hasTitle(line string) bool {
	letters := 0
	for _, r := range patterns.RemoveDateRanges(line) {
		if unicode.IsLetter(r) {
			letters++
		}
	}
	return letters >= 2
}

func isDateOnly(line string) bool {
	_, ok := patterns.DateRange(line)
	return ok && !hasTitle(line)
}
