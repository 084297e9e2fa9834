package resume

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/spigell/resume-screener/internal/patterns"
)

var skillSplitRe = regexp.MustCompile(`[,|/•;∙·\t]+`)

const (
	minSkillLen = 1
	maxSkillLen = 40
)

// extractTechnicalSkills reads delimiter-separated tokens from the skills
// section, or from the whole text when the section is missing.
func extractTechnicalSkills(sections Sections, text string) []string {
	src, ok := sections.Get(patterns.Skills)
	if !ok {
		src = text
	}

	var candidates []string
	for _, line := range splitLines(src) {
		if utf8.RuneCountInString(line) <= 2 || !strings.ContainsAny(line, ",|/•") {
			continue
		}
		// "Skills: Go, Rust" keeps only the list after the label.
		if head, rest, ok := strings.Cut(line, ":"); ok {
			if _, isLabel := patterns.Header(patterns.Skills, head); isLabel {
				line = rest
			}
		}
		for _, token := range skillSplitRe.Split(line, -1) {
			token = clean(token)
			if n := utf8.RuneCountInString(token); n > minSkillLen && n <= maxSkillLen {
				candidates = append(candidates, token)
			}
		}
	}

	return truncate(DedupeFold(candidates), maxTechnicalSkills)
}

// DedupeFold removes case-insensitive duplicates, keeping the first spelling
// and the original order. It is idempotent.
func DedupeFold(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		key := strings.ToLower(item)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, item)
	}
	return out
}

func extractSoftSkills(text string) []string {
	caser := titleCaser()
	var found []string
	for _, kw := range patterns.SoftSkills() {
		if _, ok := patterns.SoftSkill(kw, text); ok {
			found = append(found, caser.String(kw))
		}
	}
	return truncate(found, maxSoftSkills)
}
