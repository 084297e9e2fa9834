package resume

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/spigell/resume-screener/internal/patterns"
)

var nonLetterRe = regexp.MustCompile(`[^A-Za-z]+`)

// titleCaser is not safe for concurrent use, so callers build their own.
func titleCaser() cases.Caser { return cases.Title(language.English) }

func extractEmail(text string) Field {
	m, ok := patterns.Email(text)
	if !ok {
		return Field{}
	}
	return Found(m.Text)
}

func extractLinkedIn(text string) Field {
	m, ok := patterns.LinkedInProfile(text)
	if !ok {
		return Field{}
	}
	return Found(withScheme(m.Text))
}

func extractGitHub(text string) Field {
	m, ok := patterns.GitHubProfile(text)
	if !ok {
		return Field{}
	}
	return Found(withScheme(m.Text))
}

func withScheme(link string) string {
	if strings.HasPrefix(strings.ToLower(link), "http") {
		return link
	}
	return "https://" + link
}

// extractName looks for a 2-4 word capitalised line near the top of the
// resume, falling back to the local part of the email address.
func extractName(text string, email Field) Field {
	for _, line := range firstNonEmptyLines(text, nameScanLines) {
		words := splitWords(line)
		if len(words) < 2 || len(words) > 4 {
			continue
		}
		if !allTitleCase(words) && !allUpper(words) {
			continue
		}
		if patterns.AnyHeader(line) {
			continue
		}
		return Found(strings.Join(words, " "))
	}

	return nameFromEmail(email)
}

func nameFromEmail(email Field) Field {
	address, ok := email.Get()
	if !ok {
		return Field{}
	}

	local, _, _ := strings.Cut(address, "@")
	if !strings.ContainsAny(local, "._") {
		return Field{}
	}

	caser := titleCaser()
	pieces := strings.FieldsFunc(local, func(r rune) bool { return r == '.' || r == '_' })
	for i, p := range pieces {
		pieces[i] = caser.String(p)
	}

	if len(pieces) < 1 || len(pieces) > 3 {
		return Field{}
	}
	return Found(strings.Join(pieces, " "))
}

func firstNonEmptyLines(text string, n int) []string {
	out := make([]string, 0, n)
	for _, line := range splitLines(text) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, line)
		if len(out) == n {
			break
		}
	}
	return out
}

func splitWords(line string) []string {
	var words []string
	for _, w := range nonLetterRe.Split(line, -1) {
		if w != "" {
			words = append(words, w)
		}
	}
	return words
}

func allTitleCase(words []string) bool {
	for _, w := range words {
		if !unicode.IsUpper(rune(w[0])) {
			return false
		}
	}
	return true
}

func allUpper(words []string) bool {
	for _, w := range words {
		if strings.ToUpper(w) != w {
			return false
		}
	}
	return true
}
