// Package patterns holds the compiled matchers shared by the resume parser.
// All patterns are compiled once at package init and are safe for concurrent use.
package patterns

import (
	"regexp"
	"strings"
)

// Label names a resume section.
type Label string

const (
	Experience Label = "experience"
	Education  Label = "education"
	Projects   Label = "projects"
	Skills     Label = "skills"
	Summary    Label = "summary"
)

// Match is a single regex hit inside a string.
type Match struct {
	Text  string
	Start int
	End   int
}

type header struct {
	label Label
	re    *regexp.Regexp
}

const (
	monthYear = `\b(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\s*\d{4}`
	numeric   = `\d{1,2}/\d{4}`
	bareYear  = `\d{4}`
)

var (
	emailRe    = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	githubRe   = regexp.MustCompile(`(?i)(https?://)?(www\.)?github\.com/[A-Za-z0-9_.-]+`)
	linkedinRe = regexp.MustCompile(`(?i)(https?://)?(www\.)?linkedin\.com/(in|pub|company)/[A-Za-z0-9\-_/]+`)

	dateRangeRe = regexp.MustCompile(
		`(?i)(` + monthYear + `|` + numeric + `|` + bareYear + `)` +
			`\s*[-–—]\s*` +
			`(Present|` + monthYear + `|` + numeric + `|` + bareYear + `)`,
	)

	// Declaration order matters: it is the order Labels reports.
	headers = []header{
		{Experience, regexp.MustCompile(`(?i)\b(experience|work experience|employment|professional experience)\b`)},
		{Education, regexp.MustCompile(`(?i)\b(education|academics)\b`)},
		{Projects, regexp.MustCompile(`(?i)\b(projects?)\b`)},
		{Skills, regexp.MustCompile(`(?i)\b(skills|technical skills|tech skills|technologies|tooling)\b`)},
		{Summary, regexp.MustCompile(`(?i)\b(summary|profile|about)\b`)},
	}

	softSkills = []string{
		"communication", "teamwork", "problem solving", "leadership", "adaptability",
		"time management", "collaboration", "critical thinking", "creativity",
		"attention to detail", "ownership", "mentorship", "stakeholder management",
		"presentation", "negotiation", "empathy", "conflict resolution",
	}

	softSkillRes = compileSoftSkills(softSkills)
)

func compileSoftSkills(keywords []string) map[string]*regexp.Regexp {
	res := make(map[string]*regexp.Regexp, len(keywords))
	for _, kw := range keywords {
		res[kw] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(kw) + `\b`)
	}
	return res
}

func find(re *regexp.Regexp, s string) (Match, bool) {
	loc := re.FindStringIndex(s)
	if loc == nil {
		return Match{}, false
	}
	return Match{Text: s[loc[0]:loc[1]], Start: loc[0], End: loc[1]}, true
}

// Email returns the first email address in s.
func Email(s string) (Match, bool) { return find(emailRe, s) }

// GitHubProfile returns the first github.com profile link in s.
func GitHubProfile(s string) (Match, bool) { return find(githubRe, s) }

// LinkedInProfile returns the first linkedin.com profile link in s.
func LinkedInProfile(s string) (Match, bool) { return find(linkedinRe, s) }

// DateRange returns the first employment-style date range in s, e.g. "Jan 2020 - Present",
// "03/2019 – 05/2021" or "2017-2019".
func DateRange(s string) (Match, bool) { return find(dateRangeRe, s) }

// RemoveDateRanges deletes every date range from s.
func RemoveDateRanges(s string) string { return dateRangeRe.ReplaceAllString(s, "") }

// Header reports whether s contains a header keyword for label.
// Unknown labels never match.
func Header(label Label, s string) (Match, bool) {
	for _, h := range headers {
		if h.label == label {
			return find(h.re, s)
		}
	}
	return Match{}, false
}

// AnyHeader reports whether s matches any section header.
func AnyHeader(s string) bool {
	for _, h := range headers {
		if h.re.MatchString(s) {
			return true
		}
	}
	return false
}

// SoftSkill returns the whole-phrase match of keyword in s.
// Keywords outside the vocabulary are matched with an ad-hoc pattern.
func SoftSkill(keyword string, s string) (Match, bool) {
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	if keyword == "" {
		return Match{}, false
	}
	re, ok := softSkillRes[keyword]
	if !ok {
		re = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(keyword) + `\b`)
	}
	return find(re, s)
}

// Labels returns the header labels in declaration order.
func Labels() []Label {
	labels := make([]Label, 0, len(headers))
	for _, h := range headers {
		labels = append(labels, h.label)
	}
	return labels
}

// SoftSkills returns the soft-skill vocabulary in declaration order.
func SoftSkills() []string {
	out := make([]string, len(softSkills))
	copy(out, softSkills)
	return out
}
