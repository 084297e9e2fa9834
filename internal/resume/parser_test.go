package resume

import (
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/spigell/resume-screener/internal/patterns"
	"github.com/spigell/resume-screener/internal/similarity"
)

const fullResume = `JANE DOE
jane.doe@example.com | linkedin.com/in/janedoe | github.com/janedoe

Summary
Backend engineer focused on communication and leadership.

Technical Skills
Go, Python, Kubernetes | PostgreSQL / Redis
go, Docker

Work Experience
Senior Engineer | Globex
Mar 2019 - Present
• Led migration to Kubernetes
• Cut latency by 40%
Developer, Initech 2016 - 2019
- Maintained billing services

Education
Bachelor of Science in Computer Science, MIT, 2016

Projects
resume-screener: ranking resumes with TF-IDF
`

func TestParseFullResume(t *testing.T) {
	t.Parallel()

	got := Parse(fullResume, similarity.GoodMatch)

	if got.FullName.String() != "JANE DOE" {
		t.Fatalf("unexpected name %q", got.FullName.String())
	}
	if got.Email.String() != "jane.doe@example.com" {
		t.Fatalf("unexpected email %q", got.Email.String())
	}
	if got.LinkedIn.String() != "https://linkedin.com/in/janedoe" {
		t.Fatalf("unexpected linkedin %q", got.LinkedIn.String())
	}
	if got.GitHub.String() != "https://github.com/janedoe" {
		t.Fatalf("unexpected github %q", got.GitHub.String())
	}

	wantSkills := []string{"Go", "Python", "Kubernetes", "PostgreSQL", "Redis", "Docker"}
	if !reflect.DeepEqual(got.TechnicalSkills, wantSkills) {
		t.Fatalf("unexpected skills %v", got.TechnicalSkills)
	}
	if !reflect.DeepEqual(got.SoftSkills, []string{"Communication", "Leadership"}) {
		t.Fatalf("unexpected soft skills %v", got.SoftSkills)
	}

	wantJobs := []JobEntry{
		{
			Role:         "Senior Engineer",
			Company:      "Globex",
			Duration:     "Mar 2019 - Present",
			Achievements: []string{"Led migration to Kubernetes", "Cut latency by 40%"},
		},
		{
			Role:         "Developer",
			Company:      "Initech",
			Duration:     "2016 - 2019",
			Achievements: []string{"Maintained billing services"},
		},
	}
	if !reflect.DeepEqual(got.EmploymentDetails, wantJobs) {
		t.Fatalf("unexpected jobs %+v", got.EmploymentDetails)
	}

	wantEdu := []EduEntry{{
		Degree:  "Bachelor of Science in Computer Science",
		Details: "Bachelor of Science in Computer Science, MIT, 2016",
		Year:    "2016",
	}}
	if !reflect.DeepEqual(got.Education, wantEdu) {
		t.Fatalf("unexpected education %+v", got.Education)
	}
	if !reflect.DeepEqual(got.Projects, []string{"resume-screener: ranking resumes with TF-IDF"}) {
		t.Fatalf("unexpected projects %v", got.Projects)
	}
	if len(got.Suggestions) != 2 {
		t.Fatalf("expected generic suggestions for a good match, got %v", got.Suggestions)
	}
}

func TestParseExperienceBlock(t *testing.T) {
	t.Parallel()

	text := "Experience\nSoftware Engineer, Acme Corp\nJan 2020 - Present\nBuilt scalable services"
	got := Parse(text, similarity.Unknown)

	want := []JobEntry{{
		Role:         "Software Engineer",
		Company:      "Acme Corp",
		Duration:     "Jan 2020 - Present",
		Achievements: []string{"Built scalable services"},
	}}
	if !reflect.DeepEqual(got.EmploymentDetails, want) {
		t.Fatalf("unexpected jobs %+v", got.EmploymentDetails)
	}
	if len(got.Suggestions) != 0 {
		t.Fatalf("expected no suggestions without a tier, got %v", got.Suggestions)
	}
}

func numbered(format string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf(format, i+1)
	}
	return out
}

func TestParseListCaps(t *testing.T) {
	t.Parallel()

	var jobs []string
	for i := 1; i <= 10; i++ {
		jobs = append(jobs, fmt.Sprintf("Role %d | Company %d\nJan 2010 - Dec 2011\nShipped release %d", i, i, i))
	}

	tests := []struct {
		name  string
		text  string
		count func(*ParsedResume) int
		want  int
	}{
		{
			name:  "technical skills",
			text:  "Skills\n" + strings.Join(numbered("tool%02d", 60), ", "),
			count: func(p *ParsedResume) int { return len(p.TechnicalSkills) },
			want:  maxTechnicalSkills,
		},
		{
			name:  "jobs",
			text:  "Experience\n" + strings.Join(jobs, "\n"),
			count: func(p *ParsedResume) int { return len(p.EmploymentDetails) },
			want:  maxJobs,
		},
		{
			name: "achievements",
			text: "Experience\nEngineer | Acme\nJan 2010 - Dec 2011\n" +
				strings.Join(numbered("Shipped release %d", 12), "\n"),
			count: func(p *ParsedResume) int { return len(p.EmploymentDetails[0].Achievements) },
			want:  maxAchievements,
		},
		{
			name:  "education",
			text:  "Education\n" + strings.Join(numbered("Bachelor of Arts %d, 2001", 7), "\n"),
			count: func(p *ParsedResume) int { return len(p.Education) },
			want:  maxEducation,
		},
		{
			name:  "projects",
			text:  "Projects\n" + strings.Join(numbered("Built billing tool %d", 9), "\n"),
			count: func(p *ParsedResume) int { return len(p.Projects) },
			want:  maxProjects,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.count(Parse(tt.text, similarity.Unknown)); got != tt.want {
				t.Fatalf("expected %d entries, got %d", tt.want, got)
			}
		})
	}
}

func TestParseListCapsKeepFirstEntries(t *testing.T) {
	t.Parallel()

	got := Parse("Skills\n"+strings.Join(numbered("tool%02d", 60), ", "), similarity.Unknown)
	if got.TechnicalSkills[0] != "tool01" || got.TechnicalSkills[maxTechnicalSkills-1] != "tool50" {
		t.Fatalf("expected the first %d skills, got %v", maxTechnicalSkills, got.TechnicalSkills)
	}

	// Every vocabulary phrase fits under the soft skill cap.
	soft := Parse(strings.Join(patterns.SoftSkills(), ". "), similarity.Unknown).SoftSkills
	if len(soft) != len(patterns.SoftSkills()) || len(soft) > maxSoftSkills {
		t.Fatalf("expected all %d soft skills, got %v", len(patterns.SoftSkills()), soft)
	}
}

func TestParseProjectLinesMentioningProject(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text string
		want []string
	}{
		{text: "Projects\n" + strings.Join(numbered("project number %d", 9), "\n"), want: []string{"project number 9"}},
		{text: "Side Projects:\nBilling engine in Go", want: []string{"Billing engine in Go"}},
		{text: "PROJECTS\nProject 1 dashboards\n", want: []string{"Project 1 dashboards"}},
	}

	for _, tt := range tests {
		if got := Parse(tt.text, similarity.Unknown).Projects; !reflect.DeepEqual(got, tt.want) {
			t.Fatalf("Parse(%q) projects = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestParseExperienceCompanyAboveTitle(t *testing.T) {
	t.Parallel()

	got := Parse("Experience\nAcme Corp\nSenior Engineer\nJan 2020 - Present\nShipped the billing service", similarity.Unknown)
	want := []JobEntry{{
		Role:         "Senior Engineer",
		Company:      "Acme Corp",
		Duration:     "Jan 2020 - Present",
		Achievements: []string{"Shipped the billing service"},
	}}
	if !reflect.DeepEqual(got.EmploymentDetails, want) {
		t.Fatalf("unexpected jobs %+v", got.EmploymentDetails)
	}

	// Without an experience section the line above is likely contact info.
	got = Parse("Jane Smith\nSenior Engineer\nJan 2020 - Present", similarity.Unknown)
	if len(got.EmploymentDetails) != 1 || got.EmploymentDetails[0].Company != "" {
		t.Fatalf("expected no company outside an experience section, got %+v", got.EmploymentDetails)
	}
}

func TestParseWithoutContactDetails(t *testing.T) {
	t.Parallel()

	got := Parse("i write code in go\nand sometimes rust", similarity.Unknown).Record()
	if got.FullName != NotFound || got.Email != NotFound {
		t.Fatalf("expected sentinels, got name=%q email=%q", got.FullName, got.Email)
	}
	if got.LinkedIn != "" || got.GitHub != "" {
		t.Fatalf("expected empty links, got %q %q", got.LinkedIn, got.GitHub)
	}
}

func TestParseEmptyText(t *testing.T) {
	t.Parallel()

	parsed := Parse("", similarity.NeedsImprovement)
	_, nameFound := parsed.FullName.Get()
	_, emailFound := parsed.Email.Get()
	if nameFound || emailFound {
		t.Fatalf("expected absent contact fields: %+v", parsed)
	}
	if len(parsed.TechnicalSkills)+len(parsed.SoftSkills)+len(parsed.EmploymentDetails)+
		len(parsed.Education)+len(parsed.Projects) != 0 {
		t.Fatalf("expected empty lists: %+v", parsed)
	}

	want := []string{
		"Add a clear Technical Skills section with tools and technologies.",
		"Include detailed Work Experience with roles and achievements.",
		"Mention your Education with degree and year.",
	}
	if !reflect.DeepEqual(parsed.Suggestions, want) {
		t.Fatalf("unexpected suggestions %v", parsed.Suggestions)
	}
}

func TestNameFallsBackToEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text string
		want string
	}{
		{text: "contact: john.smith@example.com", want: "John Smith"},
		{text: "contact: ada_lovelace@example.com", want: "Ada Lovelace"},
		{text: "contact: jsmith@example.com", want: ""},
	}

	for _, tt := range tests {
		got := Parse(tt.text, similarity.Unknown)
		if got.FullName.String() != tt.want {
			t.Fatalf("Parse(%q) name = %q, want %q", tt.text, got.FullName.String(), tt.want)
		}
	}
}

func TestNameSkipsHeaderLines(t *testing.T) {
	t.Parallel()

	got := Parse("Professional Summary\nWork Experience\nsee below", similarity.Unknown)
	if _, found := got.FullName.Get(); found {
		t.Fatalf("expected header lines to be rejected, got %q", got.FullName.String())
	}
}

func TestDedupeFoldIsIdempotent(t *testing.T) {
	t.Parallel()

	in := []string{"Go", "go", "Python", "GO", "Rust", "python"}
	once := DedupeFold(in)
	if !reflect.DeepEqual(once, []string{"Go", "Python", "Rust"}) {
		t.Fatalf("unexpected dedupe result %v", once)
	}
	if twice := DedupeFold(once); !reflect.DeepEqual(once, twice) {
		t.Fatalf("dedupe is not idempotent: %v vs %v", once, twice)
	}

	skills := Parse("Skills: Go, go, Docker, docker / Go", similarity.Unknown).TechnicalSkills
	if !reflect.DeepEqual(skills, []string{"Go", "Docker"}) {
		t.Fatalf("unexpected skills %v", skills)
	}
	if !reflect.DeepEqual(DedupeFold(skills), skills) {
		t.Fatalf("extracted skills are not stable under dedupe: %v", skills)
	}
}

func TestTechnicalSkillsLimits(t *testing.T) {
	t.Parallel()

	got := Parse("Skills\nC, Go, this token is definitely far longer than forty characters", similarity.Unknown)
	if !reflect.DeepEqual(got.TechnicalSkills, []string{"Go"}) {
		t.Fatalf("expected only length-bounded tokens, got %v", got.TechnicalSkills)
	}
}
