// Package resume extracts structured fields from unstructured resume text.
//
// Extraction is heuristic and best-effort: every extractor degrades to an empty
// or absent value rather than returning an error.
package resume

const (
	// NotFound is the text rendered for an absent name or email.
	NotFound = "Not Found"

	maxTechnicalSkills = 50
	maxSoftSkills      = 25
	maxJobs            = 8
	maxAchievements    = 8
	maxEducation       = 5
	maxProjects        = 5
	nameScanLines      = 8
)

// Field is an optional extracted string.
type Field struct {
	value string
	found bool
}

// Found wraps a present value. Blank values are treated as absent.
func Found(v string) Field {
	if v == "" {
		return Field{}
	}
	return Field{value: v, found: true}
}

// Get returns the value and whether it was found.
func (f Field) Get() (string, bool) { return f.value, f.found }

// Or returns the value, or fallback when absent.
func (f Field) Or(fallback string) string {
	if !f.found {
		return fallback
	}
	return f.value
}

// String returns the value, or an empty string when absent.
func (f Field) String() string { return f.value }

// ParsedResume is the structured record produced by Parse.
type ParsedResume struct {
	FullName          Field
	Email             Field
	LinkedIn          Field
	GitHub            Field
	TechnicalSkills   []string
	SoftSkills        []string
	EmploymentDetails []JobEntry
	Education         []EduEntry
	Projects          []string
	Suggestions       []string
}

// JobEntry is one employment block.
type JobEntry struct {
	Role         string   `json:"role" yaml:"role"`
	Company      string   `json:"company" yaml:"company"`
	Duration     string   `json:"duration" yaml:"duration"`
	Achievements []string `json:"achievements" yaml:"achievements"`
}

// EduEntry is one education line.
type EduEntry struct {
	Degree  string `json:"degree" yaml:"degree"`
	Details string `json:"details" yaml:"details"`
	Year    string `json:"year" yaml:"year"`
}

func truncate[T any](items []T, limit int) []T {
	if len(items) > limit {
		return items[:limit]
	}
	return items
}
