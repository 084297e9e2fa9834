package resume

import "github.com/spigell/resume-screener/internal/similarity"

// Parse extracts a structured record from resume text. It never fails: an
// empty or unrecognisable text yields a record of empty and absent fields.
// status only selects which suggestions are produced.
func Parse(text string, status similarity.Tier) *ParsedResume {
	sections := Segment(text)

	email := extractEmail(text)
	parsed := &ParsedResume{
		FullName:          extractName(text, email),
		Email:             email,
		LinkedIn:          extractLinkedIn(text),
		GitHub:            extractGitHub(text),
		TechnicalSkills:   extractTechnicalSkills(sections, text),
		SoftSkills:        extractSoftSkills(text),
		EmploymentDetails: extractExperience(sections, text),
		Education:         extractEducation(sections),
		Projects:          extractProjects(sections),
	}
	parsed.Suggestions = suggest(parsed, status)

	return parsed
}
