package resume

// Record is the external form of a ParsedResume. Absent name and email are
// rendered as "Not Found", absent links as empty strings.
type Record struct {
	FullName          string     `json:"full_name" yaml:"full_name"`
	Email             string     `json:"email" yaml:"email"`
	LinkedIn          string     `json:"linkedin" yaml:"linkedin"`
	GitHub            string     `json:"github" yaml:"github"`
	TechnicalSkills   []string   `json:"technical_skills" yaml:"technical_skills"`
	SoftSkills        []string   `json:"soft_skills" yaml:"soft_skills"`
	EmploymentDetails []JobEntry `json:"employment_details" yaml:"employment_details"`
	Education         []EduEntry `json:"education" yaml:"education"`
	Projects          []string   `json:"projects" yaml:"projects"`
	Suggestions       []string   `json:"suggestions" yaml:"suggestions"`
}

// Record converts the parsed resume to its external form. Nil slices become
// empty so encoders emit [] instead of null.
func (p *ParsedResume) Record() Record {
	return Record{
		FullName:          p.FullName.Or(NotFound),
		Email:             p.Email.Or(NotFound),
		LinkedIn:          p.LinkedIn.String(),
		GitHub:            p.GitHub.String(),
		TechnicalSkills:   nonNil(p.TechnicalSkills),
		SoftSkills:        nonNil(p.SoftSkills),
		EmploymentDetails: nonNil(p.EmploymentDetails),
		Education:         nonNil(p.Education),
		Projects:          nonNil(p.Projects),
		Suggestions:       nonNil(p.Suggestions),
	}
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
