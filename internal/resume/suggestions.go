package resume

import "github.com/spigell/resume-screener/internal/similarity"

// suggest returns advice for the candidate. Weak matches get gap-filling
// advice, better matches get generic tips.
func suggest(p *ParsedResume, status similarity.Tier) []string {
	var out []string
	switch status {
	case similarity.NeedsImprovement:
		if len(p.TechnicalSkills) == 0 {
			out = append(out, "Add a clear Technical Skills section with tools and technologies.")
		}
		if len(p.EmploymentDetails) == 0 {
			out = append(out, "Include detailed Work Experience with roles and achievements.")
		}
		if len(p.Education) == 0 {
			out = append(out, "Mention your Education with degree and year.")
		}
	case similarity.GoodMatch:
		out = append(out,
			"Highlight measurable achievements in your work experience.",
			"Add links to LinkedIn or GitHub if available.",
		)
	case similarity.StrongMatch:
		out = append(out, "Your resume is strong. Keep it updated with new projects and skills.")
	}
	return out
}
