package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/spigell/resume-screener/internal/matching"
	"github.com/spigell/resume-screener/internal/resume"
	"github.com/spigell/resume-screener/internal/similarity"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	messageStyle = lipgloss.NewStyle().Bold(true)
	labelStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#06B6D4"))

	tierColors = map[similarity.Tier]lipgloss.Color{
		similarity.StrongMatch:      lipgloss.Color("#A6E3A1"),
		similarity.GoodMatch:        lipgloss.Color("#FAB387"),
		similarity.NeedsImprovement: lipgloss.Color("#F38BA8"),
	}
)

const statusColumn = 3

func renderTable(w io.Writer, r *matching.Report) error {
	if r.Message != "" {
		_, err := fmt.Fprintln(w, messageStyle.Render(r.Message))
		return err
	}

	rows := make([][]string, 0, len(r.Results))
	for _, res := range r.Results {
		rows = append(rows, []string{
			fmt.Sprint(res.Rank),
			res.Filename,
			fmt.Sprintf("%.2f%%", res.Percent()),
			res.Status.String(),
			res.Suggestion,
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("#", "Resume", "Score", "Status", "Suggestion").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == statusColumn && row >= 0 && row < len(r.Results) {
				if c, ok := tierColors[r.Results[row].Status]; ok {
					return cellStyle.Foreground(c)
				}
			}
			return cellStyle
		})

	_, err := fmt.Fprintf(w, "%s\n%s\n", messageStyle.Render(MsgSuccess), t.Render())
	return err
}

func renderRecord(w io.Writer, rec resume.Record) error {
	var b strings.Builder

	field := func(label, value string) {
		fmt.Fprintf(&b, "%s %s\n", labelStyle.Render(label+":"), value)
	}
	list := func(label string, items []string) {
		fmt.Fprintf(&b, "%s\n", labelStyle.Render(label+":"))
		for _, item := range items {
			fmt.Fprintf(&b, "  - %s\n", item)
		}
	}

	field("Name", rec.FullName)
	field("Email", rec.Email)
	field("LinkedIn", rec.LinkedIn)
	field("GitHub", rec.GitHub)
	list("Technical skills", rec.TechnicalSkills)
	list("Soft skills", rec.SoftSkills)

	fmt.Fprintf(&b, "%s\n", labelStyle.Render("Experience:"))
	for _, job := range rec.EmploymentDetails {
		heading := job.Role
		if job.Company != "" {
			heading += " @ " + job.Company
		}
		if job.Duration != "" {
			heading += " (" + job.Duration + ")"
		}
		fmt.Fprintf(&b, "  - %s\n", heading)
		for _, a := range job.Achievements {
			fmt.Fprintf(&b, "      * %s\n", a)
		}
	}

	fmt.Fprintf(&b, "%s\n", labelStyle.Render("Education:"))
	for _, edu := range rec.Education {
		fmt.Fprintf(&b, "  - %s\n", edu.Details)
	}

	list("Projects", rec.Projects)
	list("Suggestions", rec.Suggestions)

	_, err := io.WriteString(w, b.String())
	return err
}
