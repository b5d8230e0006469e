package calendar

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderOptions controls the terminal rendering of a grid.
type RenderOptions struct {
	Title         string
	WeekdayLabels [7]string
	HoursPerDay   float64
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#7f849c")).Width(5).Align(lipgloss.Right)
	cellStyle    = lipgloss.NewStyle().Width(4).Align(lipgloss.Right)
	paddingStyle = cellStyle.Foreground(lipgloss.Color("#585b70"))
	todayStyle   = cellStyle.Bold(true).Underline(true).Foreground(lipgloss.Color("#89b4fa"))
	goalStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#a6e3a1"))
	activeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#f9e2af"))
)

// Render draws weeks as a text grid. Days with logged time get a marker:
// "●" when the daily goal is met, "·" otherwise.
func Render(weeks []Week, opts RenderOptions) string {
	var b strings.Builder
	if opts.Title != "" {
		b.WriteString(titleStyle.Render(opts.Title))
		b.WriteString("\n")
	}

	header := make([]string, 0, 7)
	for _, label := range opts.WeekdayLabels {
		header = append(header, headerStyle.Render(label))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, header...))
	b.WriteString("\n")

	for _, week := range weeks {
		cells := make([]string, 0, len(week))
		for _, d := range week {
			cells = append(cells, renderDay(d, opts.HoursPerDay))
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells...))
		b.WriteString("\n")
	}
	return b.String()
}

func renderDay(d Day, hoursPerDay float64) string {
	marker := " "
	switch {
	case d.GoalMet(hoursPerDay):
		marker = goalStyle.Render("●")
	case d.HasActivity():
		marker = activeStyle.Render("·")
	}

	label := fmt.Sprintf("%d", d.Label)
	switch {
	case !d.InCurrentMonth:
		return paddingStyle.Render(label) + " "
	case d.IsToday:
		return todayStyle.Render(label) + marker
	default:
		return cellStyle.Render(label) + marker
	}
}
