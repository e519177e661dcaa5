// Package display renders a published snapshot for the terminal.
package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"SectorFlow/internal/model"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7C3AED")).
			Padding(0, 1)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#3B82F6")).
			MarginTop(1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#6B7280"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280"))

	boxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#3B82F6")).
			Padding(0, 1)

	quadrantColors = map[model.Color]lipgloss.Color{
		model.ColorGreen:  lipgloss.Color("#10B981"),
		model.ColorRed:    lipgloss.Color("#EF4444"),
		model.ColorOrange: lipgloss.Color("#F97316"),
		model.ColorYellow: lipgloss.Color("#EAB308"),
	}
)

var sectorColumns = []struct {
	title string
	width int
}{
	{"Symbol", 8},
	{"Name", 26},
	{"Group", 26},
	{"CMF", 9},
	{"RS Mom %", 10},
	{"Quadrant", 26},
}

var macroColumns = []struct {
	title string
	width int
}{
	{"Series", 14},
	{"Indicator", 30},
	{"Value", 10},
	{"Date", 12},
}

func cell(s string, width int, style lipgloss.Style) string {
	return style.Width(width).MaxWidth(width).Render(s)
}

// Render formats the snapshot as grouped tables.
func Render(snap *model.DashboardSnapshot) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Sector Rotation Dashboard"))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("Last updated: " + snap.LastUpdated))
	b.WriteString("\n")

	b.WriteString(sectionStyle.Render(fmt.Sprintf("Sectors (%d)", len(snap.Sectors))))
	b.WriteString("\n")
	var rows strings.Builder
	for _, c := range sectorColumns {
		rows.WriteString(cell(c.title, c.width, headerStyle))
	}
	rows.WriteString("\n")
	if len(snap.Sectors) == 0 {
		rows.WriteString(mutedStyle.Render("no sectors computed"))
	}
	for i, s := range snap.Sectors {
		plain := lipgloss.NewStyle()
		q := lipgloss.NewStyle().Foreground(quadrantColors[s.Color])
		rows.WriteString(cell(s.Symbol, sectorColumns[0].width, plain.Bold(true)))
		rows.WriteString(cell(s.Name, sectorColumns[1].width, plain))
		rows.WriteString(cell(s.Group, sectorColumns[2].width, mutedStyle))
		rows.WriteString(cell(fmt.Sprintf("%+.4f", s.CMF), sectorColumns[3].width, q))
		rows.WriteString(cell(fmt.Sprintf("%+.2f", s.RSMomentum), sectorColumns[4].width, q))
		rows.WriteString(cell(string(s.Quadrant), sectorColumns[5].width, q.Bold(true)))
		if i < len(snap.Sectors)-1 {
			rows.WriteString("\n")
		}
	}
	b.WriteString(boxStyle.Render(rows.String()))
	b.WriteString("\n")

	b.WriteString(sectionStyle.Render(fmt.Sprintf("Macro (%d)", len(snap.Macro))))
	b.WriteString("\n")
	rows.Reset()
	for _, c := range macroColumns {
		rows.WriteString(cell(c.title, c.width, headerStyle))
	}
	rows.WriteString("\n")
	if len(snap.Macro) == 0 {
		rows.WriteString(mutedStyle.Render("no macro data"))
	}
	for i, m := range snap.Macro {
		rows.WriteString(cell(m.Series, macroColumns[0].width, lipgloss.NewStyle().Bold(true)))
		rows.WriteString(cell(m.Indicator, macroColumns[1].width, lipgloss.NewStyle()))
		rows.WriteString(cell(m.Value, macroColumns[2].width, lipgloss.NewStyle()))
		rows.WriteString(cell(m.Date, macroColumns[3].width, mutedStyle))
		if i < len(snap.Macro)-1 {
			rows.WriteString("\n")
		}
	}
	b.WriteString(boxStyle.Render(rows.String()))
	b.WriteString("\n")
	return b.String()
}

// Print writes Render(snap) to w.
func Print(w io.Writer, snap *model.DashboardSnapshot) error {
	_, err := io.WriteString(w, Render(snap))
	return err
}
