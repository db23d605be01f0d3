package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme colors (Vuzo dark)
var (
	ColorBorder    = lipgloss.Color("#27272A")
	ColorTextDim   = lipgloss.Color("#52525B")
	ColorTextMuted = lipgloss.Color("#A1A1AA")
	ColorText      = lipgloss.Color("#FAFAFA")
	ColorAccent    = lipgloss.Color("#818CF8")
	ColorGreen     = lipgloss.Color("#34D399")
	ColorRed       = lipgloss.Color("#F87171")
	ColorYellow    = lipgloss.Color("#FBBF24")
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(ColorText).Align(lipgloss.Center)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)
	valueStyle  = lipgloss.NewStyle().Foreground(ColorText)
	mutedStyle  = lipgloss.NewStyle().Foreground(ColorTextMuted)
	dimStyle    = lipgloss.NewStyle().Foreground(ColorTextDim)
	goodStyle   = lipgloss.NewStyle().Foreground(ColorGreen)
	badStyle    = lipgloss.NewStyle().Foreground(ColorRed)
	warnStyle   = lipgloss.NewStyle().Foreground(ColorYellow)
)

// Good renders s in the success color.
func Good(s string) string { return goodStyle.Render(s) }

// Bad renders s in the failure color.
func Bad(s string) string { return badStyle.Render(s) }

// Warn renders s in the warning color.
func Warn(s string) string { return warnStyle.Render(s) }

// Muted renders s dimmed.
func Muted(s string) string { return mutedStyle.Render(s) }

// Table is a bordered text table for CLI output.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// RenderTitle renders a centered title bar in a bordered box.
func RenderTitle(title string) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Width(55).
		Align(lipgloss.Center).
		Padding(0, 1)
	return box.Render(titleStyle.Render(title))
}

// RenderTable renders a bordered table with headers and rows. The first
// column is left-aligned, the rest right-aligned.
func RenderTable(t Table) string {
	cols := len(t.Headers)
	if cols == 0 {
		return ""
	}

	widths := make([]int, cols)
	for i, h := range t.Headers {
		widths[i] = len(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < cols && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var b strings.Builder
	if t.Title != "" {
		b.WriteString("  ")
		b.WriteString(headerStyle.Render(t.Title))
		b.WriteString("\n")
	}

	borderRow := func(left, mid, right string) {
		b.WriteString(dimStyle.Render(left))
		for i, w := range widths {
			b.WriteString(dimStyle.Render(strings.Repeat("─", w+2)))
			if i < cols-1 {
				b.WriteString(dimStyle.Render(mid))
			}
		}
		b.WriteString(dimStyle.Render(right))
		b.WriteString("\n")
	}

	cellRow := func(cells []string, style lipgloss.Style) {
		b.WriteString(dimStyle.Render("│"))
		for i := 0; i < cols; i++ {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			var padded string
			if i == 0 {
				padded = fmt.Sprintf(" %-*s ", widths[i], cell)
			} else {
				padded = fmt.Sprintf(" %*s ", widths[i], cell)
			}
			b.WriteString(style.Render(padded))
			if i < cols-1 {
				b.WriteString(dimStyle.Render("│"))
			}
		}
		b.WriteString(dimStyle.Render("│"))
		b.WriteString("\n")
	}

	borderRow("╭", "┬", "╮")
	cellRow(t.Headers, headerStyle)
	borderRow("├", "┼", "┤")
	for _, row := range t.Rows {
		cellRow(row, valueStyle)
	}
	borderRow("╰", "┴", "╯")

	return b.String()
}

// RenderStat renders a single "label: value" line with dashboard styling.
func RenderStat(label, value string) string {
	return fmt.Sprintf("  %s %s", mutedStyle.Render(label+":"), valueStyle.Render(value))
}
