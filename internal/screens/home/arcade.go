package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/studybuddy/internal/ui/components"
	"github.com/abhisek/studybuddy/internal/ui/theme"
)

const titleFull = `┏━┓╺┳╸╻ ╻╺┳┓╻ ╻   ┏┓ ╻ ╻╺┳┓╺┳┓╻ ╻
┗━┓ ┃ ┃ ┃ ┃┃┗┳┛   ┣┻┓┃ ┃ ┃┃ ┃┃┗┳┛
┗━┛ ╹ ┗━┛╺┻┛ ╹    ┗━┛┗━┛╺┻┛╺┻┛ ╹ `

const titleCompact = "S T U D Y · B U D D Y"

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 30

// renderTitle returns the styled title block or compact fallback.
func renderTitle(cw int, compact bool) string {
	art := titleFull
	if compact {
		art = titleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(lipgloss.NewStyle().Foreground(theme.Highlight).Bold(true).Render(art))
}

// renderStatsBar renders streak and material count in a bordered box.
func renderStatsBar(streak, materials, cw int) string {
	streakStyle := lipgloss.NewStyle().Foreground(theme.Highlight).Bold(true)
	bookStyle := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)

	dayWord := "DAYS"
	if streak == 1 {
		dayWord = "DAY"
	}
	stats := fmt.Sprintf("%s  %s",
		streakStyle.Render(fmt.Sprintf("★ %d %s STREAK", streak, dayWord)),
		bookStyle.Render(fmt.Sprintf("▤ %d MATERIALS", materials)),
	)

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw-2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

// renderMenu renders each item as a fixed-width button.
func renderMenu(labels []string, selected, cw int) string {
	buttons := make([]string, 0, len(labels))
	for i, label := range labels {
		buttons = append(buttons, components.Button(truncate(label, buttonWidth-6), i == selected, buttonWidth))
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(buttons, "\n"))
}

// renderMenuCompact renders menu items as plain lines for small terminals
// where bordered buttons would overflow.
func renderMenuCompact(labels []string, selected, cw int) string {
	lines := make([]string, 0, len(labels))
	for i, label := range labels {
		if i == selected {
			lines = append(lines, lipgloss.NewStyle().
				Foreground(theme.BgDark).
				Background(theme.Highlight).
				Bold(true).
				Render(" ▸ "+label+" "))
			continue
		}
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.Text).Render("   "+label))
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}

// renderEmptyHint tells the student how to add a first material.
func renderEmptyHint(cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Accent).
		Width(cw).
		Align(lipgloss.Center).
		Render("No study material yet.\nAdd some with: studybuddy material add notes.md")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
