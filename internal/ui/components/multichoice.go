package components

import (
	"fmt"
	"strconv"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studybuddy/internal/ui/theme"
)

// Choice is one selectable answer. Label is shown before the text and
// Value is what gets submitted.
type Choice struct {
	Label string
	Text  string
	Value string
}

// MultiChoice is a single-answer selector. Number keys pick and submit
// directly.
type MultiChoice struct {
	Choices   []Choice
	Selected  int
	Submitted bool
}

// NewMultiChoice creates a new multiple-choice component.
func NewMultiChoice(choices []Choice) MultiChoice {
	return MultiChoice{Choices: choices}
}

// Update handles keyboard navigation and selection.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Submitted {
		return m, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key := kmsg.String(); key {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Choices)-1 {
			m.Selected++
		}
	case "enter":
		m.Submitted = len(m.Choices) > 0
	default:
		if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= len(m.Choices) {
			m.Selected = n - 1
			m.Submitted = true
		}
	}

	return m, nil
}

// Value returns the submitted choice's value, or "" before submission.
func (m MultiChoice) Value() string {
	if !m.Submitted || m.Selected >= len(m.Choices) {
		return ""
	}
	return m.Choices[m.Selected].Value
}

// View renders the choices.
func (m MultiChoice) View() string {
	var s string
	for i, c := range m.Choices {
		prefix := "  "
		if i == m.Selected {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%d) %s", prefix, i+1, c.Text)
		if c.Label != "" {
			line = fmt.Sprintf("%s%s)  %s", prefix, c.Label, c.Text)
		}

		style := lipgloss.NewStyle().Foreground(theme.Text)
		switch {
		case i == m.Selected && m.Submitted:
			style = style.Foreground(theme.Secondary).Bold(true)
		case i == m.Selected:
			style = style.Foreground(theme.Primary).Bold(true)
		case m.Submitted:
			style = style.Foreground(theme.TextDim)
		}
		s += style.Render(line) + "\n"
	}
	return s
}
