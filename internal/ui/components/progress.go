package components

import (
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/studybuddy/internal/ui/theme"
)

// Outcome is the grading state of one quiz question.
type Outcome int

const (
	OutcomePending Outcome = iota
	OutcomeCorrect
	OutcomeWrong
)

// QuizTrack draws one segment per question, colored by outcome, with the
// current question highlighted.
type QuizTrack struct {
	Outcomes []Outcome
	Current  int
	Width    int
}

// View renders the track. Segments share the width evenly; when there is not
// enough room each question collapses to a single cell.
func (t QuizTrack) View() string {
	n := len(t.Outcomes)
	if n == 0 {
		return ""
	}
	seg := max((t.Width-(n-1))/n, 1)

	parts := make([]string, n)
	for i, o := range t.Outcomes {
		parts[i] = lipgloss.NewStyle().
			Background(t.segmentColor(i, o)).
			Render(strings.Repeat(" ", seg))
	}
	if seg == 1 {
		return strings.Join(parts, "")
	}
	return strings.Join(parts, " ")
}

func (t QuizTrack) segmentColor(i int, o Outcome) color.Color {
	switch {
	case o == OutcomeCorrect:
		return theme.Success
	case o == OutcomeWrong:
		return theme.Error
	case i == t.Current:
		return theme.Highlight
	default:
		return theme.Border
	}
}
