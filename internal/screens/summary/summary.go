package summary

import (
	"fmt"
	"image/color"
	"math/rand/v2"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studybuddy/internal/motivation"
	"github.com/abhisek/studybuddy/internal/router"
	"github.com/abhisek/studybuddy/internal/screen"
	"github.com/abhisek/studybuddy/internal/ui/layout"
	"github.com/abhisek/studybuddy/internal/ui/theme"
)

// Summary is the outcome of one quiz run.
type Summary struct {
	Material string
	Answered int
	Correct  int
	Total    int

	// Warning is shown under the stats, e.g. when the result was not saved.
	Warning string
}

// Accuracy returns the share of answered questions that were correct.
func (s Summary) Accuracy() float64 {
	if s.Answered == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Answered)
}

// SummaryScreen displays the quiz summary.
type SummaryScreen struct {
	summary  Summary
	feedback string
	tip      string
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)
var _ screen.EscapeHandler = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(sum Summary) *SummaryScreen {
	rng := rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	return &SummaryScreen{
		summary:  sum,
		feedback: motivation.SessionFeedback(sum.Answered, sum.Correct),
		tip:      motivation.Tip(rng),
	}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Quiz Summary"
}

// HandlesEscape is true: Esc returns to the menu rather than to the
// finished quiz.
func (s *SummaryScreen) HandlesEscape() bool { return true }

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Continue"},
		{Key: "Esc", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopToRootMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	center := theme.Centered(lipgloss.NewStyle(), width)

	var b strings.Builder

	b.WriteString(theme.Centered(theme.Title, width).Render("Quiz complete!"))
	b.WriteString("\n")
	if sum.Material != "" {
		b.WriteString(theme.Centered(theme.Subtitle, width).Render(sum.Material))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	answered := fmt.Sprintf("%d", sum.Answered)
	if sum.Total > sum.Answered {
		answered = fmt.Sprintf("%d of %d", sum.Answered, sum.Total)
	}
	statsLine := fmt.Sprintf("Answered: %s        Correct: %d        Accuracy: %.0f%%",
		answered, sum.Correct, sum.Accuracy()*100)
	b.WriteString(theme.Centered(theme.Body, width).Render(statsLine))
	b.WriteString("\n\n")

	b.WriteString(center.Foreground(accuracyColor(sum)).Bold(true).Render(s.feedback))
	b.WriteString("\n\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", min(width-8, 60)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	tip := theme.Hint.Width(min(width-8, 60)).Render("Tip: " + s.tip)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, tip))

	if sum.Warning != "" {
		b.WriteString("\n\n")
		b.WriteString(center.Foreground(theme.Accent).Render(sum.Warning))
	}

	return b.String()
}

// accuracyColor follows the feedback bands.
func accuracyColor(sum Summary) color.Color {
	switch a := sum.Accuracy(); {
	case sum.Answered == 0:
		return theme.TextDim
	case a >= 0.8:
		return theme.Success
	case a >= 0.6:
		return theme.Partial
	default:
		return theme.Accent
	}
}
