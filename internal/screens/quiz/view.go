package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/studybuddy/internal/tutor"
	"github.com/abhisek/studybuddy/internal/ui/components"
	"github.com/abhisek/studybuddy/internal/ui/theme"
)

// textWidth caps wrapped question and feedback text.
const textWidth = 70

func centered(width int) lipgloss.Style {
	return theme.Centered(lipgloss.NewStyle(), width)
}

// renderQuestionView renders the active question.
func (s *QuizScreen) renderQuestionView(width int) string {
	var b strings.Builder

	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  Q %d/%d", s.index+1, len(s.items)))
	infoRight := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("%s %d correct", lipgloss.NewStyle().Foreground(theme.Success).Render("✓"), s.correct))

	infoLine := infoLeft
	if pad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4; pad > 0 {
		infoLine += strings.Repeat(" ", pad) + infoRight
	}
	b.WriteString(infoLine)
	b.WriteString("\n")

	track := components.QuizTrack{Outcomes: s.outcomes, Current: s.index, Width: width - 4}
	b.WriteString("  " + track.View())
	b.WriteString("\n\n")

	if s.index == 0 && s.greeting != "" {
		b.WriteString(centered(width).Foreground(theme.Accent).Render(s.greeting))
		b.WriteString("\n\n")
	}

	q := lipgloss.NewStyle().
		Width(min(width-8, textWidth)).
		Foreground(theme.Text).
		Bold(true).
		Render(s.stem)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, q))
	b.WriteString("\n\n")

	if s.mcActive {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.choices.View()))
	} else {
		b.WriteString(centered(width).Render("Answer: " + s.input.View()))
	}

	if s.saveErr != "" {
		b.WriteString("\n\n")
		b.WriteString(centered(width).Foreground(theme.TextDim).Render("(history not saved)"))
	}
	return b.String()
}

// renderFeedback renders the verdict for the last answer.
func (s *QuizScreen) renderFeedback(width int) string {
	item := s.items[s.index]

	var b strings.Builder
	b.WriteString("\n\n")

	if s.lastCorrect {
		b.WriteString(theme.Centered(theme.Correct, width).Render("Correct! 🎉"))
	} else {
		b.WriteString(theme.Centered(theme.Incorrect, width).Render("Not quite"))
		b.WriteString("\n")
		b.WriteString(centered(width).Foreground(theme.TextDim).Render("Your answer: " + s.lastGiven))
		b.WriteString("\n")
		b.WriteString(centered(width).Foreground(theme.Text).Render("Correct answer: " + answerText(item)))
	}
	b.WriteString("\n\n")

	b.WriteString(theme.Centered(theme.Hint, width).Render("Press any key to continue..."))
	return b.String()
}

// answerText expands a multiple choice letter into "B) text" when the
// options can be recovered.
func answerText(item tutor.QuizItem) string {
	if item.Type != tutor.MultipleChoice {
		return item.Answer
	}
	_, opts := tutor.SplitOptions(item.Question)
	for _, o := range opts {
		if tutor.MatchAnswer(tutor.MultipleChoice, item.Answer, o.Letter) {
			return o.Letter + ") " + o.Text
		}
	}
	return item.Answer
}

// renderQuitConfirm renders the quit confirmation dialog.
func renderQuitConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(theme.Centered(theme.Title, width).Render("End quiz early?"))
	b.WriteString("\n")
	b.WriteString(theme.Centered(theme.Subtitle, width).Render("Answers so far will be saved."))
	b.WriteString("\n\n")
	b.WriteString(centered(width).Foreground(theme.Success).Render("[Y] Yes, end quiz"))
	b.WriteString("\n")
	b.WriteString(centered(width).Foreground(theme.Primary).Render("[N] No, keep going"))
	return b.String()
}

// renderLoading renders the loading state.
func renderLoading(width, count int) string {
	return centered(width).
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("\n\n\n  Writing %d questions from your notes...", count))
}

// renderError renders an error message.
func renderError(width int, errMsg string) string {
	msg := lipgloss.NewStyle().
		Width(min(width-8, textWidth)).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render(errMsg)
	return "\n\n\n" + lipgloss.PlaceHorizontal(width, lipgloss.Center, msg) +
		"\n\n" + theme.Centered(theme.Hint, width).Render("Press any key to go back.")
}
