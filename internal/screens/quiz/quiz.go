// Package quiz is the screen where a student takes a generated quiz.
// Answers are checked locally against the quiz's short answer keys.
package quiz

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studybuddy/internal/router"
	"github.com/abhisek/studybuddy/internal/screen"
	"github.com/abhisek/studybuddy/internal/screens/summary"
	"github.com/abhisek/studybuddy/internal/tutor"
	"github.com/abhisek/studybuddy/internal/ui/components"
	"github.com/abhisek/studybuddy/internal/ui/layout"
)

// Quizzer generates quizzes for one material and records outcomes.
type Quizzer interface {
	GenerateQuiz(ctx context.Context, count int, qtype string) (tutor.Result, error)
	RecordQuiz(ctx context.Context, qtype string, total, correct int) error
}

type phase int

const (
	phaseLoading phase = iota
	phaseAnswering
	phaseFeedback
	phaseEnding
)

// QuizScreen implements screen.Screen for an interactive quiz.
type QuizScreen struct {
	quizzer Quizzer
	name    string
	count   int
	qtype   string

	phase    phase
	greeting string
	items    []tutor.QuizItem
	index    int
	answered int
	correct  int
	outcomes []components.Outcome

	stem        string
	mcActive    bool
	choices     components.MultiChoice
	input       components.TextInput
	lastGiven   string
	lastCorrect bool

	showingQuitConfirm bool
	errMsg             string
	saveErr            string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.EscapeHandler = (*QuizScreen)(nil)

// New creates a quiz screen for the named material.
func New(q Quizzer, materialName string, count int, qtype string) *QuizScreen {
	cfg := tutor.NormalizeQuizConfig(count, qtype)
	return &QuizScreen{
		quizzer: q,
		name:    materialName,
		count:   cfg.Count,
		qtype:   cfg.Type,
		input:   components.NewTextInput("Type your answer...", 120),
	}
}

func (s *QuizScreen) Init() tea.Cmd {
	return s.generate()
}

func (s *QuizScreen) Title() string {
	return "Quiz: " + s.name
}

// HandlesEscape keeps Esc for the quit confirmation while a quiz runs.
func (s *QuizScreen) HandlesEscape() bool {
	return s.errMsg == "" && s.phase != phaseLoading
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.errMsg != "":
		return []layout.KeyHint{{Key: "any key", Description: "Back"}}
	case s.phase == phaseLoading:
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	case s.showingQuitConfirm:
		return []layout.KeyHint{
			{Key: "Y", Description: "End quiz"},
			{Key: "N", Description: "Keep going"},
		}
	case s.phase == phaseFeedback:
		return []layout.KeyHint{{Key: "any key", Description: "Continue"}}
	case s.mcActive:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Choose"},
			{Key: "1-9", Description: "Pick"},
			{Key: "Enter", Description: "Submit"},
			{Key: "Esc", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Submit"},
		{Key: "Esc", Description: "Quit"},
	}
}

func (s *QuizScreen) View(width, height int) string {
	switch {
	case s.errMsg != "":
		return renderError(width, s.errMsg)
	case s.phase == phaseLoading:
		return renderLoading(width, s.count)
	case s.showingQuitConfirm:
		return renderQuitConfirm(width)
	case s.phase == phaseFeedback:
		return s.renderFeedback(width)
	}
	return s.renderQuestionView(width)
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case quizReadyMsg:
		return s.handleReady(msg)

	case quizEndMsg:
		return s.handleEnd()

	case quizRecordedMsg:
		return s.handleRecorded(msg)

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.phase == phaseAnswering && !s.mcActive && !s.showingQuitConfirm {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

// generate requests the quiz asynchronously.
func (s *QuizScreen) generate() tea.Cmd {
	q, count, qtype := s.quizzer, s.count, s.qtype
	return func() tea.Msg {
		res, err := q.GenerateQuiz(context.Background(), count, qtype)
		return quizReadyMsg{Result: res, Err: err}
	}
}

func (s *QuizScreen) handleReady(msg quizReadyMsg) (screen.Screen, tea.Cmd) {
	res := msg.Result
	switch {
	case res.Kind == "" && msg.Err != nil:
		s.errMsg = msg.Err.Error()
		return s, nil
	case res.Kind == tutor.KindError:
		s.errMsg = res.Message
		return s, nil
	case res.Kind != tutor.KindQuiz || len(res.Questions) == 0:
		s.errMsg = "I couldn't turn that into quiz questions. Try again in a moment."
		if res.Response != "" {
			s.errMsg = res.Response
		}
		return s, nil
	}

	// A history save failure does not stop the quiz.
	if msg.Err != nil {
		s.saveErr = msg.Err.Error()
	}
	s.greeting = res.Greeting
	s.items = res.Questions
	s.outcomes = make([]components.Outcome, len(s.items))
	s.index = 0
	return s, s.present()
}

// present sets up input for the current question.
func (s *QuizScreen) present() tea.Cmd {
	item := s.items[s.index]
	s.phase = phaseAnswering
	s.stem = item.Question
	s.mcActive = false

	switch item.Type {
	case tutor.MultipleChoice:
		stem, opts := tutor.SplitOptions(item.Question)
		if len(opts) > 0 {
			s.stem = stem
			choices := make([]components.Choice, 0, len(opts))
			for _, o := range opts {
				choices = append(choices, components.Choice{Label: o.Letter, Text: o.Text, Value: o.Letter})
			}
			s.choices = components.NewMultiChoice(choices)
			s.mcActive = true
			return nil
		}
	case tutor.TrueFalse:
		s.choices = components.NewMultiChoice([]components.Choice{
			{Text: "True", Value: "True"},
			{Text: "False", Value: "False"},
		})
		s.mcActive = true
		return nil
	}

	s.input = components.NewTextInput("Type your answer...", 120)
	return s.input.Init()
}

func (s *QuizScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	// Error state: any key goes back.
	if s.errMsg != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}

	switch s.phase {
	case phaseLoading, phaseEnding:
		return s, nil
	}

	if s.showingQuitConfirm {
		switch key {
		case "y", "Y":
			s.showingQuitConfirm = false
			return s, func() tea.Msg { return quizEndMsg{} }
		case "n", "N", "esc":
			s.showingQuitConfirm = false
		}
		return s, nil
	}

	// Feedback: any key moves on.
	if s.phase == phaseFeedback {
		return s.next()
	}

	if key == "esc" {
		s.showingQuitConfirm = true
		return s, nil
	}

	if s.mcActive {
		var cmd tea.Cmd
		s.choices, cmd = s.choices.Update(msg)
		if s.choices.Submitted {
			return s.submit(s.choices.Value())
		}
		return s, cmd
	}

	if key == "enter" {
		if s.input.Value() == "" {
			return s, nil
		}
		return s.submit(s.input.Value())
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// submit grades given against the current answer key.
func (s *QuizScreen) submit(given string) (screen.Screen, tea.Cmd) {
	item := s.items[s.index]
	s.lastGiven = given
	s.lastCorrect = tutor.MatchAnswer(item.Type, item.Answer, given)
	s.answered++
	if s.lastCorrect {
		s.correct++
		s.outcomes[s.index] = components.OutcomeCorrect
	} else {
		s.outcomes[s.index] = components.OutcomeWrong
	}
	if !s.mcActive {
		s.input.Submit(s.lastCorrect)
	}
	s.phase = phaseFeedback
	return s, nil
}

// next advances past the feedback view.
func (s *QuizScreen) next() (screen.Screen, tea.Cmd) {
	if s.index+1 >= len(s.items) {
		return s, func() tea.Msg { return quizEndMsg{} }
	}
	s.index++
	return s, s.present()
}

// handleEnd records the result. A quiz ended before any answer is not
// recorded.
func (s *QuizScreen) handleEnd() (screen.Screen, tea.Cmd) {
	s.phase = phaseEnding
	if s.answered == 0 {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	q, qtype, answered, correct := s.quizzer, s.qtype, s.answered, s.correct
	return s, func() tea.Msg {
		return quizRecordedMsg{Err: q.RecordQuiz(context.Background(), qtype, answered, correct)}
	}
}

func (s *QuizScreen) handleRecorded(msg quizRecordedMsg) (screen.Screen, tea.Cmd) {
	sum := summary.Summary{
		Material: s.name,
		Answered: s.answered,
		Correct:  s.correct,
		Total:    len(s.items),
	}
	if msg.Err != nil {
		sum.Warning = "Result not saved: " + msg.Err.Error()
	}
	return s, func() tea.Msg {
		return router.PushScreenMsg{Screen: summary.New(sum)}
	}
}
