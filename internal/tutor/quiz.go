package tutor

import (
	"context"
	"fmt"
	"slices"

	"github.com/abhisek/studybuddy/internal/prompt"
)

// Quiz configuration values.
var (
	QuizCounts = []int{5, 10, 15, 20}
	QuizTypes  = []string{"multiple_choice", "identification", "true_false", "mixed"}
)

const (
	DefaultQuizCount = 5
	DefaultQuizType  = "mixed"
)

const (
	notEnoughContent = "Not enough content to generate a quiz. Please upload more study material."
	quizGreeting     = "Alright, quiz time! Let's see what you've learned 💪"
)

// QuizConfig is a normalized quiz request.
type QuizConfig struct {
	Count int
	Type  string
}

// NormalizeQuizConfig replaces out-of-range values with the defaults. It
// never fails.
func NormalizeQuizConfig(count int, qtype string) QuizConfig {
	cfg := QuizConfig{Count: count, Type: qtype}
	if !slices.Contains(QuizCounts, cfg.Count) {
		cfg.Count = DefaultQuizCount
	}
	if !slices.Contains(QuizTypes, cfg.Type) {
		cfg.Type = DefaultQuizType
	}
	return cfg
}

// GenerateQuiz builds a quiz of count questions of the given type.
func (e *Engine) GenerateQuiz(ctx context.Context, count int, qtype string) Result {
	cfg := NormalizeQuizConfig(count, qtype)
	if !e.material.Sufficient() {
		return Result{Kind: KindError, Message: notEnoughContent}
	}

	v := prompt.NewVariation(e.rng)
	c := e.call(ctx, prompt.IntentQuiz, prompt.Input{
		User: prompt.QuizInstruction(cfg.Count, cfg.Type, v),
	})
	text := c.Message()

	items := ParseQuiz(text)
	if len(items) == 0 {
		return Result{Kind: KindMessage, Response: text}
	}

	greeting := quizGreeting
	if len(items) < cfg.Count {
		greeting = fmt.Sprintf("I could only generate %d questions from the available content. Let's see what you've learned! 💪", len(items))
	}
	return Result{
		Kind:           KindQuiz,
		Greeting:       greeting,
		Questions:      items,
		Total:          len(items),
		RequestedCount: cfg.Count,
		QuestionType:   cfg.Type,
	}
}
