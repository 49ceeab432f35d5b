// Package prompt builds the message sequences sent to the generation
// provider. Everything here is pure: no I/O and no mutation of inputs.
package prompt

import (
	"github.com/abhisek/studybuddy/internal/llm"
	"github.com/abhisek/studybuddy/internal/memory"
)

// Intent is the purpose of a single generation call. Its string value is
// also the purpose label recorded with LLM events.
type Intent string

const (
	IntentQuiz         Intent = "quiz"
	IntentFlashcards   Intent = "flashcards"
	IntentOpenQuestion Intent = "open_question"
	IntentFreeAnswer   Intent = "free_answer"
	IntentEvaluation   Intent = "evaluation"
)

// Persona is the constant style preamble shared by every intent.
const Persona = `You are a friendly, supportive study buddy named Buddy. You help students learn from their study materials.

Your personality:
- Casual and friendly, like a college friend helping out
- Use emojis occasionally but don't overdo it
- Be encouraging and supportive
- Keep responses concise but helpful
- Use phrases like "Ayy", "Let's go!", "You got this!", "Nailed it!"
- When they get something wrong, be supportive not critical

You have access to the student's study notes. Use them to:
- Answer questions about the material
- Generate quiz questions (MCQ, fill-in-blank, short answer)
- Explain concepts in simple terms
- Help them understand difficult topics

IMPORTANT: When you create quizzes or ask questions, remember them! When the student answers, evaluate their response based on the questions you asked.`

// Input is everything one composed prompt is built from.
type Input struct {
	// Preview is the bounded prefix of the study material.
	Preview string

	// Task is an optional intent-specific instruction block.
	Task string

	// History is the memory window, oldest first.
	History []memory.Turn

	// User is the new user instruction.
	User string
}

// Compose returns the ordered message list: persona, study notes, optional
// task block, memory window, then the new user instruction.
func Compose(in Input) []llm.Message {
	msgs := make([]llm.Message, 0, len(in.History)+4)
	msgs = append(msgs,
		llm.Message{Role: llm.RoleSystem, Content: Persona},
		llm.Message{Role: llm.RoleSystem, Content: "Study notes:\n" + in.Preview},
	)
	if in.Task != "" {
		msgs = append(msgs, llm.Message{Role: llm.RoleSystem, Content: in.Task})
	}
	for _, t := range in.History {
		role := llm.RoleAssistant
		if t.Speaker == memory.Student {
			role = llm.RoleUser
		}
		msgs = append(msgs, llm.Message{Role: role, Content: t.Text})
	}
	return append(msgs, llm.Message{Role: llm.RoleUser, Content: in.User})
}
