package tutor

import (
	"context"

	"github.com/abhisek/studybuddy/internal/prompt"
)

// DefaultFlashcards is the deck size when none is given.
const DefaultFlashcards = 8

const flashcardsFailed = "Had trouble creating flashcards. Try again! 😅"

// GenerateFlashcards builds a deck of k cards.
func (e *Engine) GenerateFlashcards(ctx context.Context, k int) Result {
	if k <= 0 {
		k = DefaultFlashcards
	}
	v := prompt.NewVariation(e.rng)
	c := e.call(ctx, prompt.IntentFlashcards, prompt.Input{
		User: prompt.FlashcardInstruction(k, v),
	})

	cards := ParseFlashcards(c.Message())
	if len(cards) == 0 {
		return Result{Kind: KindMessage, Response: flashcardsFailed}
	}
	return Result{Kind: KindFlashcards, Cards: cards, Total: len(cards)}
}
