package prompt

import (
	"fmt"
	"math/rand/v2"
)

// FocusHints steer each quiz toward a different angle of the material.
var FocusHints = []string{
	"Focus on key concepts and definitions.",
	"Ask about details that are often overlooked.",
	"Test understanding, not just memorization.",
	"Focus on practical applications.",
	"Ask about relationships between concepts.",
	"Cover different sections of the material.",
}

// Variation is the per-call randomness injected into quiz and flashcard
// instructions to reduce repeated output.
type Variation struct {
	Focus string
	Seed  int
}

// NewVariation draws a focus hint and a seed in [1000, 9999] from r.
func NewVariation(r *rand.Rand) Variation {
	return Variation{
		Focus: FocusHints[r.IntN(len(FocusHints))],
		Seed:  1000 + r.IntN(9000),
	}
}

// QuizInstruction asks for exactly count questions of the given style.
// Unknown styles get the mixed template.
func QuizInstruction(count int, style string, v Variation) string {
	return fmt.Sprintf(`Create exactly %d NEW and UNIQUE questions based on the study notes. (Seed: %d)

%s

%s

REQUIRED FORMAT:
QUIZ_START
Q1: [question]
A1: [short answer - 1-3 words max]
Q2: [question]
A2: [short answer]
(continue for all %d questions)
QUIZ_END

IMPORTANT: 
- Keep ALL answers SHORT (1-3 words max, or just a letter for MCQ)
- For MCQ, put all options on ONE line with (A) (B) (C) (D) format
- Generate DIFFERENT questions than any previous quiz!`, count, v.Seed, v.Focus, styleTemplate(style), count)
}

func styleTemplate(style string) string {
	switch style {
	case "multiple_choice":
		return multipleChoiceTemplate
	case "identification":
		return identificationTemplate
	case "true_false":
		return trueFalseTemplate
	default:
		return mixedTemplate
	}
}

const multipleChoiceTemplate = `QUESTION TYPE: Multiple Choice ONLY

Create ALL questions as Multiple Choice:
Q: What does [concept] do? (A) first option (B) second option (C) third option (D) fourth option
A: B

- Put all options on ONE line with (A) (B) (C) (D) format
- Answer should be just the letter`

const identificationTemplate = `QUESTION TYPE: Identification ONLY

Create ALL questions as Identification:
Q: Identify: [description of a term, person, concept, or thing]
A: [the term/name being identified]

- Ask students to identify terms, concepts, people, or things based on descriptions
- Keep answers to 1-3 words`

const trueFalseTemplate = `QUESTION TYPE: True/False ONLY

Create ALL questions as True/False:
Q: True or False: [statement about the material]
A: True (or False)

- Make statements that are clearly true or false based on the material
- Answer should be just "True" or "False" `

const mixedTemplate = `QUESTION TYPES TO USE (mix these types):

1. Fill-in-the-blank:
Q1: The _____ is responsible for [function].
A1: [correct word]

2. Short Answer:
Q2: What is [concept]?
A2: [brief 1-3 word answer]

3. True/False:
Q3: True or False: [statement]
A3: True (or False)

4. Identification:
Q4: Identify: [description of a term, person, concept, or thing]
A4: [the term/name being identified]

5. Multiple Choice (format the answer as just the letter):
Q5: What does [concept] do? (A) first option (B) second option (C) third option (D) fourth option
A5: B

Mix different question types for variety!`

// FlashcardInstruction asks for exactly k front/back cards.
func FlashcardInstruction(k int, v Variation) string {
	return fmt.Sprintf(`Create exactly %d flashcards from the study notes. (Seed: %d)

Each flashcard should have:
- FRONT: A term, concept, question, or prompt (keep it short!)
- BACK: The definition, answer, or explanation (concise but complete)

Mix different types:
- Term → Definition
- Question → Answer  
- Concept → Explanation
- "What is..." → Answer

FORMAT (follow exactly):
FLASHCARDS_START
CARD_1_FRONT: [front text]
CARD_1_BACK: [back text]
CARD_2_FRONT: [front text]
CARD_2_BACK: [back text]
(continue for all %d cards)
FLASHCARDS_END

Keep fronts SHORT (1-10 words). Backs can be longer but still concise.`, k, v.Seed, k)
}

// OpenQuestionInstruction asks for one question the student should answer.
func OpenQuestionInstruction() string {
	return `Ask the student ONE thought-provoking question about their study material. 
Make it conversational, like you're quizzing a friend. 
Remember this question because you'll need to evaluate their answer!
Don't give the answer - just ask the question and wait for their response.`
}

// EvaluationInstruction asks the provider to grade answer against the
// question pending in the conversation, leading with a verdict tag.
func EvaluationInstruction(answer string) string {
	return fmt.Sprintf(`The student's answer: %s

Based on our conversation and the study notes, evaluate their answer.

IMPORTANT: Start your response with either [CORRECT] or [INCORRECT] or [PARTIAL] on the first line, then give your feedback.

- If fully correct: Start with [CORRECT] then celebrate!
- If partially correct: Start with [PARTIAL] then acknowledge what they got right and what needs work
- If wrong: Start with [INCORRECT] then be supportive and explain the right answer`, answer)
}

// EvaluationInstructionFor includes the question text explicitly. Used when
// the caller knows which question is being answered, so grading does not
// depend on the question still being inside the memory window.
func EvaluationInstructionFor(question, answer string) string {
	if question == "" {
		return EvaluationInstruction(answer)
	}
	return fmt.Sprintf("The question: %s\n%s", question, EvaluationInstruction(answer))
}

// FreeAnswerTask is the task block for free-form chat answers.
func FreeAnswerTask() string {
	return `Answer the student's question based on the study notes. 
DO NOT create quizzes or MCQs in chat - just answer their question directly.
If they ask for a quiz, tell them to use the Generate Quiz button.`
}
