package tutor

import (
	"encoding/json"

	"github.com/abhisek/studybuddy/internal/reward"
)

// Kind is the declared shape of a Result. Callers branch on it.
type Kind string

const (
	KindError        Kind = "error"
	KindMessage      Kind = "message"
	KindQuiz         Kind = "quiz"
	KindFlashcards   Kind = "flashcards"
	KindAnswer       Kind = "answer"
	KindFeedback     Kind = "feedback"
	KindOpenQuestion Kind = "open_question"
)

// QuizItem is one parsed question with its short answer key.
type QuizItem struct {
	Question string       `json:"question"`
	Answer   string       `json:"answer"`
	Type     QuestionType `json:"type"`
}

// Flashcard is one front/back pair.
type Flashcard struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

// Result is the outcome of one engine operation. Which fields are set
// depends on Kind.
type Result struct {
	Kind Kind

	// KindError and KindFeedback.
	Message string

	// KindMessage and KindAnswer.
	Response string

	// KindQuiz.
	Greeting       string
	Questions      []QuizItem
	RequestedCount int
	QuestionType   string

	// KindQuiz and KindFlashcards.
	Total int

	// KindFlashcards.
	Cards []Flashcard

	// KindFeedback.
	Correct bool
	Verdict Verdict
	Asset   *reward.Asset

	// KindOpenQuestion.
	Question string
}

// MarshalJSON renders the shape the web client expects for each kind.
func (r Result) MarshalJSON() ([]byte, error) {
	switch r.Kind {
	case KindError:
		return json.Marshal(struct {
			Type    Kind   `json:"type"`
			Message string `json:"message"`
		}{r.Kind, r.Message})
	case KindMessage:
		return json.Marshal(struct {
			Type     Kind   `json:"type"`
			Response string `json:"response"`
		}{r.Kind, r.Response})
	case KindQuiz:
		return json.Marshal(struct {
			Type           Kind       `json:"type"`
			Greeting       string     `json:"greeting"`
			Questions      []QuizItem `json:"questions"`
			Total          int        `json:"total"`
			RequestedCount int        `json:"requested_count"`
			QuestionType   string     `json:"question_type"`
		}{r.Kind, r.Greeting, nonNil(r.Questions), r.Total, r.RequestedCount, r.QuestionType})
	case KindFlashcards:
		return json.Marshal(struct {
			Type  Kind        `json:"type"`
			Cards []Flashcard `json:"cards"`
			Total int         `json:"total"`
		}{r.Kind, nonNil(r.Cards), r.Total})
	case KindAnswer:
		return json.Marshal(struct {
			Type       Kind   `json:"type"`
			Response   string `json:"response"`
			Confidence string `json:"confidence"`
		}{r.Kind, r.Response, "high"})
	case KindFeedback:
		return json.Marshal(struct {
			Type    Kind          `json:"type"`
			Correct bool          `json:"correct"`
			Message string        `json:"message"`
			Gif     *reward.Asset `json:"gif,omitempty"`
		}{r.Kind, r.Correct, r.Message, r.Asset})
	case KindOpenQuestion:
		return json.Marshal(struct {
			Type     Kind   `json:"type"`
			Question string `json:"question"`
			Context  string `json:"context"`
		}{r.Kind, r.Question, ""})
	default:
		return json.Marshal(struct {
			Type Kind `json:"type"`
		}{r.Kind})
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
