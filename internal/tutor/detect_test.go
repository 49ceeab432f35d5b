package tutor

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestDetectQuestionType(t *testing.T) {
	tests := []struct {
		question string
		want     QuestionType
	}{
		{"What does ATP store? (A) heat (B) energy (C) water (D) light", MultipleChoice},
		{"Pick one (a) red (b) blue", MultipleChoice},
		{"True or False: The sun is a star.", TrueFalse},
		{"TRUE OR FALSE mitochondria have DNA", TrueFalse},
		{"Identify: the powerhouse of the cell", Identification},
		{"identify the author of Hamlet", Identification},
		{"Identification of rocks is hard", ShortAnswer},
		{"The ____ is responsible for protein synthesis.", FillInBlank},
		{"The _____ pumps blood.", FillInBlank},
		{"What is osmosis?", ShortAnswer},
		{"Only (A) here", ShortAnswer},
		// First match wins.
		{"True or False: (A) and (B) are both options", MultipleChoice},
		{"Identify the ____ in this sentence", Identification},
	}
	for _, tt := range tests {
		t.Run(tt.question, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectQuestionType(tt.question))
		})
	}
}

func TestSplitOptions(t *testing.T) {
	stem, opts := SplitOptions("What does ATP store? (A) heat (B) energy (C) water (D) light")
	assert.Equal(t, "What does ATP store?", stem)
	assert.Equal(t, []Choice{
		{Letter: "A", Text: "heat"},
		{Letter: "B", Text: "energy"},
		{Letter: "C", Text: "water"},
		{Letter: "D", Text: "light"},
	}, opts)

	stem, opts = SplitOptions("What is osmosis?")
	assert.Equal(t, "What is osmosis?", stem)
	assert.Nil(t, opts)

	// Letters must run in order from (a).
	_, opts = SplitOptions("Choose (b) or (c)")
	assert.Nil(t, opts)
}

func TestSplitOptionsNonASCIIStem(t *testing.T) {
	stem, opts := SplitOptions("Which city is in İzmir province? (A) Ankara (B) Bergama")
	assert.Equal(t, "Which city is in İzmir province?", stem)
	assert.Equal(t, []Choice{
		{Letter: "A", Text: "Ankara"},
		{Letter: "B", Text: "Bergama"},
	}, opts)

	stem, opts = SplitOptions("İİİİ (a) x (b) ÿ")
	assert.Equal(t, "İİİİ", stem)
	assert.True(t, utf8.ValidString(stem))
	assert.Equal(t, []Choice{
		{Letter: "A", Text: "x"},
		{Letter: "B", Text: "ÿ"},
	}, opts)
}

func TestMatchAnswer(t *testing.T) {
	tests := []struct {
		name  string
		qtype QuestionType
		key   string
		given string
		want  bool
	}{
		{"mcq letter", MultipleChoice, "B", "b", true},
		{"mcq parenthesised", MultipleChoice, "B", "(B)", true},
		{"mcq key with text", MultipleChoice, "B) energy", "b", true},
		{"mcq wrong letter", MultipleChoice, "B", "c", false},
		{"mcq word not letter", MultipleChoice, "B", "banana", false},
		{"true false word", TrueFalse, "True", "true", true},
		{"true false initial", TrueFalse, "False", "F", true},
		{"true false wrong", TrueFalse, "True", "false", false},
		{"true false prefix", TrueFalse, "True", "tru", false},
		{"short answer case and punctuation", ShortAnswer, "Mitochondria", "mitochondria.", true},
		{"short answer spacing", Identification, "Charles  Darwin", " charles darwin ", true},
		{"short answer wrong", FillInBlank, "ribosome", "nucleus", false},
		{"empty answer", ShortAnswer, "x", "   ", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchAnswer(tt.qtype, tt.key, tt.given))
		})
	}
}
