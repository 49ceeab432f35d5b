package tutor

import (
	"strings"
	"unicode"
)

// QuestionType is the detected shape of a quiz question.
type QuestionType string

const (
	MultipleChoice QuestionType = "multiple_choice"
	TrueFalse      QuestionType = "true_false"
	Identification QuestionType = "identification"
	FillInBlank    QuestionType = "fill_in_blank"
	ShortAnswer    QuestionType = "short_answer"
)

type typeRule struct {
	qtype QuestionType
	match func(lower string) bool
}

// typeRules are evaluated in order; the first match wins.
var typeRules = []typeRule{
	{MultipleChoice, func(q string) bool {
		return strings.Contains(q, "(a)") && strings.Contains(q, "(b)")
	}},
	{TrueFalse, func(q string) bool {
		return strings.HasPrefix(q, "true or false")
	}},
	{Identification, func(q string) bool {
		return strings.HasPrefix(q, "identify:") || strings.HasPrefix(q, "identify ")
	}},
	{FillInBlank, func(q string) bool {
		return strings.Contains(q, "____")
	}},
}

// DetectQuestionType classifies a question string. It is used for display
// only and has no effect on generation.
func DetectQuestionType(question string) QuestionType {
	lower := strings.ToLower(question)
	for _, r := range typeRules {
		if r.match(lower) {
			return r.qtype
		}
	}
	return ShortAnswer
}

// Choice is one lettered option of a multiple choice question.
type Choice struct {
	Letter string
	Text   string
}

// SplitOptions separates a one-line multiple choice question into its stem
// and options. Questions without at least (A) and (B) come back whole with
// no options.
func SplitOptions(question string) (string, []Choice) {
	type mark struct {
		letter     byte
		start, end int
	}
	var marks []mark
	next := byte('a')
	// Markers are matched on the original bytes, folding only ASCII
	// letters, so offsets stay valid for any text around them.
	for i := 0; i+2 < len(question); i++ {
		if question[i] == '(' && question[i+1]|0x20 == next && question[i+2] == ')' {
			marks = append(marks, mark{letter: next, start: i, end: i + 3})
			next++
			i += 2
		}
	}
	if len(marks) < 2 {
		return strings.TrimSpace(question), nil
	}

	stem := strings.TrimSpace(question[:marks[0].start])
	opts := make([]Choice, 0, len(marks))
	for i, m := range marks {
		stop := len(question)
		if i+1 < len(marks) {
			stop = marks[i+1].start
		}
		opts = append(opts, Choice{
			Letter: strings.ToUpper(string(m.letter)),
			Text:   strings.TrimSpace(question[m.end:stop]),
		})
	}
	return stem, opts
}

// MatchAnswer compares a student's short answer against an answer key
// locally, without a provider call. Case, surrounding punctuation and
// whitespace runs are ignored. For multiple choice only the option letter
// is compared; for true/false a leading "t" or "f" is enough.
func MatchAnswer(qtype QuestionType, key, given string) bool {
	k, g := normalizeAnswer(key), normalizeAnswer(given)
	if g == "" {
		return false
	}
	switch qtype {
	case MultipleChoice:
		return optionLetter(k) != "" && optionLetter(k) == optionLetter(g)
	case TrueFalse:
		return k != "" && g[0] == k[0] && (g == k || len(g) == 1)
	default:
		return k == g
	}
}

func normalizeAnswer(s string) string {
	s = strings.ToLower(strings.Join(strings.Fields(s), " "))
	return strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsPunct(r) || unicode.IsSpace(r)
	})
}

// optionLetter extracts the choice letter from "b", "(b)", "b)" or
// "b) some text".
func optionLetter(s string) string {
	s = strings.TrimPrefix(s, "(")
	if s == "" {
		return ""
	}
	c := s[0]
	if c < 'a' || c > 'z' {
		return ""
	}
	if len(s) == 1 || s[1] == ')' || s[1] == ' ' || s[1] == '.' {
		return string(c)
	}
	return ""
}
