package tutor

import (
	"iter"
	"strings"
)

// parseState is the position of a pair parser: waiting for the opening
// line of a pair, or holding one and waiting for its closing line.
type parseState int

const (
	awaitingOpen parseState = iota
	awaitingClose
)

// lineKind classifies one trimmed line for a pair parser.
type lineKind int

const (
	lineOther lineKind = iota
	lineOpen
	lineClose
)

// pairParser pairs "open" lines with the next "close" line. An open line
// arriving while another is pending discards the pending one. Lines that
// are neither are ignored.
type pairParser struct {
	classify func(line string) (lineKind, string)
}

func (p pairParser) pairs(lines iter.Seq[string]) iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		state := awaitingOpen
		var pending string
		for raw := range lines {
			kind, text := p.classify(strings.TrimSpace(raw))
			switch kind {
			case lineOpen:
				if text == "" {
					state = awaitingOpen
					continue
				}
				pending, state = text, awaitingClose
			case lineClose:
				if state != awaitingClose || text == "" {
					continue
				}
				if !yield(pending, text) {
					return
				}
				pending, state = "", awaitingOpen
			}
		}
	}
}

// cutMarker reports whether line starts with prefix, then an optional run
// of digits, then suffix, and returns the trimmed rest of the line.
func cutMarker(line, prefix, suffix string) (string, bool) {
	rest, ok := strings.CutPrefix(line, prefix)
	if !ok {
		return "", false
	}
	rest = strings.TrimLeft(rest, "0123456789")
	rest, ok = strings.CutPrefix(rest, suffix)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(rest), true
}

// stripEmphasis drops markdown bold markers a provider sometimes wraps
// around line markers, as in "**Q1:** text".
func stripEmphasis(line string) string {
	line = strings.TrimPrefix(line, "**")
	return strings.Replace(line, ":**", ":", 1)
}

var quizParser = pairParser{classify: func(line string) (lineKind, string) {
	line = stripEmphasis(line)
	if text, ok := cutMarker(line, "Q", ":"); ok {
		return lineOpen, text
	}
	if text, ok := cutMarker(line, "A", ":"); ok {
		return lineClose, text
	}
	return lineOther, ""
}}

var flashcardParser = pairParser{classify: func(line string) (lineKind, string) {
	line = stripEmphasis(line)
	if text, ok := cutMarker(line, "CARD_", "_FRONT:"); ok {
		return lineOpen, text
	}
	if text, ok := cutMarker(line, "CARD_", "_BACK:"); ok {
		return lineClose, text
	}
	return lineOther, ""
}}

// ParseQuiz recovers Q<n>:/A<n>: pairs from generated text in order.
func ParseQuiz(text string) []QuizItem {
	var items []QuizItem
	for q, a := range quizParser.pairs(strings.Lines(text)) {
		items = append(items, QuizItem{Question: q, Answer: a, Type: DetectQuestionType(q)})
	}
	return items
}

// ParseFlashcards recovers CARD_<n>_FRONT:/CARD_<n>_BACK: pairs in order.
func ParseFlashcards(text string) []Flashcard {
	var cards []Flashcard
	for front, back := range flashcardParser.pairs(strings.Lines(text)) {
		cards = append(cards, Flashcard{Front: front, Back: back})
	}
	return cards
}
