package tutor

import (
	"strings"
	"unicode/utf8"
)

const (
	// PreviewLimit bounds how much of the material goes into any prompt.
	PreviewLimit = 4000

	// MinQuizChars is the least amount of trimmed text a quiz is built from.
	MinQuizChars = 100
)

// Material is the read-only text of one study artifact.
type Material struct {
	text string
}

// NewMaterial wraps text. The engine never modifies it.
func NewMaterial(text string) Material {
	return Material{text: text}
}

// Text returns the full material.
func (m Material) Text() string { return m.text }

// Preview returns at most PreviewLimit characters from the start of the text.
func (m Material) Preview() string {
	if utf8.RuneCountInString(m.text) <= PreviewLimit {
		return m.text
	}
	n := 0
	for i := range m.text {
		if n == PreviewLimit {
			return m.text[:i]
		}
		n++
	}
	return m.text
}

// Sufficient reports whether there is enough text to build a quiz from.
func (m Material) Sufficient() bool {
	return utf8.RuneCountInString(strings.TrimSpace(m.text)) >= MinQuizChars
}
