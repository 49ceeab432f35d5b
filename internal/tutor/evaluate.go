package tutor

import "strings"

// Verdict is the tri-state grade of a free-form answer.
type Verdict string

const (
	VerdictCorrect   Verdict = "correct"
	VerdictPartial   Verdict = "partial"
	VerdictIncorrect Verdict = "incorrect"
)

// Correct reports whether the verdict earns credit. Partial answers do.
func (v Verdict) Correct() bool {
	return v == VerdictCorrect || v == VerdictPartial
}

var verdictTags = []string{"[correct]", "[incorrect]", "[partial]"}

// ClassifyVerdict grades a provider reply by the tags anywhere in it,
// ignoring case. [correct] wins unless [incorrect] is also present;
// otherwise [partial] gives partial credit; anything else is incorrect.
func ClassifyVerdict(text string) Verdict {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "[correct]") && !strings.Contains(lower, "[incorrect]"):
		return VerdictCorrect
	case strings.Contains(lower, "[partial]"):
		return VerdictPartial
	default:
		return VerdictIncorrect
	}
}

// StripVerdictTags removes every verdict tag, in any case, and trims the
// result.
func StripVerdictTags(text string) string {
	for {
		stripped := removeTags(text)
		if stripped == text {
			return strings.TrimSpace(text)
		}
		text = stripped
	}
}

func removeTags(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(text); {
		if text[i] == '[' {
			if n := matchTag(text[i:]); n > 0 {
				i += n
				continue
			}
		}
		b.WriteByte(text[i])
		i++
	}
	return b.String()
}

func matchTag(s string) int {
	for _, tag := range verdictTags {
		if len(s) >= len(tag) && strings.EqualFold(s[:len(tag)], tag) {
			return len(tag)
		}
	}
	return 0
}
