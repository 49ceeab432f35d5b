package tutor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyVerdict(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Verdict
	}{
		{"correct", "[CORRECT] Nailed it!", VerdictCorrect},
		{"correct lower", "[correct]\nyes", VerdictCorrect},
		{"correct mid text", "Let me see... [Correct] well done", VerdictCorrect},
		{"partial", "[PARTIAL] Close, but missing a step", VerdictPartial},
		{"incorrect", "[INCORRECT] Not quite", VerdictIncorrect},
		{"correct and incorrect", "[CORRECT] wait, [INCORRECT]", VerdictIncorrect},
		{"incorrect and partial", "[INCORRECT] but [PARTIAL] credit", VerdictPartial},
		{"no tag", "Good try!", VerdictIncorrect},
		{"apology", "Oops, something went wrong on my end 😅 Error: boom", VerdictIncorrect},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyVerdict(tt.text)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want != VerdictIncorrect, got.Correct())
		})
	}
}

// caseVariants returns every upper/lower case spelling of s.
func caseVariants(s string) []string {
	out := []string{""}
	for _, r := range s {
		lower, upper := strings.ToLower(string(r)), strings.ToUpper(string(r))
		next := make([]string, 0, len(out)*2)
		for _, prefix := range out {
			next = append(next, prefix+lower)
			if upper != lower {
				next = append(next, prefix+upper)
			}
		}
		out = next
	}
	return out
}

func TestStripVerdictTags(t *testing.T) {
	literals := []string{"[CORRECT]", "[INCORRECT]", "[PARTIAL]", "[correct]", "[incorrect]", "[partial]"}

	assertClean := func(t *testing.T, msg string) {
		t.Helper()
		for _, lit := range literals {
			assert.NotContains(t, msg, lit)
		}
	}

	for _, tag := range []string{"[correct]", "[incorrect]", "[partial]"} {
		for _, variant := range caseVariants(tag) {
			got := StripVerdictTags(variant + "\nGreat work " + variant + " on this!")
			assertClean(t, got)
			assert.Equal(t, "Great work  on this!", got)
		}
	}

	// Every pair of literal tags together.
	for _, a := range literals {
		for _, b := range literals {
			assertClean(t, StripVerdictTags(a+" feedback "+b))
		}
	}

	assert.Equal(t, "ok", StripVerdictTags("[cor[CORRECT]rect] ok"))
	assert.Equal(t, "plain text", StripVerdictTags("  plain text  "))
	assert.Equal(t, "[brackets] stay", StripVerdictTags("[brackets] stay"))
}
