// Package memory holds the per-(user, material) conversation log and the
// stores that persist it between engine invocations.
package memory

// Speaker identifies who produced a turn.
type Speaker string

const (
	Student   Speaker = "student"
	Assistant Speaker = "assistant"
)

// DefaultWindow is the number of most recent turns included in a prompt.
const DefaultWindow = 10

// Turn is one message in the conversation.
type Turn struct {
	Speaker Speaker `json:"speaker"`
	Text    string  `json:"text"`
}

// Log is the ordered, append-only conversation between a student and the
// assistant about one study material. The full log is kept; only prompts
// are windowed.
type Log []Turn

// WithTurn returns a new log with the turn appended. The receiver and any
// other holder of its backing array are left untouched.
func (l Log) WithTurn(speaker Speaker, text string) Log {
	out := make(Log, len(l), len(l)+1)
	copy(out, l)
	return append(out, Turn{Speaker: speaker, Text: text})
}

// Window returns a copy of the last n turns in order. n <= 0 yields an
// empty window.
func (l Log) Window(n int) []Turn {
	if n <= 0 || len(l) == 0 {
		return nil
	}
	start := max(len(l)-n, 0)
	out := make([]Turn, len(l)-start)
	copy(out, l[start:])
	return out
}

// Since returns the turns appended after the first n, for persisting only
// what an invocation added.
func (l Log) Since(n int) []Turn {
	if n >= len(l) {
		return nil
	}
	n = max(n, 0)
	out := make([]Turn, len(l)-n)
	copy(out, l[n:])
	return out
}

// LastAssistant returns the most recent assistant turn, if any.
func (l Log) LastAssistant() (Turn, bool) {
	for i := len(l) - 1; i >= 0; i-- {
		if l[i].Speaker == Assistant {
			return l[i], true
		}
	}
	return Turn{}, false
}
