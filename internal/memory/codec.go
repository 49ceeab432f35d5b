package memory

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// ErrInvalidLog indicates a stored conversation record could not be decoded.
type ErrInvalidLog struct {
	Err error
}

func (e *ErrInvalidLog) Error() string {
	return fmt.Sprintf("invalid conversation log: %v", e.Err)
}

func (e *ErrInvalidLog) Unwrap() error { return e.Err }

// wireTurn is the stored shape of a turn. Student turns are written with
// the "user" role so records stay readable by chat-style consumers.
type wireTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

const logSchemaURL = "schema://conversation-log.json"

const logSchemaJSON = `{
  "type": "array",
  "items": {
    "type": "object",
    "required": ["role", "content"],
    "properties": {
      "role": {"enum": ["user", "student", "assistant"]},
      "content": {"type": "string"}
    }
  }
}`

var (
	logSchemaOnce sync.Once
	logSchema     *jsonschema.Schema
	logSchemaErr  error
)

func compiledLogSchema() (*jsonschema.Schema, error) {
	logSchemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(strings.NewReader(logSchemaJSON))
		if err != nil {
			logSchemaErr = fmt.Errorf("parse log schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(logSchemaURL, doc); err != nil {
			logSchemaErr = fmt.Errorf("add log schema: %w", err)
			return
		}
		logSchema, logSchemaErr = c.Compile(logSchemaURL)
	})
	return logSchema, logSchemaErr
}

// Encode serializes a log for storage.
func Encode(l Log) ([]byte, error) {
	wire := make([]wireTurn, len(l))
	for i, t := range l {
		role := "assistant"
		if t.Speaker == Student {
			role = "user"
		}
		wire[i] = wireTurn{Role: role, Content: t.Text}
	}
	return json.Marshal(wire)
}

// Decode parses a stored log. Empty input decodes to an empty log. The
// document is validated against the log schema first so a corrupted record
// fails loudly instead of yielding junk turns.
func Decode(data []byte) (Log, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, &ErrInvalidLog{Err: err}
	}
	sch, err := compiledLogSchema()
	if err != nil {
		return nil, err
	}
	if err := sch.Validate(inst); err != nil {
		return nil, &ErrInvalidLog{Err: err}
	}

	var wire []wireTurn
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, &ErrInvalidLog{Err: err}
	}

	l := make(Log, len(wire))
	for i, w := range wire {
		sp := Assistant
		if w.Role == "user" || w.Role == "student" {
			sp = Student
		}
		l[i] = Turn{Speaker: sp, Text: w.Content}
	}
	return l, nil
}
