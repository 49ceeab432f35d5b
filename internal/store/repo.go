package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	After   int64     // sequence > After
	Before  int64     // sequence < Before
	From    time.Time // timestamp >= From
	To      time.Time // timestamp <= To
	Purpose string    // exact purpose match when set
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEventRecord is a stored LLM request event.
type LLMEventRecord struct {
	LLMRequestEventData
	ID        int
	Sequence  int64
	Timestamp time.Time
}

// PurposeUsage aggregates token usage for one purpose.
type PurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// ModelUsage aggregates token usage for one model.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo provides append and query access to LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEventRecord, error)

	// GetLLMEvent returns one event, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMEventRecord, error)

	// LLMUsageByPurpose aggregates usage per purpose label.
	LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error)

	// LLMUsageByModel aggregates usage per model.
	LLMUsageByModel(ctx context.Context) ([]ModelUsage, error)
}

// Material is an uploaded piece of study text.
type Material struct {
	ID        string
	Name      string
	Content   string
	CreatedAt time.Time
}

// MaterialSummary describes a material without its content.
type MaterialSummary struct {
	ID        string
	Name      string
	Chars     int
	CreatedAt time.Time
}

// MaterialRepo stores study materials. The tutoring engine only reads them.
type MaterialRepo interface {
	// Create stores new material and returns it with its assigned ID.
	Create(ctx context.Context, name, content string) (*Material, error)

	// Get returns the material by ID, or ErrNotFound.
	Get(ctx context.Context, id string) (*Material, error)

	// Find resolves a reference that is either an ID or an exact name. The
	// most recently created match wins for duplicate names.
	Find(ctx context.Context, ref string) (*Material, error)

	// List returns all materials, newest first.
	List(ctx context.Context) ([]MaterialSummary, error)
}

// QuizResultData captures one finished quiz.
type QuizResultData struct {
	AttemptID    string
	UserID       string
	MaterialID   string
	QuestionType string
	Total        int
	Correct      int
}

// QuizResultRecord is a stored quiz result.
type QuizResultRecord struct {
	QuizResultData
	Sequence  int64
	Timestamp time.Time
}

// Accuracy returns the percentage of correct answers, rounded down.
func (r QuizResultRecord) Accuracy() int {
	if r.Total == 0 {
		return 0
	}
	return r.Correct * 100 / r.Total
}

// QuizSummary totals a user's quiz results.
type QuizSummary struct {
	Quizzes   int
	Questions int
	Correct   int
}

// Accuracy returns the overall percentage of correct answers, rounded.
func (s QuizSummary) Accuracy() int {
	if s.Questions == 0 {
		return 0
	}
	return (s.Correct*100 + s.Questions/2) / s.Questions
}

// QuizResultRepo records finished quizzes for stats.
type QuizResultRepo interface {
	Record(ctx context.Context, data QuizResultData) error
	Recent(ctx context.Context, userID string, limit int) ([]QuizResultRecord, error)
	Summary(ctx context.Context, userID string) (QuizSummary, error)
}
