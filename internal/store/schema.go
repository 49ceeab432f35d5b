package store

import (
	"context"
	"fmt"

	"entgo.io/ent/dialect"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

const (
	llmEventsTable     = "llm_request_events"
	materialsTable     = "materials"
	conversationsTable = "conversations"
	quizResultsTable   = "quiz_results"
)

var (
	// LLMRequestEventsColumns records every provider call for cost tracking
	// and debugging.
	LLMRequestEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "provider", Type: field.TypeString},
		{Name: "model", Type: field.TypeString},
		{Name: "purpose", Type: field.TypeString},
		{Name: "input_tokens", Type: field.TypeInt, Default: 0},
		{Name: "output_tokens", Type: field.TypeInt, Default: 0},
		{Name: "latency_ms", Type: field.TypeInt64, Default: 0},
		{Name: "success", Type: field.TypeBool},
		{Name: "error_message", Type: field.TypeString, Default: ""},
		{Name: "request_body", Type: field.TypeString, Size: 2147483647, Default: ""},
		{Name: "response_body", Type: field.TypeString, Size: 2147483647, Default: ""},
	}
	LLMRequestEventsTable = &schema.Table{
		Name:       llmEventsTable,
		Columns:    LLMRequestEventsColumns,
		PrimaryKey: []*schema.Column{LLMRequestEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "llmrequestevent_purpose", Columns: []*schema.Column{LLMRequestEventsColumns[5]}},
			{Name: "llmrequestevent_success", Columns: []*schema.Column{LLMRequestEventsColumns[9]}},
		},
	}

	// MaterialsColumns holds uploaded study material text.
	MaterialsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString},
		{Name: "name", Type: field.TypeString},
		{Name: "content", Type: field.TypeString, Size: 2147483647},
		{Name: "created_at", Type: field.TypeTime},
	}
	MaterialsTable = &schema.Table{
		Name:       materialsTable,
		Columns:    MaterialsColumns,
		PrimaryKey: []*schema.Column{MaterialsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "material_name", Columns: []*schema.Column{MaterialsColumns[1]}},
		},
	}

	// ConversationsColumns keeps one encoded log per (user, material).
	ConversationsColumns = []*schema.Column{
		{Name: "user_id", Type: field.TypeString},
		{Name: "material_id", Type: field.TypeString},
		{Name: "log", Type: field.TypeString, Size: 2147483647},
		{Name: "version", Type: field.TypeInt64},
		{Name: "updated_at", Type: field.TypeTime},
	}
	ConversationsTable = &schema.Table{
		Name:       conversationsTable,
		Columns:    ConversationsColumns,
		PrimaryKey: []*schema.Column{ConversationsColumns[0], ConversationsColumns[1]},
	}

	// QuizResultsColumns records finished quizzes.
	QuizResultsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "attempt_id", Type: field.TypeString, Unique: true},
		{Name: "user_id", Type: field.TypeString},
		{Name: "material_id", Type: field.TypeString},
		{Name: "question_type", Type: field.TypeString},
		{Name: "total", Type: field.TypeInt},
		{Name: "correct", Type: field.TypeInt},
	}
	QuizResultsTable = &schema.Table{
		Name:       quizResultsTable,
		Columns:    QuizResultsColumns,
		PrimaryKey: []*schema.Column{QuizResultsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "quizresult_user_id", Columns: []*schema.Column{QuizResultsColumns[4]}},
		},
	}

	// Tables lists every table the store manages.
	Tables = []*schema.Table{
		LLMRequestEventsTable,
		MaterialsTable,
		ConversationsTable,
		QuizResultsTable,
	}
)

// migrate creates missing tables, columns and indexes.
func migrate(ctx context.Context, drv dialect.Driver) error {
	m, err := schema.NewMigrate(drv)
	if err != nil {
		return fmt.Errorf("new migrate: %w", err)
	}
	return m.Create(ctx, Tables...)
}
