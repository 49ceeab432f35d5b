package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
)

type quizResultRepo struct {
	drv *entsql.Driver
	seq *sequenceCounter
}

func (r *quizResultRepo) Record(ctx context.Context, data QuizResultData) error {
	if data.Total < 0 || data.Correct < 0 || data.Correct > data.Total {
		return fmt.Errorf("invalid quiz result: %d correct of %d", data.Correct, data.Total)
	}
	if data.AttemptID == "" {
		data.AttemptID = uuid.NewString()
	}

	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := builder().
		Insert(quizResultsTable).
		Columns("sequence", "timestamp", "attempt_id", "user_id", "material_id", "question_type", "total", "correct").
		Values(seqNum, time.Now().UTC(), data.AttemptID, data.UserID, data.MaterialID, data.QuestionType, data.Total, data.Correct).
		Query()

	var res sql.Result
	if err := r.drv.Exec(ctx, query, args, &res); err != nil {
		return fmt.Errorf("save quiz result: %w", err)
	}
	return nil
}

func (r *quizResultRepo) Recent(ctx context.Context, userID string, limit int) ([]QuizResultRecord, error) {
	sel := builder().
		Select("sequence", "timestamp", "attempt_id", "user_id", "material_id", "question_type", "total", "correct").
		From(entsql.Table(quizResultsTable)).
		Where(entsql.EQ("user_id", userID)).
		OrderBy(entsql.Desc("sequence"))
	if limit > 0 {
		sel.Limit(limit)
	}

	query, args := sel.Query()
	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("query quiz results: %w", err)
	}
	defer rows.Close()

	var out []QuizResultRecord
	for rows.Next() {
		var rec QuizResultRecord
		if err := rows.Scan(
			&rec.Sequence, &rec.Timestamp, &rec.AttemptID, &rec.UserID,
			&rec.MaterialID, &rec.QuestionType, &rec.Total, &rec.Correct,
		); err != nil {
			return nil, fmt.Errorf("scan quiz result: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *quizResultRepo) Summary(ctx context.Context, userID string) (QuizSummary, error) {
	query, args := builder().
		Select(
			entsql.As(entsql.Count("*"), "quizzes"),
			"COALESCE(SUM(`total`), 0)",
			"COALESCE(SUM(`correct`), 0)",
		).
		From(entsql.Table(quizResultsTable)).
		Where(entsql.EQ("user_id", userID)).
		Query()

	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return QuizSummary{}, fmt.Errorf("query quiz summary: %w", err)
	}
	defer rows.Close()

	var s QuizSummary
	if rows.Next() {
		if err := rows.Scan(&s.Quizzes, &s.Questions, &s.Correct); err != nil {
			return QuizSummary{}, fmt.Errorf("scan quiz summary: %w", err)
		}
	}
	return s, rows.Err()
}
