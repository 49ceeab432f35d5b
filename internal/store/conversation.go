package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/studybuddy/internal/memory"
)

// ConversationRepo is a memory.LogStore backed by the conversations table.
// Each row carries a version that every successful save bumps; a save whose
// expected version no longer matches affects no rows and reports a conflict.
type ConversationRepo struct {
	drv *entsql.Driver
}

var _ memory.LogStore = (*ConversationRepo)(nil)

func conversationKey(key memory.Key) *entsql.Predicate {
	return entsql.And(
		entsql.EQ("user_id", key.UserID),
		entsql.EQ("material_id", key.MaterialID),
	)
}

func (r *ConversationRepo) Load(ctx context.Context, key memory.Key) (memory.Log, memory.Version, error) {
	query, args := builder().
		Select("log", "version").
		From(entsql.Table(conversationsTable)).
		Where(conversationKey(key)).
		Query()

	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return nil, 0, fmt.Errorf("query conversation: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, 0, rows.Err()
	}
	var (
		raw     string
		version int64
	)
	if err := rows.Scan(&raw, &version); err != nil {
		return nil, 0, fmt.Errorf("scan conversation: %w", err)
	}
	log, err := memory.Decode([]byte(raw))
	if err != nil {
		return nil, 0, err
	}
	return log, memory.Version(version), nil
}

func (r *ConversationRepo) Save(ctx context.Context, key memory.Key, log memory.Log, expected memory.Version) error {
	data, err := memory.Encode(log)
	if err != nil {
		return fmt.Errorf("encode conversation: %w", err)
	}
	now := time.Now().UTC()

	var query string
	var args []any
	if expected == 0 {
		query, args = builder().
			Insert(conversationsTable).
			Columns("user_id", "material_id", "log", "version", "updated_at").
			Values(key.UserID, key.MaterialID, string(data), int64(1), now).
			OnConflict(
				entsql.ConflictColumns("user_id", "material_id"),
				entsql.DoNothing(),
			).
			Query()
	} else {
		query, args = builder().
			Update(conversationsTable).
			Set("log", string(data)).
			Set("version", int64(expected)+1).
			Set("updated_at", now).
			Where(entsql.And(conversationKey(key), entsql.EQ("version", int64(expected)))).
			Query()
	}

	var res sql.Result
	if err := r.drv.Exec(ctx, query, args, &res); err != nil {
		return fmt.Errorf("save conversation: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("save conversation: %w", err)
	}
	if n == 0 {
		return memory.ErrConflict
	}
	return nil
}

// Clear keeps the row as an empty log with a bumped version rather than
// deleting it; a deleted row would restart at version 1 and let a stale
// writer's save match again.
func (r *ConversationRepo) Clear(ctx context.Context, key memory.Key) error {
	empty, err := memory.Encode(nil)
	if err != nil {
		return fmt.Errorf("encode conversation: %w", err)
	}
	query, args := builder().
		Update(conversationsTable).
		Set("log", string(empty)).
		Add("version", int64(1)).
		Set("updated_at", time.Now().UTC()).
		Where(conversationKey(key)).
		Query()

	var res sql.Result
	if err := r.drv.Exec(ctx, query, args, &res); err != nil {
		return fmt.Errorf("clear conversation: %w", err)
	}
	return nil
}
