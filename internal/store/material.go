package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
)

type materialRepo struct {
	drv *entsql.Driver
}

func (r *materialRepo) Create(ctx context.Context, name, content string) (*Material, error) {
	m := &Material{
		ID:        uuid.NewString(),
		Name:      name,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}

	query, args := builder().
		Insert(materialsTable).
		Columns("id", "name", "content", "created_at").
		Values(m.ID, m.Name, m.Content, m.CreatedAt).
		Query()

	var res sql.Result
	if err := r.drv.Exec(ctx, query, args, &res); err != nil {
		return nil, fmt.Errorf("save material: %w", err)
	}
	return m, nil
}

func (r *materialRepo) Get(ctx context.Context, id string) (*Material, error) {
	return r.first(ctx, entsql.EQ("id", id))
}

func (r *materialRepo) Find(ctx context.Context, ref string) (*Material, error) {
	m, err := r.Get(ctx, ref)
	if !errors.Is(err, ErrNotFound) {
		return m, err
	}
	return r.first(ctx, entsql.EQ("name", ref))
}

func (r *materialRepo) first(ctx context.Context, where *entsql.Predicate) (*Material, error) {
	query, args := builder().
		Select("id", "name", "content", "created_at").
		From(entsql.Table(materialsTable)).
		Where(where).
		OrderBy(entsql.Desc("created_at")).
		Limit(1).
		Query()

	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("query material: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("query material: %w", err)
		}
		return nil, ErrNotFound
	}
	var m Material
	if err := rows.Scan(&m.ID, &m.Name, &m.Content, &m.CreatedAt); err != nil {
		return nil, fmt.Errorf("scan material: %w", err)
	}
	return &m, nil
}

func (r *materialRepo) List(ctx context.Context) ([]MaterialSummary, error) {
	query, args := builder().
		Select("id", "name", "content", "created_at").
		From(entsql.Table(materialsTable)).
		OrderBy(entsql.Desc("created_at")).
		Query()

	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("list materials: %w", err)
	}
	defer rows.Close()

	var out []MaterialSummary
	for rows.Next() {
		var (
			s       MaterialSummary
			content string
		)
		if err := rows.Scan(&s.ID, &s.Name, &content, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan material: %w", err)
		}
		s.Chars = utf8.RuneCountInString(content)
		out = append(out, s)
	}
	return out, rows.Err()
}
