// Package postgres stores documents as JSONB rows in a single table keyed by
// (collection, id). Field transforms are compiled into one UPDATE statement so
// concurrent writers to the same document serialize on the row lock.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go-jobboard-backend/internal/docstore"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS documents (
	collection TEXT NOT NULL,
	id TEXT NOT NULL,
	seq BIGSERIAL,
	data JSONB NOT NULL DEFAULT '{}'::jsonb,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (collection, id)
);
CREATE INDEX IF NOT EXISTS documents_data_gin ON documents USING GIN (data jsonb_path_ops);
`

type Store struct {
	db *pgxpool.Pool
}

var _ docstore.Store = (*Store)(nil)

// New wraps pool and creates the documents table if needed.
func New(ctx context.Context, pool *pgxpool.Pool) (*Store, error) {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return nil, fmt.Errorf("failed to create documents table: %w", err)
	}
	return &Store{db: pool}, nil
}

func (s *Store) Get(ctx context.Context, collection, id string) (docstore.Document, error) {
	var data map[string]any
	err := s.db.QueryRow(ctx,
		`SELECT data FROM documents WHERE collection = $1 AND id = $2`,
		collection, id,
	).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return docstore.Document{}, docstore.ErrNotFound
	}
	if err != nil {
		return docstore.Document{}, fmt.Errorf("failed to get %s/%s: %w", collection, id, err)
	}
	return docstore.Document{ID: id, Data: docstore.NormalizeMap(data)}, nil
}

func (s *Store) Where(ctx context.Context, collection, field string, value any) ([]docstore.Document, error) {
	filter, err := encode(map[string]any{field: docstore.Normalize(value)})
	if err != nil {
		return nil, err
	}
	return s.query(ctx,
		`SELECT id, data FROM documents WHERE collection = $1 AND data @> $2::jsonb ORDER BY seq`,
		collection, filter,
	)
}

func (s *Store) All(ctx context.Context, collection string) ([]docstore.Document, error) {
	return s.query(ctx,
		`SELECT id, data FROM documents WHERE collection = $1 ORDER BY seq`,
		collection,
	)
}

func (s *Store) query(ctx context.Context, sql string, args ...any) ([]docstore.Document, error) {
	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer rows.Close()

	docs := []docstore.Document{}
	for rows.Next() {
		var (
			id   string
			data map[string]any
		)
		if err := rows.Scan(&id, &data); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		docs = append(docs, docstore.Document{ID: id, Data: docstore.NormalizeMap(data)})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate documents: %w", err)
	}
	return docs, nil
}

func (s *Store) Add(ctx context.Context, collection string, data map[string]any) (string, error) {
	plan, err := docstore.PlanCreate(data)
	if err != nil {
		return "", err
	}

	id := uuid.NewString()
	b := &builder{args: []any{collection, id}}
	expr, err := b.compile("'{}'::jsonb", plan)
	if err != nil {
		return "", err
	}

	_, err = s.db.Exec(ctx,
		`INSERT INTO documents (collection, id, data) VALUES ($1, $2, `+expr+`)`,
		b.args...,
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert into %s: %w", collection, err)
	}
	return id, nil
}

func (s *Store) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	plan, err := docstore.PlanUpdate(fields)
	if err != nil {
		return err
	}

	b := &builder{args: []any{collection, id}}
	expr, err := b.compile("data", plan)
	if err != nil {
		return err
	}

	tag, err := s.db.Exec(ctx,
		`UPDATE documents SET data = `+expr+`, updated_at = now() WHERE collection = $1 AND id = $2`,
		b.args...,
	)
	if err != nil {
		return fmt.Errorf("failed to update %s/%s: %w", collection, id, err)
	}
	if tag.RowsAffected() == 0 {
		return docstore.ErrNotFound
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, collection, id string) error {
	tag, err := s.db.Exec(ctx,
		`DELETE FROM documents WHERE collection = $1 AND id = $2`,
		collection, id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete %s/%s: %w", collection, id, err)
	}
	if tag.RowsAffected() == 0 {
		return docstore.ErrNotFound
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

func (s *Store) Close() error {
	s.db.Close()
	return nil
}

// builder compiles a Plan into a jsonb expression over base. Arguments are
// appended to args and referenced positionally. JSON is bound as text so the
// statements also work under the simple query protocol.
type builder struct {
	args []any
}

func (b *builder) bind(v any) string {
	b.args = append(b.args, v)
	return fmt.Sprintf("$%d", len(b.args))
}

// current is the stored array for key, or [] when absent or not an array.
func current(key string) string {
	return fmt.Sprintf(
		"(CASE WHEN jsonb_typeof(data -> %[1]s::text) = 'array' THEN data -> %[1]s::text ELSE '[]'::jsonb END)",
		key,
	)
}

func (b *builder) compile(base string, plan docstore.Plan) (string, error) {
	expr := base

	if len(plan.Set) > 0 {
		set, err := encode(plan.Set)
		if err != nil {
			return "", err
		}
		expr = fmt.Sprintf("(%s || %s::jsonb)", expr, b.bind(set))
	}

	for _, key := range plan.UnionKeys() {
		values, err := encode(plan.Union[key])
		if err != nil {
			return "", err
		}
		k := b.bind(key)
		merged := fmt.Sprintf(`(SELECT COALESCE(jsonb_agg(u.e ORDER BY u.o), '[]'::jsonb) FROM (
			SELECT t.e, min(t.o) AS o
			FROM jsonb_array_elements(%s || %s::jsonb) WITH ORDINALITY AS t(e, o)
			GROUP BY t.e
		) u)`, current(k), b.bind(values))
		expr = fmt.Sprintf("jsonb_set(%s, ARRAY[%s::text], %s, true)", expr, k, merged)
	}

	for _, key := range plan.RemoveKeys() {
		values, err := encode(plan.Remove[key])
		if err != nil {
			return "", err
		}
		k := b.bind(key)
		kept := fmt.Sprintf(`(SELECT COALESCE(jsonb_agg(t.e ORDER BY t.o), '[]'::jsonb)
			FROM jsonb_array_elements(%s) WITH ORDINALITY AS t(e, o)
			WHERE NOT (%s::jsonb @> jsonb_build_array(t.e)))`, current(k), b.bind(values))
		expr = fmt.Sprintf("jsonb_set(%s, ARRAY[%s::text], %s, true)", expr, k, kept)
	}

	for _, key := range plan.Timestamps {
		expr = fmt.Sprintf("jsonb_set(%s, ARRAY[%s::text], to_jsonb(now()), true)", expr, b.bind(key))
	}

	return strings.Join(strings.Fields(expr), " "), nil
}

func encode(v any) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to encode document: %w", err)
	}
	return string(raw), nil
}
