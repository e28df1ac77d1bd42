package store

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// QuestionKey derives the cache key for a question from its text and
// answer, so editing a question invalidates its explanation.
func QuestionKey(text, answer string) string {
	sum := sha256.Sum256([]byte(text + "\x00" + answer))
	return hex.EncodeToString(sum[:])
}

type explanationRepo struct {
	db *sql.DB
}

func (r *explanationRepo) Get(ctx context.Context, key string) (*Explanation, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select("question_key", "text", "model", "created_at").
		From(entsql.Table(tableExplanations)).
		Where(entsql.EQ("question_key", key)).
		Query()

	var e Explanation
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&e.Key, &e.Text, &e.Model, &e.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query explanation: %w", err)
	}
	return &e, nil
}

func (r *explanationRepo) Put(ctx context.Context, e Explanation) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	query, args := entsql.Dialect(dialect.SQLite).
		Insert(tableExplanations).
		Columns("question_key", "text", "model", "created_at").
		Values(e.Key, e.Text, e.Model, e.CreatedAt).
		OnConflict(
			entsql.ConflictColumns("question_key"),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save explanation: %w", err)
	}
	return nil
}
