package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/verity/internal/bank"
	"github.com/abhisek/verity/internal/quiz"
)

// QuestionRepo is the SQLite question bank. Index i is the i-th row by id.
type QuestionRepo struct {
	db *sql.DB
}

var _ bank.Bank = (*QuestionRepo)(nil)

func (r *QuestionRepo) QuestionAt(ctx context.Context, index int) (quiz.Question, error) {
	if index < 0 {
		return quiz.Question{}, bank.ErrNotFound
	}
	query, args := entsql.Dialect(dialect.SQLite).
		Select("question", "answer", "reason").
		From(entsql.Table(tableQuestions)).
		OrderBy("id").
		Limit(1).
		Offset(index).
		Query()

	var q quiz.Question
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&q.Text, &q.Answer, &q.Reason)
	if errors.Is(err, sql.ErrNoRows) {
		return quiz.Question{}, bank.ErrNotFound
	}
	if err != nil {
		return quiz.Question{}, fmt.Errorf("query question %d: %w", index, err)
	}
	return q, nil
}

func (r *QuestionRepo) Count(ctx context.Context) (int, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select(entsql.Count("*")).
		From(entsql.Table(tableQuestions)).
		Query()

	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count questions: %w", err)
	}
	return n, nil
}

// Add inserts questions in one transaction so a failed import leaves the
// bank unchanged.
func (r *QuestionRepo) Add(ctx context.Context, questions []quiz.Question) error {
	if len(questions) == 0 {
		return nil
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC()
	for i, q := range questions {
		query, args := entsql.Dialect(dialect.SQLite).
			Insert(tableQuestions).
			Columns("question", "answer", "reason", "created_at").
			Values(q.Text, q.Answer, q.Reason, now).
			Query()
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert question %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
