// Package bank defines the question bank the backend serves from.
package bank

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/verity/internal/quiz"
)

// ErrNotFound is returned when no question exists at an index.
var ErrNotFound = errors.New("question not found")

// Bank is an ordered collection of questions addressed by zero-based index.
type Bank interface {
	// QuestionAt returns the question at index, or ErrNotFound.
	QuestionAt(ctx context.Context, index int) (quiz.Question, error)

	// Count returns the number of questions.
	Count(ctx context.Context) (int, error)

	// Add appends questions in order.
	Add(ctx context.Context, questions []quiz.Question) error
}

// Prepare trims q and normalizes its answer for storage. It rejects
// questions without text or with an answer other than real, fake or legit.
func Prepare(q quiz.Question) (quiz.Question, error) {
	q.Text = strings.TrimSpace(q.Text)
	q.Reason = strings.TrimSpace(q.Reason)
	if q.Text == "" {
		return q, errors.New("question text is empty")
	}
	v, ok := quiz.ParseVerdict(strings.TrimSpace(q.Answer))
	if !ok {
		return q, fmt.Errorf("answer %q is not real or fake", q.Answer)
	}
	q.Answer = string(v)
	return q, nil
}
