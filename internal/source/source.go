package source

import (
	"context"

	"github.com/abhisek/verity/internal/quiz"
)

// QuestionSource reads questions and their explanations by index. The two
// operations are independent: either may fail while the other succeeds, and
// no ordering between them is implied.
type QuestionSource interface {
	// FetchQuestion returns the question at index. Errors are
	// *NotFoundError or *TransportError.
	FetchQuestion(ctx context.Context, index int) (quiz.Question, error)

	// FetchExplanation returns the explanation text for index. Errors are
	// *ExplanationUnavailableError.
	FetchExplanation(ctx context.Context, index int) (string, error)
}
