package store

import (
	"context"
	"time"
)

// Explanation is a cached explanation for one question.
type Explanation struct {
	// Key identifies the question content, see QuestionKey.
	Key       string
	Text      string
	Model     string
	CreatedAt time.Time
}

// ExplanationRepo caches generated explanations by question key.
type ExplanationRepo interface {
	// Get returns the cached explanation, or nil if there is none.
	Get(ctx context.Context, key string) (*Explanation, error)

	// Put stores or replaces the explanation for e.Key.
	Put(ctx context.Context, e Explanation) error
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
}

// LLMRequestEvent is a stored LLMRequestEventData.
type LLMRequestEvent struct {
	ID        int
	Timestamp time.Time
	LLMRequestEventData
}

// EventRepo provides append access to the LLM request log.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// RecentLLMRequests returns up to limit events, newest first.
	RecentLLMRequests(ctx context.Context, limit int) ([]LLMRequestEvent, error)
}
