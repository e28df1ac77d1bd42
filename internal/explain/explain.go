// Package explain produces the text served at /quiz/{index}/llm.
//
// An explanation is resolved in order from the cache, from the configured
// LLM provider, and finally from the question's own reason field.
package explain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/abhisek/verity/internal/bank"
	"github.com/abhisek/verity/internal/llm"
	"github.com/abhisek/verity/internal/quiz"
	"github.com/abhisek/verity/internal/store"
)

// ErrUnavailable is returned when no source can explain a question.
var ErrUnavailable = errors.New("explanation unavailable")

const systemPrompt = `You explain the answers to a "legit or fake" quiz.
Each item is a statement that is either real or fake. Given the statement and
its correct answer, write two to four plain sentences saying why it is real or
why it is fake. Start with the verdict in bold, for example "**Fake.**".
Do not invent sources or links.`

var explanationSchema = &llm.Schema{
	Name:        "quiz-explanation",
	Description: "Explanation of why a quiz statement is real or fake",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"explanation": map[string]any{
				"type":        "string",
				"description": "Two to four sentences, starting with the bold verdict.",
				"minLength":   1,
			},
		},
		"required":             []any{"explanation"},
		"additionalProperties": false,
	},
}

// Service resolves explanations. The cache and provider are optional.
type Service struct {
	bank     bank.Bank
	cache    store.ExplanationRepo
	provider llm.Provider
	logger   *zap.Logger
	group    singleflight.Group
}

// New creates a Service. cache and provider may be nil.
func New(b bank.Bank, cache store.ExplanationRepo, provider llm.Provider, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{bank: b, cache: cache, provider: provider, logger: logger}
}

// Explain returns the explanation for the question at index. It returns
// bank.ErrNotFound when there is no such question and ErrUnavailable when
// nothing can explain it.
func (s *Service) Explain(ctx context.Context, index int) (string, error) {
	q, err := s.bank.QuestionAt(ctx, index)
	if err != nil {
		return "", err
	}

	// Callers asking about the same question share one resolution. It runs
	// detached from the first caller so a dropped request still fills the
	// cache for the rest.
	key := store.QuestionKey(q.Text, q.Answer)
	v, err, _ := s.group.Do(key, func() (any, error) {
		return s.resolve(context.WithoutCancel(ctx), key, q)
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (s *Service) resolve(ctx context.Context, key string, q quiz.Question) (string, error) {
	log := s.logger.With(zap.String("question_key", key[:12]))

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, key)
		if err != nil {
			log.Warn("explanation cache read failed", zap.Error(err))
		} else if cached != nil {
			return cached.Text, nil
		}
	}

	if s.provider != nil {
		text, model, err := s.generate(ctx, q)
		if err == nil {
			s.store(ctx, log, store.Explanation{Key: key, Text: text, Model: model})
			return text, nil
		}
		if llm.IsTransient(err) {
			log.Warn("explanation generation unavailable", zap.Error(err))
		} else {
			log.Error("explanation generation failed", zap.Error(err))
		}
	}

	if q.Reason != "" {
		return q.Reason, nil
	}
	return "", ErrUnavailable
}

func (s *Service) generate(ctx context.Context, q quiz.Question) (text, model string, err error) {
	prompt := fmt.Sprintf("Statement: %s\nCorrect answer: %s", q.Text, quiz.NormalizeAnswer(q.Answer).Label())
	if q.Reason != "" {
		prompt += "\nEditor's note: " + q.Reason
	}

	resp, err := s.provider.Generate(llm.WithPurpose(ctx, llm.PurposeExplanation), llm.Request{
		System:      systemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: prompt}},
		Schema:      explanationSchema,
		MaxTokens:   512,
		Temperature: 0.3,
	})
	if err != nil {
		return "", "", err
	}

	var out struct {
		Explanation string `json:"explanation"`
	}
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return "", "", fmt.Errorf("decode explanation: %w", err)
	}
	text = strings.TrimSpace(out.Explanation)
	if text == "" {
		return "", "", errors.New("provider returned an empty explanation")
	}
	model = resp.Model
	if model == "" {
		model = s.provider.ModelID()
	}
	return text, model, nil
}

func (s *Service) store(ctx context.Context, log *zap.Logger, e store.Explanation) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Put(ctx, e); err != nil {
		log.Warn("explanation cache write failed", zap.Error(err))
	}
}
