package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/abhisek/verity/internal/bank"
	"github.com/abhisek/verity/internal/explain"
)

type questionResponse struct {
	Question string  `json:"question"`
	Answer   *string `json:"answer"`
	Reason   *string `json:"reason"`
}

type explanationResponse struct {
	LLMOutput string `json:"llm_output"`
}

// optional maps an empty field to JSON null.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func detail(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"detail": msg})
}

func notFound(c *gin.Context, index int) {
	detail(c, http.StatusNotFound, fmt.Sprintf("No quiz found at index %d", index))
}

// indexParam parses :index and answers 400 when it is not a non-negative
// integer.
func indexParam(c *gin.Context) (int, bool) {
	raw := c.Param("index")
	index, err := strconv.Atoi(raw)
	if err != nil || index < 0 {
		detail(c, http.StatusBadRequest, fmt.Sprintf("Invalid quiz index %q", raw))
		return 0, false
	}
	return index, true
}

func (s *Server) getQuestion(c *gin.Context) {
	index, ok := indexParam(c)
	if !ok {
		return
	}

	q, err := s.opts.Bank.QuestionAt(c.Request.Context(), index)
	switch {
	case errors.Is(err, bank.ErrNotFound):
		notFound(c, index)
		return
	case err != nil:
		s.logger.Error("question lookup failed", zap.Int("index", index), zap.Error(err))
		detail(c, http.StatusInternalServerError, "Failed to load quiz")
		return
	}

	c.JSON(http.StatusOK, questionResponse{
		Question: q.Text,
		Answer:   optional(q.Answer),
		Reason:   optional(q.Reason),
	})
}

func (s *Server) getExplanation(c *gin.Context) {
	index, ok := indexParam(c)
	if !ok {
		return
	}
	if s.opts.Explainer == nil {
		detail(c, http.StatusServiceUnavailable, "Explanations are not configured")
		return
	}

	text, err := s.opts.Explainer.Explain(c.Request.Context(), index)
	switch {
	case errors.Is(err, bank.ErrNotFound):
		notFound(c, index)
		return
	case errors.Is(err, explain.ErrUnavailable):
		detail(c, http.StatusServiceUnavailable, "No explanation available")
		return
	case err != nil:
		s.logger.Error("explanation failed", zap.Int("index", index), zap.Error(err))
		detail(c, http.StatusServiceUnavailable, "No explanation available")
		return
	}
	c.JSON(http.StatusOK, explanationResponse{LLMOutput: text})
}

func (s *Server) health(c *gin.Context) {
	n, err := s.opts.Bank.Count(c.Request.Context())
	if err != nil {
		s.logger.Error("health check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "questions": n})
}
