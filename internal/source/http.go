package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/abhisek/verity/internal/quiz"
)

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 1 << 20

// Client implements QuestionSource against the quiz HTTP API:
//
//	GET {base}/quiz/{index}      -> {"question", "answer", "reason"?}
//	GET {base}/quiz/{index}/llm  -> {"llm_output"}
//
// Each call is a single attempt; failures are returned immediately.
type Client struct {
	baseURL string
	client  *http.Client
	timeout time.Duration
}

var _ QuestionSource = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithTimeout bounds every request. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// NewClient creates a Client rooted at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the root both endpoints are resolved against.
func (c *Client) BaseURL() string {
	return c.baseURL
}

type questionBody struct {
	Question string  `json:"question"`
	Answer   *string `json:"answer"`
	Reason   *string `json:"reason"`
}

type explanationBody struct {
	LLMOutput *string `json:"llm_output"`
}

func (c *Client) FetchQuestion(ctx context.Context, index int) (quiz.Question, error) {
	status, body, err := c.get(ctx, fmt.Sprintf("%s/quiz/%d", c.baseURL, index))
	if err != nil {
		return quiz.Question{}, &TransportError{Err: err}
	}
	if status != http.StatusOK {
		return quiz.Question{}, &NotFoundError{Index: index, Status: status}
	}

	var qb questionBody
	if err := json.Unmarshal(body, &qb); err != nil {
		return quiz.Question{}, &TransportError{Err: fmt.Errorf("decode question %d: %w", index, err)}
	}
	if qb.Answer == nil {
		return quiz.Question{}, &NotFoundError{Index: index, Status: status, Err: errMissingAnswer}
	}

	q := quiz.Question{
		Text:   qb.Question,
		Answer: *qb.Answer,
	}
	if qb.Reason != nil {
		q.Reason = *qb.Reason
	}
	return q, nil
}

func (c *Client) FetchExplanation(ctx context.Context, index int) (string, error) {
	status, body, err := c.get(ctx, fmt.Sprintf("%s/quiz/%d/llm", c.baseURL, index))
	if err != nil {
		return "", &ExplanationUnavailableError{Index: index, Err: err}
	}
	if status != http.StatusOK {
		return "", &ExplanationUnavailableError{Index: index, Status: status}
	}

	var eb explanationBody
	if err := json.Unmarshal(body, &eb); err != nil {
		return "", &ExplanationUnavailableError{Index: index, Status: status, Err: fmt.Errorf("decode explanation: %w", err)}
	}
	if eb.LLMOutput == nil {
		return "", &ExplanationUnavailableError{Index: index, Status: status, Err: fmt.Errorf("response has no llm_output")}
	}
	return *eb.LLMOutput, nil
}

// get performs one GET and returns the status and body. A non-nil error
// means no usable response was received.
func (c *Client) get(ctx context.Context, url string) (int, []byte, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return 0, nil, fmt.Errorf("read response: %w", err)
	}
	return resp.StatusCode, body, nil
}
