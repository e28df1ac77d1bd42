package source

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/verity/internal/quiz"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL+"/", opts...)
}

func TestFetchQuestion_HappyPath(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/quiz/0", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"question":"Is the sky blue?","answer":"real","reason":"Rayleigh scattering"}`)
	})

	q, err := c.FetchQuestion(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, quiz.Question{Text: "Is the sky blue?", Answer: "real", Reason: "Rayleigh scattering"}, q)
}

func TestFetchQuestion_ReasonOptional(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"question":"q","answer":"fake","reason":null}`)
	})

	q, err := c.FetchQuestion(context.Background(), 4)
	require.NoError(t, err)
	assert.Empty(t, q.Reason)
}

func TestFetchQuestion_NonOKIsNotFound(t *testing.T) {
	for _, status := range []int{http.StatusNotFound, http.StatusInternalServerError} {
		t.Run(http.StatusText(status), func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(status)
				fmt.Fprint(w, `{"detail":"No quiz found at index 3"}`)
			})

			_, err := c.FetchQuestion(context.Background(), 3)
			var nf *NotFoundError
			require.ErrorAs(t, err, &nf)
			assert.Equal(t, 3, nf.Index)
			assert.Equal(t, status, nf.Status)
		})
	}
}

func TestFetchQuestion_MissingAnswerIsNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"question":"no answer here"}`)
	})

	_, err := c.FetchQuestion(context.Background(), 1)
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.ErrorIs(t, err, errMissingAnswer)
}

func TestFetchQuestion_TransportError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	_, err := NewClient(url).FetchQuestion(context.Background(), 0)
	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.NotEmpty(t, err.Error())
}

func TestFetchQuestion_BadJSONIsTransportError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `not json`)
	})

	_, err := c.FetchQuestion(context.Background(), 0)
	var te *TransportError
	require.ErrorAs(t, err, &te)
}

func TestFetchQuestion_SingleAttempt(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := c.FetchQuestion(context.Background(), 0)
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestFetchQuestion_Timeout(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}, WithTimeout(20*time.Millisecond))

	_, err := c.FetchQuestion(context.Background(), 0)
	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestFetchExplanation_HappyPath(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/quiz/2/llm", r.URL.Path)
		fmt.Fprint(w, `{"llm_output":"**Real.** The sky scatters blue light."}`)
	})

	text, err := c.FetchExplanation(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "**Real.** The sky scatters blue light.", text)
}

func TestFetchExplanation_Failures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"non-200", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusServiceUnavailable) }},
		{"bad json", func(w http.ResponseWriter, r *http.Request) { fmt.Fprint(w, `{`) }},
		{"missing field", func(w http.ResponseWriter, r *http.Request) { fmt.Fprint(w, `{}`) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, tt.handler)
			_, err := c.FetchExplanation(context.Background(), 2)
			var eu *ExplanationUnavailableError
			require.ErrorAs(t, err, &eu)
			assert.Equal(t, 2, eu.Index)
		})
	}
}

func TestFetchExplanation_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	_, err := NewClient(url).FetchExplanation(context.Background(), 0)
	var eu *ExplanationUnavailableError
	require.ErrorAs(t, err, &eu)
}

func TestNewClient_TrimsTrailingSlash(t *testing.T) {
	assert.Equal(t, "http://127.0.0.1:8000", NewClient("http://127.0.0.1:8000/").BaseURL())
}
