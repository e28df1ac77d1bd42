package source

import (
	"errors"
	"fmt"
)

// NotFoundError indicates the backend has no usable question at Index, or
// answered the question request with a non-200 status.
type NotFoundError struct {
	Index  int
	Status int
	Err    error
}

func (e *NotFoundError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("no more questions or error loading question %d: %v", e.Index, e.Err)
	}
	return fmt.Sprintf("no more questions or error loading question %d (HTTP %d)", e.Index, e.Status)
}

func (e *NotFoundError) Unwrap() error { return e.Err }

// TransportError indicates the question request failed before a usable
// response arrived: connection refused, timeout, unreadable body.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return e.Err.Error()
}

func (e *TransportError) Unwrap() error { return e.Err }

// ExplanationUnavailableError indicates the explanation request failed for
// any reason.
type ExplanationUnavailableError struct {
	Index  int
	Status int
	Err    error
}

func (e *ExplanationUnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("explanation %d unavailable: %v", e.Index, e.Err)
	}
	return fmt.Sprintf("explanation %d unavailable (HTTP %d)", e.Index, e.Status)
}

func (e *ExplanationUnavailableError) Unwrap() error { return e.Err }

// errMissingAnswer is wrapped in a NotFoundError when a question body has no
// answer field.
var errMissingAnswer = errors.New("question has no answer")
