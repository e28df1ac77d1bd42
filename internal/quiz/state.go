package quiz

// Phase is the per-index stage of the quiz, derived from State.
type Phase int

const (
	PhaseLoading  Phase = iota // Question fetch in flight
	PhaseReady                 // Question shown, waiting for a verdict
	PhaseAnswered              // Verdict recorded, waiting for "next"
	PhaseErrored               // Question fetch failed, waiting for "restart"
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	case PhaseAnswered:
		return "answered"
	case PhaseErrored:
		return "errored"
	}
	return "unknown"
}

// ExplanationFailedText replaces the explanation when it cannot be fetched.
const ExplanationFailedText = "Failed to load explanation"

// State is the whole quiz session. Values are never mutated in place by
// Step; every transition returns a new State.
type State struct {
	// Index is the zero-based position of the current question.
	Index int

	// Visit increases every time an index is entered, so two visits to the
	// same index (e.g. index 0 before and after a restart) are distinct.
	Visit int

	// Question is the loaded question, nil while loading or after an error.
	Question *Question

	// UserAnswer is the normalized verdict, empty until the player answers.
	UserAnswer Verdict

	// Score is the number of correct answers since the last restart.
	Score int

	// Err holds the question-fetch failure message for this index.
	Err string

	// Explanation is the explanation text, or ExplanationFailedText.
	Explanation string

	// HasExplanation is true once an explanation result has arrived.
	HasExplanation bool

	// ExplanationLoading is true while the explanation fetch is in flight.
	ExplanationLoading bool
}

// Phase derives the current phase. The order of checks makes the
// question/error/loading cases mutually exclusive.
func (s State) Phase() Phase {
	switch {
	case s.Err != "":
		return PhaseErrored
	case s.Question == nil:
		return PhaseLoading
	case s.UserAnswer == "":
		return PhaseReady
	default:
		return PhaseAnswered
	}
}

// Number is the 1-based question number for display.
func (s State) Number() int {
	return s.Index + 1
}

// Correct reports whether the recorded answer matched. False before answering.
func (s State) Correct() bool {
	if s.Question == nil || s.UserAnswer == "" {
		return false
	}
	return IsCorrect(*s.Question, s.UserAnswer)
}

// enter builds the fresh Loading slice for index, keeping only the score.
func enter(index, visit, score int) State {
	return State{
		Index: index,
		Visit: visit,
		Score: score,
	}
}
