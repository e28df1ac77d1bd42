package quiz

// Event is an input to the state machine: a fetch completion or a player
// action.
type Event interface {
	isEvent()
}

// QuestionLoaded reports a successful question fetch.
type QuestionLoaded struct {
	Index    int
	Visit    int
	Question Question
}

// QuestionFailed reports a failed question fetch.
type QuestionFailed struct {
	Index int
	Visit int
	Err   error
}

// ExplanationLoaded reports a successful explanation fetch.
type ExplanationLoaded struct {
	Index int
	Visit int
	Text  string
}

// ExplanationFailed reports a failed explanation fetch.
type ExplanationFailed struct {
	Index int
	Visit int
	Err   error
}

// AnswerSubmitted is the player's verdict in raw form ("real", "fake",
// "legit", any casing).
type AnswerSubmitted struct {
	Raw string
}

// Advanced asks for the next question.
type Advanced struct{}

// Restarted asks to start over from the first question with a zero score.
type Restarted struct{}

func (QuestionLoaded) isEvent()    {}
func (QuestionFailed) isEvent()    {}
func (ExplanationLoaded) isEvent() {}
func (ExplanationFailed) isEvent() {}
func (AnswerSubmitted) isEvent()   {}
func (Advanced) isEvent()          {}
func (Restarted) isEvent()         {}

// Effect is work the caller must perform after a transition. Results come
// back as events tagged with the same Index and Visit.
type Effect interface {
	isEffect()
}

// FetchQuestion asks the caller to load the question at Index.
type FetchQuestion struct {
	Index int
	Visit int
}

// FetchExplanation asks the caller to load the explanation at Index.
type FetchExplanation struct {
	Index int
	Visit int
}

func (FetchQuestion) isEffect()    {}
func (FetchExplanation) isEffect() {}

// Start returns the initial state, Loading(0), and the fetch that goes
// with it.
func Start() (State, Effect) {
	return load(0, 1, 0)
}

// load enters Loading(index) and requests its question.
func load(index, visit, score int) (State, Effect) {
	return enter(index, visit, score), FetchQuestion{Index: index, Visit: visit}
}

// Step applies ev to s and returns the next state plus at most one effect.
// Events that do not apply to the current phase, and fetch results issued
// for another index or visit, leave s unchanged.
func Step(s State, ev Event) (State, Effect) {
	switch ev := ev.(type) {
	case QuestionLoaded:
		if !s.current(ev.Index, ev.Visit) || s.Phase() != PhaseLoading {
			return s, nil
		}
		q := ev.Question
		s.Question = &q
		s.ExplanationLoading = true
		return s, FetchExplanation{Index: s.Index, Visit: s.Visit}

	case QuestionFailed:
		if !s.current(ev.Index, ev.Visit) || s.Phase() != PhaseLoading {
			return s, nil
		}
		next := enter(s.Index, s.Visit, s.Score)
		next.Err = errorText(ev.Err)
		return next, nil

	case ExplanationLoaded:
		if !s.current(ev.Index, ev.Visit) || !s.ExplanationLoading {
			return s, nil
		}
		s.Explanation = ev.Text
		s.HasExplanation = true
		s.ExplanationLoading = false
		return s, nil

	case ExplanationFailed:
		if !s.current(ev.Index, ev.Visit) || !s.ExplanationLoading {
			return s, nil
		}
		s.Explanation = ExplanationFailedText
		s.HasExplanation = true
		s.ExplanationLoading = false
		return s, nil

	case AnswerSubmitted:
		if s.Phase() != PhaseReady {
			return s, nil
		}
		v, ok := ParseVerdict(ev.Raw)
		if !ok {
			return s, nil
		}
		s.UserAnswer = v
		if IsCorrect(*s.Question, v) {
			s.Score++
		}
		return s, nil

	case Advanced:
		if s.Phase() != PhaseAnswered {
			return s, nil
		}
		return load(s.Index+1, s.Visit+1, s.Score)

	case Restarted:
		if s.Phase() != PhaseErrored {
			return s, nil
		}
		return load(0, s.Visit+1, 0)
	}
	return s, nil
}

// current reports whether a fetch result belongs to the live index visit.
func (s State) current(index, visit int) bool {
	return s.Index == index && s.Visit == visit
}

func errorText(err error) string {
	if err == nil || err.Error() == "" {
		return "unknown error"
	}
	return err.Error()
}
