package quiz

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var skyQuestion = Question{Text: "Is the sky blue?", Answer: "real"}

// ready drives a fresh session to QuestionReady at index 0 with q.
func ready(t *testing.T, q Question) State {
	t.Helper()
	s, eff := Start()
	fq, ok := eff.(FetchQuestion)
	require.True(t, ok, "Start should request a question")

	s, eff = Step(s, QuestionLoaded{Index: fq.Index, Visit: fq.Visit, Question: q})
	require.Equal(t, PhaseReady, s.Phase())
	require.IsType(t, FetchExplanation{}, eff)
	return s
}

func TestStart_EntersLoadingAtZero(t *testing.T) {
	s, eff := Start()

	assert.Equal(t, PhaseLoading, s.Phase())
	assert.Equal(t, 0, s.Index)
	assert.Equal(t, 0, s.Score)
	assert.Nil(t, s.Question)
	assert.Empty(t, s.UserAnswer)
	assert.False(t, s.HasExplanation)
	assert.False(t, s.ExplanationLoading)
	assert.Equal(t, FetchQuestion{Index: 0, Visit: s.Visit}, eff)
}

func TestQuestionLoaded_RequestsExplanation(t *testing.T) {
	s, _ := Start()

	next, eff := Step(s, QuestionLoaded{Index: 0, Visit: s.Visit, Question: skyQuestion})

	require.NotNil(t, next.Question)
	assert.Equal(t, skyQuestion, *next.Question)
	assert.True(t, next.ExplanationLoading)
	assert.Equal(t, FetchExplanation{Index: 0, Visit: s.Visit}, eff)
	assert.Nil(t, s.Question, "Step must not mutate its input")
}

func TestScenarioA_LegitMatchesReal(t *testing.T) {
	s := ready(t, skyQuestion)

	s, eff := Step(s, AnswerSubmitted{Raw: "legit"})

	assert.Nil(t, eff)
	assert.Equal(t, PhaseAnswered, s.Phase())
	assert.Equal(t, VerdictReal, s.UserAnswer)
	assert.Equal(t, 1, s.Score)
	assert.True(t, s.Correct())
}

func TestScenarioB_LegitDoesNotMatchFake(t *testing.T) {
	s := ready(t, Question{Text: "Cats can fly.", Answer: "fake"})

	s, _ = Step(s, AnswerSubmitted{Raw: "legit"})

	assert.Equal(t, PhaseAnswered, s.Phase())
	assert.Equal(t, 0, s.Score)
	assert.False(t, s.Correct())
}

func TestScenarioC_QuestionFailureThenRestart(t *testing.T) {
	s := State{Index: 3, Visit: 4, Score: 2}

	s, eff := Step(s, QuestionFailed{Index: 3, Visit: 4, Err: errors.New("no question at index 3")})
	require.Nil(t, eff)
	require.Equal(t, PhaseErrored, s.Phase())
	assert.Equal(t, "no question at index 3", s.Err)
	assert.Equal(t, 2, s.Score, "score survives until restart")

	// Advance is not accepted while errored.
	after, eff := Step(s, Advanced{})
	assert.Nil(t, eff)
	assert.Equal(t, s, after)

	s, eff = Step(s, Restarted{})
	assert.Equal(t, PhaseLoading, s.Phase())
	assert.Equal(t, 0, s.Index)
	assert.Equal(t, 0, s.Score)
	assert.Empty(t, s.Err)
	assert.Equal(t, FetchQuestion{Index: 0, Visit: 5}, eff)
}

func TestScenarioD_ExplanationFailureIsNotFatal(t *testing.T) {
	s := State{Index: 2, Visit: 3, Score: 1}
	s, eff := Step(s, QuestionLoaded{Index: 2, Visit: 3, Question: skyQuestion})
	require.Equal(t, FetchExplanation{Index: 2, Visit: 3}, eff)

	s, _ = Step(s, ExplanationFailed{Index: 2, Visit: 3, Err: errors.New("503")})
	assert.Equal(t, PhaseReady, s.Phase())
	assert.Equal(t, ExplanationFailedText, s.Explanation)
	assert.False(t, s.ExplanationLoading)
	assert.Empty(t, s.Err)

	s, _ = Step(s, AnswerSubmitted{Raw: "real"})
	assert.Equal(t, PhaseAnswered, s.Phase())
	assert.Equal(t, 2, s.Score)

	s, eff = Step(s, Advanced{})
	assert.Equal(t, FetchQuestion{Index: 3, Visit: 4}, eff)
}

func TestAnswer_SecondSubmissionIgnored(t *testing.T) {
	s := ready(t, skyQuestion)

	s, _ = Step(s, AnswerSubmitted{Raw: "real"})
	require.Equal(t, 1, s.Score)

	again, eff := Step(s, AnswerSubmitted{Raw: "REAL"})
	assert.Nil(t, eff)
	assert.Equal(t, s, again)

	changed, _ := Step(s, AnswerSubmitted{Raw: "fake"})
	assert.Equal(t, VerdictReal, changed.UserAnswer, "answer is fixed once set")
}

func TestAnswer_UnknownVerdictIgnored(t *testing.T) {
	s := ready(t, skyQuestion)

	next, _ := Step(s, AnswerSubmitted{Raw: "maybe"})

	assert.Equal(t, PhaseReady, next.Phase())
	assert.Equal(t, 0, next.Score)
}

func TestAnswer_IgnoredWhileLoading(t *testing.T) {
	s, _ := Start()

	next, eff := Step(s, AnswerSubmitted{Raw: "real"})

	assert.Nil(t, eff)
	assert.Equal(t, s, next)
}

func TestAnswer_CaseInsensitiveAgainstUpstream(t *testing.T) {
	s := ready(t, Question{Text: "x", Answer: "FAKE"})

	s, _ = Step(s, AnswerSubmitted{Raw: "Fake"})

	assert.Equal(t, 1, s.Score)
}

func TestExplanation_ArrivesBeforeOrAfterAnswer(t *testing.T) {
	before := ready(t, skyQuestion)
	before, _ = Step(before, ExplanationLoaded{Index: 0, Visit: before.Visit, Text: "Rayleigh scattering."})
	assert.Equal(t, PhaseReady, before.Phase())
	before, _ = Step(before, AnswerSubmitted{Raw: "legit"})

	after := ready(t, skyQuestion)
	after, _ = Step(after, AnswerSubmitted{Raw: "legit"})
	after, _ = Step(after, ExplanationLoaded{Index: 0, Visit: after.Visit, Text: "Rayleigh scattering."})

	assert.Equal(t, before, after)
	assert.Equal(t, PhaseAnswered, after.Phase())
	assert.Equal(t, "Rayleigh scattering.", after.Explanation)
	assert.False(t, after.ExplanationLoading)
}

func TestAdvance_ResetsEverythingButScore(t *testing.T) {
	s := ready(t, skyQuestion)
	s, _ = Step(s, ExplanationLoaded{Index: 0, Visit: s.Visit, Text: "because"})
	s, _ = Step(s, AnswerSubmitted{Raw: "real"})

	next, eff := Step(s, Advanced{})

	assert.Equal(t, PhaseLoading, next.Phase())
	assert.Equal(t, 1, next.Index)
	assert.Equal(t, 1, next.Score)
	assert.Nil(t, next.Question)
	assert.Empty(t, next.UserAnswer)
	assert.Empty(t, next.Explanation)
	assert.False(t, next.HasExplanation)
	assert.False(t, next.ExplanationLoading)
	assert.Equal(t, FetchQuestion{Index: 1, Visit: s.Visit + 1}, eff)
}

func TestAdvance_IgnoredBeforeAnswer(t *testing.T) {
	s := ready(t, skyQuestion)

	next, eff := Step(s, Advanced{})

	assert.Nil(t, eff)
	assert.Equal(t, s, next)
}

func TestRestart_IgnoredUnlessErrored(t *testing.T) {
	s := ready(t, skyQuestion)
	s, _ = Step(s, AnswerSubmitted{Raw: "real"})

	next, eff := Step(s, Restarted{})

	assert.Nil(t, eff)
	assert.Equal(t, s, next)
}

func TestStaleQuestionDiscarded(t *testing.T) {
	s := ready(t, skyQuestion)
	staleVisit := s.Visit
	s, _ = Step(s, AnswerSubmitted{Raw: "real"})
	s, _ = Step(s, Advanced{})
	require.Equal(t, 1, s.Index)

	late, eff := Step(s, QuestionLoaded{Index: 0, Visit: staleVisit, Question: Question{Text: "old", Answer: "fake"}})
	assert.Nil(t, eff)
	assert.Equal(t, s, late)

	late, _ = Step(s, QuestionFailed{Index: 0, Visit: staleVisit, Err: errors.New("boom")})
	assert.Equal(t, s, late)
}

func TestStaleExplanationDiscarded(t *testing.T) {
	s := ready(t, skyQuestion)
	staleVisit := s.Visit
	s, _ = Step(s, AnswerSubmitted{Raw: "real"})
	s, _ = Step(s, Advanced{})
	s, _ = Step(s, QuestionLoaded{Index: 1, Visit: s.Visit, Question: skyQuestion})
	require.True(t, s.ExplanationLoading)

	late, _ := Step(s, ExplanationLoaded{Index: 0, Visit: staleVisit, Text: "old explanation"})
	assert.Equal(t, s, late)

	late, _ = Step(s, ExplanationFailed{Index: 0, Visit: staleVisit})
	assert.Equal(t, s, late)
}

func TestStaleResultFromEarlierVisitOfSameIndex(t *testing.T) {
	// Index 0 is loaded, answered, then the session moves on and errors out.
	s := ready(t, skyQuestion)
	firstVisit := s.Visit
	s, _ = Step(s, AnswerSubmitted{Raw: "real"})
	s, _ = Step(s, Advanced{})
	s, _ = Step(s, QuestionFailed{Index: 1, Visit: s.Visit, Err: errors.New("gone")})
	s, _ = Step(s, Restarted{})
	require.Equal(t, 0, s.Index)

	// The explanation requested during the first visit of index 0 lands now.
	late, eff := Step(s, ExplanationLoaded{Index: 0, Visit: firstVisit, Text: "old"})
	assert.Nil(t, eff)
	assert.Equal(t, s, late)
}

func TestDuplicateQuestionLoadedIgnored(t *testing.T) {
	s := ready(t, skyQuestion)

	next, eff := Step(s, QuestionLoaded{Index: 0, Visit: s.Visit, Question: Question{Text: "other", Answer: "fake"}})

	assert.Nil(t, eff)
	assert.Equal(t, s, next)
}

func TestExplanationFailureNeverErrors(t *testing.T) {
	s := ready(t, skyQuestion)

	s, _ = Step(s, ExplanationFailed{Index: 0, Visit: s.Visit, Err: errors.New("down")})

	assert.NotEqual(t, PhaseErrored, s.Phase())
	assert.Empty(t, s.Err)
}

func TestQuestionFailed_EmptyMessageStillErrors(t *testing.T) {
	s, _ := Start()

	s, _ = Step(s, QuestionFailed{Index: 0, Visit: s.Visit, Err: errors.New("")})

	assert.Equal(t, PhaseErrored, s.Phase())
	assert.Equal(t, "unknown error", s.Err)
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "loading", PhaseLoading.String())
	assert.Equal(t, "ready", PhaseReady.String())
	assert.Equal(t, "answered", PhaseAnswered.String())
	assert.Equal(t, "errored", PhaseErrored.String())
}
