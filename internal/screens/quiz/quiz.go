package quiz

import (
	"context"
	"errors"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	qz "github.com/abhisek/verity/internal/quiz"
	"github.com/abhisek/verity/internal/screen"
	"github.com/abhisek/verity/internal/source"
	"github.com/abhisek/verity/internal/ui/layout"
	"github.com/abhisek/verity/internal/ui/theme"
)

// QuizScreen implements screen.Screen for one quiz session. It owns the
// session state and is the only writer of it: fetch results and key presses
// both arrive through Update and are applied with qz.Step one at a time.
type QuizScreen struct {
	session string
	state   qz.State
	pending qz.Effect
	src     source.QuestionSource
	logger  *zap.Logger
	keys    keyMap
	spinner spinner.Model
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.StatusProvider = (*QuizScreen)(nil)

// New creates a QuizScreen positioned at the first question. Nothing is
// fetched until Init runs.
func New(src source.QuestionSource, logger *zap.Logger) *QuizScreen {
	if logger == nil {
		logger = zap.NewNop()
	}
	state, eff := qz.Start()
	sessionID := uuid.New().String()

	s := &QuizScreen{
		session: sessionID,
		state:   state,
		pending: eff,
		src:     src,
		logger:  logger.With(zap.String("session_id", sessionID)),
		keys:    newKeyMap(),
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(theme.Spinner),
		),
	}
	s.keys.setPhase(state.Phase())
	return s
}

func (s *QuizScreen) Init() tea.Cmd {
	s.logger.Info("quiz session started")
	eff := s.pending
	s.pending = nil
	return tea.Batch(s.perform(eff), s.spinner.Tick)
}

func (s *QuizScreen) Title() string {
	return "Legit or Fake?"
}

func (s *QuizScreen) Status() string {
	return scoreLine(s.state.Score)
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	return s.keys.hints()
}

// State returns a copy of the current session state.
func (s *QuizScreen) State() qz.State {
	return s.state
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		if msg.Session != s.session {
			s.logger.Debug("discarded fetch result from another session", zap.String("from_session", msg.Session))
			return s, nil
		}
		return s, s.dispatch(msg.Event)

	case spinner.TickMsg:
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyPressMsg:
		return s, s.handleKey(msg)
	}
	return s, nil
}

func (s *QuizScreen) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	switch {
	case key.Matches(msg, s.keys.Legit):
		return s.dispatch(qz.AnswerSubmitted{Raw: "legit"})
	case key.Matches(msg, s.keys.Fake):
		return s.dispatch(qz.AnswerSubmitted{Raw: string(qz.VerdictFake)})
	case key.Matches(msg, s.keys.Next):
		return s.dispatch(qz.Advanced{})
	case key.Matches(msg, s.keys.Restart):
		return s.dispatch(qz.Restarted{})
	}
	return nil
}

// dispatch applies one event and turns the resulting effect into a command.
func (s *QuizScreen) dispatch(ev qz.Event) tea.Cmd {
	prev := s.state
	next, eff := qz.Step(prev, ev)
	s.state = next
	s.keys.setPhase(next.Phase())
	s.logTransition(prev, next, ev)
	return s.perform(eff)
}

// perform starts the fetch an effect asks for. Every outcome, including
// failure, comes back as an eventMsg tagged with this session and the index
// and visit the fetch was issued for.
func (s *QuizScreen) perform(eff qz.Effect) tea.Cmd {
	switch eff := eff.(type) {
	case qz.FetchQuestion:
		src, session := s.src, s.session
		return func() tea.Msg {
			q, err := src.FetchQuestion(context.Background(), eff.Index)
			if err != nil {
				return eventMsg{Session: session, Event: qz.QuestionFailed{Index: eff.Index, Visit: eff.Visit, Err: err}}
			}
			return eventMsg{Session: session, Event: qz.QuestionLoaded{Index: eff.Index, Visit: eff.Visit, Question: q}}
		}

	case qz.FetchExplanation:
		src, session := s.src, s.session
		return func() tea.Msg {
			text, err := src.FetchExplanation(context.Background(), eff.Index)
			if err != nil {
				return eventMsg{Session: session, Event: qz.ExplanationFailed{Index: eff.Index, Visit: eff.Visit, Err: err}}
			}
			return eventMsg{Session: session, Event: qz.ExplanationLoaded{Index: eff.Index, Visit: eff.Visit, Text: text}}
		}
	}
	return nil
}

func (s *QuizScreen) logTransition(prev, next qz.State, ev qz.Event) {
	switch ev := ev.(type) {
	case qz.QuestionFailed:
		if next.Phase() != qz.PhaseErrored || prev.Phase() == qz.PhaseErrored {
			return
		}
		fields := []zap.Field{zap.Int("index", ev.Index), zap.Error(ev.Err)}
		var nf *source.NotFoundError
		if errors.As(ev.Err, &nf) {
			fields = append(fields, zap.Int("status", nf.Status))
		}
		s.logger.Warn("question fetch failed", fields...)

	case qz.ExplanationFailed:
		if next.HasExplanation && !prev.HasExplanation {
			s.logger.Warn("explanation fetch failed", zap.Int("index", ev.Index), zap.Error(ev.Err))
		}

	case qz.AnswerSubmitted:
		if next.UserAnswer != "" && prev.UserAnswer == "" {
			s.logger.Info("answer recorded",
				zap.Int("index", next.Index),
				zap.String("answer", string(next.UserAnswer)),
				zap.Bool("correct", next.Correct()),
				zap.Int("score", next.Score))
		}

	case qz.Restarted:
		if next.Visit != prev.Visit {
			s.logger.Info("quiz restarted", zap.Int("final_score", prev.Score))
		}

	case qz.QuestionLoaded, qz.ExplanationLoaded:
		if next == prev {
			s.logger.Debug("discarded stale fetch result", zap.Int("index", next.Index))
		}
	}
}
