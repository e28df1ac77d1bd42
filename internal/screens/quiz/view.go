package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	qz "github.com/abhisek/verity/internal/quiz"
	"github.com/abhisek/verity/internal/ui/theme"
)

func (s *QuizScreen) View(width, height int) string {
	switch s.state.Phase() {
	case qz.PhaseErrored:
		return renderError(width, s.state.Err)
	case qz.PhaseLoading:
		return s.renderLoading(width)
	}
	return s.renderQuestion(width)
}

func scoreLine(score int) string {
	return fmt.Sprintf("Score %d", score)
}

func centered(width int, style lipgloss.Style, text string) string {
	return style.Width(width).Align(lipgloss.Center).Render(text)
}

func (s *QuizScreen) renderLoading(width int) string {
	return centered(width, lipgloss.NewStyle().Foreground(theme.TextDim),
		fmt.Sprintf("\n\n\n%s Loading question %d...", s.spinner.View(), s.state.Number()))
}

func renderError(width int, errMsg string) string {
	body := lipgloss.NewStyle().Foreground(theme.Error).Bold(true).Render("Something went wrong") +
		"\n\n" +
		lipgloss.NewStyle().Foreground(theme.Text).Render(errMsg) +
		"\n\n" +
		theme.Hint.Render("Press Enter or R to restart from the first question.")

	card := theme.ErrorCard.Width(min(width-8, 70)).Render(body)
	return "\n\n" + lipgloss.PlaceHorizontal(width, lipgloss.Center, card)
}

// renderQuestion renders the question card and, once answered, the result
// with the explanation.
func (s *QuizScreen) renderQuestion(width int) string {
	state := s.state
	q := state.Question
	cardWidth := min(width-8, 70)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centered(width, lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true),
		fmt.Sprintf("Question %d", state.Number())))
	b.WriteString("\n\n")

	card := theme.Card.Width(cardWidth).Render(theme.Body.Bold(true).Render(q.Text))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, card))
	b.WriteString("\n\n")

	if state.Phase() == qz.PhaseReady {
		choices := theme.LegitKey.Render("[L] Legit") + "    " + theme.FakeKey.Render("[F] Fake")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, choices))
		return b.String()
	}

	b.WriteString(s.renderResult(width, cardWidth))
	return b.String()
}

func (s *QuizScreen) renderResult(width, cardWidth int) string {
	state := s.state
	q := state.Question

	var b strings.Builder
	if state.Correct() {
		b.WriteString(centered(width, theme.Correct, "Correct!"))
	} else {
		b.WriteString(centered(width, theme.Incorrect, "Not quite"))
	}
	b.WriteString("\n")
	b.WriteString(centered(width, lipgloss.NewStyle().Foreground(theme.TextDim),
		fmt.Sprintf("You said %s. The answer is %s.",
			state.UserAnswer.Label(), qz.NormalizeAnswer(q.Answer).Label())))
	b.WriteString("\n\n")

	var details []string
	if q.Reason != "" {
		details = append(details, theme.Hint.Render("Reason: ")+theme.Body.Render(q.Reason))
	}
	switch {
	case state.ExplanationLoading:
		details = append(details, s.spinner.View()+" "+theme.Hint.Render("Loading explanation..."))
	case state.HasExplanation && state.Explanation == qz.ExplanationFailedText:
		details = append(details, lipgloss.NewStyle().Foreground(theme.Error).Render(state.Explanation))
	case state.HasExplanation:
		details = append(details, theme.Body.Render(state.Explanation))
	}
	if len(details) > 0 {
		block := lipgloss.NewStyle().Width(cardWidth).Render(strings.Join(details, "\n\n"))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, block))
		b.WriteString("\n\n")
	}

	b.WriteString(centered(width, theme.Hint, "Press Enter for the next question"))
	return b.String()
}
