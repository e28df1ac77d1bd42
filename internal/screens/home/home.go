package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/verity/internal/router"
	"github.com/abhisek/verity/internal/screen"
	"github.com/abhisek/verity/internal/ui/components"
	"github.com/abhisek/verity/internal/ui/layout"
	"github.com/abhisek/verity/internal/ui/theme"
)

const banner = `__   _____ ___ ___ _______   __
\ \ / / __| _ \_ _|_   _\ \ / /
 \ V /| _||   /| |  | |  \ V /
  \_/ |___|_|_\___| |_|   |_|`

// HomeScreen is the landing screen: a title and a short menu.
type HomeScreen struct {
	menu    components.Menu
	backend string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a HomeScreen. newQuiz builds a fresh quiz session each time
// the player starts one; backend is shown as a hint of where questions come
// from.
func New(newQuiz func() screen.Screen, backend string) *HomeScreen {
	items := []components.MenuItem{
		{Label: "START QUIZ", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: newQuiz()}
			}
		}},
		{Label: "QUIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}
	return &HomeScreen{
		menu:    components.NewMenu(items),
		backend: backend,
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	var sections []string

	if width >= 40 {
		sections = append(sections, theme.Title.Width(width).Render(banner))
	} else {
		sections = append(sections, theme.Title.Width(width).Render("VERITY"))
	}
	sections = append(sections, theme.Subtitle.Width(width).Render("Legit or fake? Trust your gut."))

	menu := theme.Card.Render(strings.TrimRight(h.menu.View(), "\n"))
	sections = append(sections, lipgloss.PlaceHorizontal(width, lipgloss.Center, menu))

	if h.backend != "" {
		sections = append(sections, theme.Hint.Width(width).Align(lipgloss.Center).Render("Questions from "+h.backend))
	}

	content := strings.Join(sections, "\n\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}
