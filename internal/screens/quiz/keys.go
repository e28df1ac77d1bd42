package quiz

import (
	"charm.land/bubbles/v2/key"

	qz "github.com/abhisek/verity/internal/quiz"
	"github.com/abhisek/verity/internal/ui/layout"
)

// keyMap holds the quiz bindings. Only the bindings valid for the current
// phase are enabled, so matching and footer hints follow the phase.
type keyMap struct {
	Legit   key.Binding
	Fake    key.Binding
	Next    key.Binding
	Restart key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Legit: key.NewBinding(
			key.WithKeys("l", "1"),
			key.WithHelp("L", "Legit"),
		),
		Fake: key.NewBinding(
			key.WithKeys("f", "2"),
			key.WithHelp("F", "Fake"),
		),
		Next: key.NewBinding(
			key.WithKeys("enter", "n"),
			key.WithHelp("Enter", "Next question"),
		),
		Restart: key.NewBinding(
			key.WithKeys("enter", "r"),
			key.WithHelp("Enter", "Restart"),
		),
	}
}

// setPhase enables the bindings that apply in p.
func (k *keyMap) setPhase(p qz.Phase) {
	k.Legit.SetEnabled(p == qz.PhaseReady)
	k.Fake.SetEnabled(p == qz.PhaseReady)
	k.Next.SetEnabled(p == qz.PhaseAnswered)
	k.Restart.SetEnabled(p == qz.PhaseErrored)
}

func (k keyMap) hints() []layout.KeyHint {
	var hints []layout.KeyHint
	for _, b := range []key.Binding{k.Legit, k.Fake, k.Next, k.Restart} {
		if !b.Enabled() {
			continue
		}
		h := b.Help()
		hints = append(hints, layout.KeyHint{Key: h.Key, Description: h.Desc})
	}
	return append(hints,
		layout.KeyHint{Key: "Esc", Description: "Home"},
		layout.KeyHint{Key: "Ctrl+C", Description: "Quit"},
	)
}
