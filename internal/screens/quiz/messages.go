package quiz

import qz "github.com/abhisek/verity/internal/quiz"

// eventMsg carries a fetch result back into Update as a state machine event.
// Session names the screen that issued the fetch; results reaching a
// different screen are dropped.
type eventMsg struct {
	Session string
	Event   qz.Event
}
