package cli

import "github.com/alexanderramin/tomato/internal/domain"

// timerState is the TUI's view of the controller. The controller writes
// it through the timer.Presenter methods; View only reads.
type timerState struct {
	phase     domain.Phase
	remaining int
	running   bool

	// justFinished is the phase whose completion is still on screen.
	justFinished domain.Phase
	completions  int
	// bell is set by Notify and taken by the next Update.
	bell bool
}

func (s *timerState) Render(phase domain.Phase, remaining int) {
	s.phase = phase
	s.remaining = remaining
}

func (s *timerState) RunningChanged(running bool) {
	s.running = running
	if running {
		s.justFinished = ""
	}
}

func (s *timerState) Completed(phase domain.Phase) {
	s.justFinished = phase
	s.completions++
}

// Notify asks the model to ring the bell in its next frame.
func (s *timerState) Notify(domain.Phase) {
	s.bell = true
}
