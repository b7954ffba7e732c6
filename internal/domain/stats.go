package domain

// SessionStats counts completed (or skipped) sessions per phase.
type SessionStats struct {
	WorkSessionsCompleted  int `json:"workSessionsCompleted"`
	BreakSessionsCompleted int `json:"breakSessionsCompleted"`
}

// Count returns the counter for phase.
func (s SessionStats) Count(phase Phase) int {
	if phase == PhaseBreak {
		return s.BreakSessionsCompleted
	}
	return s.WorkSessionsCompleted
}

// Inc increments the counter for phase by one.
func (s *SessionStats) Inc(phase Phase) {
	if phase == PhaseBreak {
		s.BreakSessionsCompleted++
		return
	}
	s.WorkSessionsCompleted++
}

// Valid reports whether both counters are non-negative.
func (s SessionStats) Valid() bool {
	return s.WorkSessionsCompleted >= 0 && s.BreakSessionsCompleted >= 0
}
