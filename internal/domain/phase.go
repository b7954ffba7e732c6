package domain

import "fmt"

type Phase string

const (
	PhaseWork  Phase = "work"
	PhaseBreak Phase = "break"
)

// Phases lists every phase in display order.
var Phases = []Phase{PhaseWork, PhaseBreak}

// Next returns the phase that follows p in the work/break alternation.
func (p Phase) Next() Phase {
	if p == PhaseWork {
		return PhaseBreak
	}
	return PhaseWork
}

func (p Phase) Valid() bool {
	return p == PhaseWork || p == PhaseBreak
}

// ParsePhase accepts "work" or "break" (and the short forms "w" and "b").
func ParsePhase(s string) (Phase, error) {
	switch s {
	case "work", "w":
		return PhaseWork, nil
	case "break", "b":
		return PhaseBreak, nil
	}
	return "", fmt.Errorf("unknown phase %q (want work or break)", s)
}
