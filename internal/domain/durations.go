package domain

import (
	"errors"
	"fmt"
)

const (
	MaxMinutes = 60
	MaxSeconds = 59
)

// ErrInvalidDuration is matched by every ValidationError.
var ErrInvalidDuration = errors.New("invalid duration")

// ValidationError reports a rejected (minutes, seconds) pair for a phase.
type ValidationError struct {
	Phase   Phase
	Minutes int
	Seconds int
	Reason  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s duration %d:%02d: %s", e.Phase, e.Minutes, e.Seconds, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidDuration }

// PhaseConfig is the configured target length of one phase.
type PhaseConfig struct {
	Minutes int
	Seconds int
}

// TotalSeconds returns the configured length in whole seconds.
func (c PhaseConfig) TotalSeconds() int {
	return c.Minutes*60 + c.Seconds
}

// ValidateDuration checks the 0-60 minute, 0-59 second range and the
// one-second minimum total.
func ValidateDuration(phase Phase, minutes, seconds int) error {
	fail := func(reason string) error {
		return &ValidationError{Phase: phase, Minutes: minutes, Seconds: seconds, Reason: reason}
	}
	if !phase.Valid() {
		return fail("unknown phase")
	}
	if minutes < 0 || minutes > MaxMinutes {
		return fail(fmt.Sprintf("minutes must be between 0 and %d", MaxMinutes))
	}
	if seconds < 0 || seconds > MaxSeconds {
		return fail(fmt.Sprintf("seconds must be between 0 and %d", MaxSeconds))
	}
	if minutes*60+seconds < 1 {
		return fail("total must be at least one second")
	}
	return nil
}

// Durations holds the PhaseConfig of both phases. It is only mutated
// through Set, which validates before writing.
type Durations struct {
	work PhaseConfig
	brk  PhaseConfig
}

// DefaultDurations returns the classic 25/5 split.
func DefaultDurations() *Durations {
	return &Durations{
		work: PhaseConfig{Minutes: 25},
		brk:  PhaseConfig{Minutes: 5},
	}
}

// NewDurations validates both configs before building a Durations.
func NewDurations(work, brk PhaseConfig) (*Durations, error) {
	d := &Durations{}
	if err := d.Set(PhaseWork, work.Minutes, work.Seconds); err != nil {
		return nil, err
	}
	if err := d.Set(PhaseBreak, brk.Minutes, brk.Seconds); err != nil {
		return nil, err
	}
	return d, nil
}

// Get returns the config for phase.
func (d *Durations) Get(phase Phase) PhaseConfig {
	if phase == PhaseBreak {
		return d.brk
	}
	return d.work
}

// Total returns the configured length of phase in seconds.
func (d *Durations) Total(phase Phase) int {
	return d.Get(phase).TotalSeconds()
}

// Set replaces the config of phase. Invalid input leaves d untouched.
func (d *Durations) Set(phase Phase, minutes, seconds int) error {
	if err := ValidateDuration(phase, minutes, seconds); err != nil {
		return err
	}
	cfg := PhaseConfig{Minutes: minutes, Seconds: seconds}
	if phase == PhaseBreak {
		d.brk = cfg
	} else {
		d.work = cfg
	}
	return nil
}
