// Package timer implements the pomodoro phase state machine.
//
// A Controller owns one PhaseTimer bound to the current phase. It is not
// safe for concurrent use: every method, and every callback scheduled
// through its sched.Scheduler, must run on the same logical thread.
package timer

import (
	"io"
	"log/slog"
	"time"

	"github.com/alexanderramin/tomato/internal/domain"
	"github.com/alexanderramin/tomato/internal/sched"
)

const (
	DefaultCompletionDelay = 500 * time.Millisecond
	DefaultSkipDelay       = 300 * time.Millisecond
)

// Options holds the collaborators and tunables of a Controller.
// Zero values fall back to no-op collaborators and default delays.
type Options struct {
	Scheduler sched.Scheduler
	Durations *domain.Durations
	Stats     StatsRecorder
	Presenter Presenter
	Notifier  Notifier
	Logger    *slog.Logger

	// AutoChain restarts the countdown for the next phase after a
	// completion or skip. Disabled means the controller idles instead.
	AutoChain       bool
	CompletionDelay time.Duration
	SkipDelay       time.Duration
}

// DefaultOptions returns Options with auto-chaining on and default delays.
func DefaultOptions(s sched.Scheduler) Options {
	return Options{
		Scheduler:       s,
		AutoChain:       true,
		CompletionDelay: DefaultCompletionDelay,
		SkipDelay:       DefaultSkipDelay,
	}
}

// Controller is the Idle(phase)/Running(phase) state machine.
type Controller struct {
	sched     sched.Scheduler
	durations *domain.Durations
	stats     StatsRecorder
	presenter Presenter
	notifier  Notifier
	logger    *slog.Logger
	autoChain bool

	completionDelay time.Duration
	skipDelay       time.Duration

	phase   domain.Phase
	timer   *PhaseTimer
	pending sched.Handle
}

// NewController builds a controller in Idle(work).
func NewController(opts Options) *Controller {
	if opts.Scheduler == nil {
		panic("timer: Options.Scheduler is required")
	}
	c := &Controller{
		sched:           opts.Scheduler,
		durations:       opts.Durations,
		stats:           opts.Stats,
		presenter:       opts.Presenter,
		notifier:        opts.Notifier,
		logger:          opts.Logger,
		autoChain:       opts.AutoChain,
		completionDelay: opts.CompletionDelay,
		skipDelay:       opts.SkipDelay,
		phase:           domain.PhaseWork,
	}
	if c.durations == nil {
		c.durations = domain.DefaultDurations()
	}
	if c.stats == nil {
		c.stats = noopStats{}
	}
	if c.presenter == nil {
		c.presenter = NoopPresenter{}
	}
	if c.notifier == nil {
		c.notifier = NoopNotifier{}
	}
	if c.logger == nil {
		c.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if c.completionDelay < 0 {
		c.completionDelay = 0
	}
	if c.skipDelay < 0 {
		c.skipDelay = 0
	}
	c.timer = NewPhaseTimer(c.sched, c.durations.Total(domain.PhaseWork), c.onTick, c.onExpire)
	return c
}

// Phase returns the current phase.
func (c *Controller) Phase() domain.Phase { return c.phase }

// Running reports whether the countdown is active.
func (c *Controller) Running() bool { return c.timer.Running() }

// Remaining returns the seconds left in the current phase.
func (c *Controller) Remaining() int { return c.timer.Remaining() }

// RemainingFor returns the seconds left for phase. Only the current phase
// has a live countdown; the other phase always sits at its configured total.
func (c *Controller) RemainingFor(phase domain.Phase) int {
	if phase == c.phase {
		return c.timer.Remaining()
	}
	return c.durations.Total(phase)
}

// Durations returns the configured phase lengths.
func (c *Controller) Durations() *domain.Durations { return c.durations }

// AutoRestartPending reports whether an auto-chain restart is scheduled.
func (c *Controller) AutoRestartPending() bool { return c.pending != nil }

// Refresh pushes the full current state to the presenter.
func (c *Controller) Refresh() {
	c.presenter.Render(c.phase, c.timer.Remaining())
	c.presenter.RunningChanged(c.timer.Running())
}

// Toggle starts an idle countdown or pauses a running one. The phase
// never changes.
func (c *Controller) Toggle() {
	c.cancelPending()
	if c.timer.Running() {
		c.timer.Stop()
		c.logger.Debug("toggle", "phase", c.phase, "running", false, "remaining", c.timer.Remaining())
		c.presenter.RunningChanged(false)
		return
	}
	c.start()
}

// Reset force-stops the countdown and returns to Idle(work) with both
// phases at their configured totals.
func (c *Controller) Reset() {
	c.cancelPending()
	wasRunning := c.timer.Running()
	c.timer.Stop()
	c.phase = domain.PhaseWork
	c.resetTimer()
	c.logger.Debug("reset", "was_running", wasRunning)
	c.presenter.Render(c.phase, c.timer.Remaining())
	if wasRunning {
		c.presenter.RunningChanged(false)
	}
}

// SkipToNext ends the current phase early. It counts as a finished
// session and chains into the next phase exactly like a natural
// completion, but without a notification and with a shorter delay.
func (c *Controller) SkipToNext() {
	c.cancelPending()
	finished := c.phase
	wasRunning := c.timer.Running()
	c.timer.Stop()
	if wasRunning {
		c.presenter.RunningChanged(false)
	}
	c.logger.Debug("skip", "phase", finished, "remaining", c.timer.Remaining())
	c.stats.RecordCompletion(finished)
	c.presenter.Completed(finished)
	c.switchPhase()
	c.scheduleRestart(c.skipDelay)
}

// SetDuration validates and stores a new length for phase. An in-flight
// countdown of that phase keeps its remaining time; otherwise the timer
// is reset to the new total when phase is current.
func (c *Controller) SetDuration(phase domain.Phase, minutes, seconds int) error {
	if err := c.durations.Set(phase, minutes, seconds); err != nil {
		return err
	}
	c.logger.Debug("set_duration", "phase", phase, "minutes", minutes, "seconds", seconds)
	if phase != c.phase || c.timer.Running() {
		return nil
	}
	c.resetTimer()
	c.presenter.Render(c.phase, c.timer.Remaining())
	return nil
}

// onTick forwards every countdown step to the presenter.
func (c *Controller) onTick(remaining int) {
	c.presenter.Render(c.phase, remaining)
}

// onExpire handles natural completion. The timer has already stopped.
func (c *Controller) onExpire() {
	finished := c.phase
	c.logger.Debug("complete", "phase", finished)
	c.presenter.RunningChanged(false)
	c.stats.RecordCompletion(finished)
	c.presenter.Completed(finished)
	c.notifier.Notify(finished)
	c.switchPhase()
	c.scheduleRestart(c.completionDelay)
}

func (c *Controller) start() {
	c.timer.Start()
	c.logger.Debug("toggle", "phase", c.phase, "running", true, "remaining", c.timer.Remaining())
	c.presenter.RunningChanged(true)
}

// switchPhase flips to the other phase and loads its configured total.
func (c *Controller) switchPhase() {
	c.phase = c.phase.Next()
	c.resetTimer()
	c.presenter.Render(c.phase, c.timer.Remaining())
}

func (c *Controller) resetTimer() {
	// The timer is always stopped here, so Reset cannot fail.
	_ = c.timer.Reset(c.durations.Total(c.phase))
}

func (c *Controller) scheduleRestart(delay time.Duration) {
	if !c.autoChain {
		return
	}
	var h sched.Handle
	h = c.sched.After(delay, func() {
		if c.pending != h {
			return
		}
		c.pending = nil
		c.logger.Debug("auto_chain", "phase", c.phase)
		c.start()
	})
	c.pending = h
}

func (c *Controller) cancelPending() {
	sched.Cancel(c.pending)
	c.pending = nil
}

type noopStats struct{}

func (noopStats) RecordCompletion(domain.Phase) {}
