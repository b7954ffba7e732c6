package timer

import (
	"time"

	"github.com/alexanderramin/tomato/internal/domain"
	"github.com/alexanderramin/tomato/internal/sched"
)

type renderCall struct {
	phase     domain.Phase
	remaining int
}

type recordingPresenter struct {
	renders   []renderCall
	running   []bool
	completed []domain.Phase
}

func (p *recordingPresenter) Render(phase domain.Phase, remaining int) {
	p.renders = append(p.renders, renderCall{phase, remaining})
}
func (p *recordingPresenter) RunningChanged(running bool) { p.running = append(p.running, running) }
func (p *recordingPresenter) Completed(phase domain.Phase) {
	p.completed = append(p.completed, phase)
}

func (p *recordingPresenter) lastRender() renderCall {
	if len(p.renders) == 0 {
		return renderCall{}
	}
	return p.renders[len(p.renders)-1]
}

type recordingNotifier struct {
	notified []domain.Phase
}

func (n *recordingNotifier) Notify(phase domain.Phase) { n.notified = append(n.notified, phase) }

type countingStats struct {
	stats domain.SessionStats
	calls []domain.Phase
}

func (s *countingStats) RecordCompletion(phase domain.Phase) {
	s.stats.Inc(phase)
	s.calls = append(s.calls, phase)
}

type harness struct {
	clock     *sched.Manual
	ctrl      *Controller
	presenter *recordingPresenter
	notifier  *recordingNotifier
	stats     *countingStats
}

func newHarness(durations *domain.Durations) *harness {
	h := &harness{
		clock:     sched.NewManual(),
		presenter: &recordingPresenter{},
		notifier:  &recordingNotifier{},
		stats:     &countingStats{},
	}
	opts := DefaultOptions(h.clock)
	opts.Durations = durations
	opts.Presenter = h.presenter
	opts.Notifier = h.notifier
	opts.Stats = h.stats
	h.ctrl = NewController(opts)
	return h
}

func (h *harness) ticks(n int) {
	h.clock.Advance(time.Duration(n) * TickInterval)
}

func shortDurations(workSec, breakSec int) *domain.Durations {
	d, err := domain.NewDurations(
		domain.PhaseConfig{Minutes: workSec / 60, Seconds: workSec % 60},
		domain.PhaseConfig{Minutes: breakSec / 60, Seconds: breakSec % 60},
	)
	if err != nil {
		panic(err)
	}
	return d
}
