package cli

import (
	"time"

	"github.com/alexanderramin/tomato/internal/sched"
	tea "github.com/charmbracelet/bubbletea"
)

// tuiScheduler is a sched.Scheduler whose callbacks run inside the
// bubbletea Update loop.
type tuiScheduler interface {
	sched.Scheduler
	// Flush returns the commands arming every timer created since the
	// previous call.
	Flush() tea.Cmd
	// Deliver runs the callback msg refers to and reports whether msg
	// belonged to the scheduler.
	Deliver(msg tea.Msg) bool
}

type schedFireMsg struct{ id uint64 }

// teaScheduler turns After into tea.Tick commands. Cancelled ids are
// forgotten, so their ticks arrive as no-ops.
type teaScheduler struct {
	next    uint64
	pending map[uint64]func()
	queued  []tea.Cmd
}

func newTeaScheduler() *teaScheduler {
	return &teaScheduler{pending: map[uint64]func(){}}
}

type teaHandle struct {
	s  *teaScheduler
	id uint64
}

func (h teaHandle) Cancel() { delete(h.s.pending, h.id) }

func (s *teaScheduler) After(d time.Duration, fn func()) sched.Handle {
	s.next++
	id := s.next
	s.pending[id] = fn
	s.queued = append(s.queued, tea.Tick(d, func(time.Time) tea.Msg {
		return schedFireMsg{id: id}
	}))
	return teaHandle{s: s, id: id}
}

func (s *teaScheduler) Flush() tea.Cmd {
	if len(s.queued) == 0 {
		return nil
	}
	cmds := s.queued
	s.queued = nil
	return tea.Batch(cmds...)
}

func (s *teaScheduler) Deliver(msg tea.Msg) bool {
	fire, ok := msg.(schedFireMsg)
	if !ok {
		return false
	}
	if fn, live := s.pending[fire.id]; live {
		delete(s.pending, fire.id)
		fn()
	}
	return true
}
