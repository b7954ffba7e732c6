package sched

import (
	"sort"
	"time"
)

// Manual is a virtual-time Scheduler. Nothing runs until Advance is
// called; callbacks then run synchronously on the caller's goroutine in
// deadline order. It is meant for tests and deterministic replays.
type Manual struct {
	now   time.Duration
	seq   uint64
	tasks []*manualTask
}

type manualTask struct {
	due       time.Duration
	seq       uint64
	fn        func()
	cancelled bool
}

func (t *manualTask) Cancel() { t.cancelled = true }

// NewManual returns a Manual scheduler at virtual time zero.
func NewManual() *Manual {
	return &Manual{}
}

func (m *Manual) After(d time.Duration, fn func()) Handle {
	if d < 0 {
		d = 0
	}
	m.seq++
	t := &manualTask{due: m.now + d, seq: m.seq, fn: fn}
	m.tasks = append(m.tasks, t)
	return t
}

// Advance moves virtual time forward by d, running every task that falls
// due, including tasks scheduled by callbacks within the window.
func (m *Manual) Advance(d time.Duration) {
	target := m.now + d
	for {
		t := m.popDue(target)
		if t == nil {
			break
		}
		m.now = t.due
		t.fn()
	}
	m.now = target
}

// Now returns the elapsed virtual time.
func (m *Manual) Now() time.Duration {
	return m.now
}

// Pending returns the number of tasks that are scheduled and not cancelled.
func (m *Manual) Pending() int {
	n := 0
	for _, t := range m.tasks {
		if !t.cancelled {
			n++
		}
	}
	return n
}

func (m *Manual) popDue(target time.Duration) *manualTask {
	live := m.tasks[:0]
	for _, t := range m.tasks {
		if !t.cancelled {
			live = append(live, t)
		}
	}
	m.tasks = live
	if len(m.tasks) == 0 {
		return nil
	}
	sort.SliceStable(m.tasks, func(i, j int) bool {
		if m.tasks[i].due != m.tasks[j].due {
			return m.tasks[i].due < m.tasks[j].due
		}
		return m.tasks[i].seq < m.tasks[j].seq
	})
	first := m.tasks[0]
	if first.due > target {
		return nil
	}
	m.tasks = m.tasks[1:]
	return first
}
