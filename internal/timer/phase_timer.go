package timer

import (
	"errors"
	"time"

	"github.com/alexanderramin/tomato/internal/sched"
)

// TickInterval is the fixed period of the countdown.
const TickInterval = time.Second

// ErrTimerRunning is returned by Reset while the countdown is active.
var ErrTimerRunning = errors.New("timer is running")

// PhaseTimer is the single countdown clock. At most one tick is scheduled
// at any time; Stop cancels it synchronously.
type PhaseTimer struct {
	sched     sched.Scheduler
	remaining int
	running   bool
	handle    sched.Handle
	gen       uint64

	onTick   func(remaining int)
	onExpire func()
}

// NewPhaseTimer creates a stopped timer holding total seconds.
// onTick sees every tick outcome; onExpire fires once when a tick
// observes zero remaining.
func NewPhaseTimer(s sched.Scheduler, total int, onTick func(int), onExpire func()) *PhaseTimer {
	if onTick == nil {
		onTick = func(int) {}
	}
	if onExpire == nil {
		onExpire = func() {}
	}
	return &PhaseTimer{sched: s, remaining: total, onTick: onTick, onExpire: onExpire}
}

func (t *PhaseTimer) Remaining() int { return t.remaining }
func (t *PhaseTimer) Running() bool  { return t.running }

// Start begins ticking. It is a no-op if already running.
func (t *PhaseTimer) Start() {
	if t.running {
		return
	}
	sched.Cancel(t.handle)
	t.running = true
	t.arm()
}

// Stop halts ticking. It is a no-op if not running.
func (t *PhaseTimer) Stop() {
	if !t.running {
		return
	}
	t.running = false
	t.disarm()
}

// Reset sets the remaining time. The timer must be stopped first.
func (t *PhaseTimer) Reset(total int) error {
	if t.running {
		return ErrTimerRunning
	}
	t.remaining = total
	return nil
}

// Tick performs one countdown step. Ticks arriving while stopped are ignored.
func (t *PhaseTimer) Tick() {
	if !t.running {
		return
	}
	if t.remaining > 0 {
		t.remaining--
		t.arm()
		t.onTick(t.remaining)
		return
	}
	t.Stop()
	t.onTick(t.remaining)
	t.onExpire()
}

func (t *PhaseTimer) arm() {
	t.disarm()
	gen := t.gen
	t.handle = t.sched.After(TickInterval, func() {
		if gen != t.gen {
			return
		}
		t.Tick()
	})
}

// disarm cancels the scheduled tick and invalidates any callback that
// has already been dequeued by the scheduler.
func (t *PhaseTimer) disarm() {
	sched.Cancel(t.handle)
	t.handle = nil
	t.gen++
}
