package sched

import (
	"context"
	"errors"
	"time"

	"github.com/jonboulle/clockwork"
)

// ErrLoopStopped is returned by Post once the loop has exited.
var ErrLoopStopped = errors.New("event loop stopped")

// Loop is a single-goroutine event loop. Timer fires and posted actions
// are queued and executed one at a time by Run, which makes Loop the
// logical thread for everything scheduled through it.
//
// After must be called from the loop goroutine (or before Run starts);
// Post is safe from any goroutine.
type Loop struct {
	clock  clockwork.Clock
	events chan func()
	done   chan struct{}
}

// NewLoop creates a Loop driven by clock. A nil clock uses the real clock.
func NewLoop(clock clockwork.Clock) *Loop {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Loop{
		clock:  clock,
		events: make(chan func(), 64),
		done:   make(chan struct{}),
	}
}

type loopTask struct {
	timer     clockwork.Timer
	cancelled bool
}

func (t *loopTask) Cancel() {
	t.cancelled = true
	t.timer.Stop()
}

func (l *Loop) After(d time.Duration, fn func()) Handle {
	t := &loopTask{}
	t.timer = l.clock.AfterFunc(d, func() {
		// The timer goroutine only enqueues; the cancelled flag is read on
		// the loop goroutine, the same one that sets it.
		_ = l.Post(func() {
			if !t.cancelled {
				fn()
			}
		})
	})
	return t
}

// Post queues fn to run on the loop goroutine.
func (l *Loop) Post(fn func()) error {
	select {
	case <-l.done:
		return ErrLoopStopped
	default:
	}
	select {
	case l.events <- fn:
		return nil
	case <-l.done:
		return ErrLoopStopped
	}
}

// Run executes queued work until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	defer close(l.done)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-l.events:
			fn()
		}
	}
}
