// Package sched provides cancellable scheduled tasks for the timer core.
//
// Implementations deliver every callback on a single logical thread, so
// callers never need locks around state touched from a callback. A
// cancelled task never runs, even if its deadline has already passed.
package sched

import "time"

// Handle cancels a scheduled task. Cancel is idempotent.
type Handle interface {
	Cancel()
}

// Scheduler runs fn once after d has elapsed.
type Scheduler interface {
	After(d time.Duration, fn func()) Handle
}

// Cancel is a nil-safe helper for optional handles.
func Cancel(h Handle) {
	if h != nil {
		h.Cancel()
	}
}
