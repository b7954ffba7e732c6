package sched

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startLoop(t *testing.T, clock clockwork.Clock) *Loop {
	t.Helper()
	l := NewLoop(clock)
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- l.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		<-errCh
	})
	return l
}

func TestLoop_PostRunsOnLoop(t *testing.T) {
	l := startLoop(t, clockwork.NewFakeClock())

	done := make(chan struct{})
	require.NoError(t, l.Post(func() { close(done) }))

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("posted func did not run")
	}
}

func TestLoop_AfterFiresOnClockAdvance(t *testing.T) {
	clock := clockwork.NewFakeClock()
	l := startLoop(t, clock)

	var fired atomic.Int32
	require.NoError(t, l.Post(func() {
		l.After(time.Second, func() { fired.Add(1) })
	}))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, clock.BlockUntilContext(ctx, 1))

	clock.Advance(time.Second)
	assert.Eventually(t, func() bool { return fired.Load() == 1 }, time.Second, time.Millisecond)
}

func TestLoop_CancelBeforeFire(t *testing.T) {
	clock := clockwork.NewFakeClock()
	l := startLoop(t, clock)

	var fired atomic.Int32
	cancelled := make(chan struct{})
	require.NoError(t, l.Post(func() {
		h := l.After(time.Second, func() { fired.Add(1) })
		h.Cancel()
		close(cancelled)
	}))
	<-cancelled

	clock.Advance(2 * time.Second)

	// A follow-up post runs after anything the advance could have queued.
	flushed := make(chan struct{})
	require.NoError(t, l.Post(func() { close(flushed) }))
	<-flushed
	assert.Zero(t, fired.Load())
}

func TestLoop_PostAfterStop(t *testing.T) {
	l := NewLoop(clockwork.NewFakeClock())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, l.Run(ctx), context.Canceled)
	assert.ErrorIs(t, l.Post(func() {}), ErrLoopStopped)
}
