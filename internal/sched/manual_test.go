package sched

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestManual_RunsInDeadlineOrder(t *testing.T) {
	m := NewManual()
	var got []string
	m.After(2*time.Second, func() { got = append(got, "b") })
	m.After(time.Second, func() { got = append(got, "a") })
	m.After(2*time.Second, func() { got = append(got, "c") })

	m.Advance(1500 * time.Millisecond)
	assert.Equal(t, []string{"a"}, got)

	m.Advance(time.Second)
	assert.Equal(t, []string{"a", "b", "c"}, got)
	assert.Equal(t, 2500*time.Millisecond, m.Now())
	assert.Zero(t, m.Pending())
}

func TestManual_CancelledTaskNeverRuns(t *testing.T) {
	m := NewManual()
	ran := false
	h := m.After(time.Second, func() { ran = true })
	h.Cancel()
	h.Cancel()

	m.Advance(time.Minute)
	assert.False(t, ran)
	assert.Zero(t, m.Pending())
}

func TestManual_ReschedulingWithinWindow(t *testing.T) {
	m := NewManual()
	ticks := 0
	var tick func()
	tick = func() {
		ticks++
		m.After(time.Second, tick)
	}
	m.After(time.Second, tick)

	m.Advance(10 * time.Second)
	assert.Equal(t, 10, ticks)
	assert.Equal(t, 1, m.Pending())
}

func TestCancel_NilHandle(t *testing.T) {
	assert.NotPanics(t, func() { Cancel(nil) })
}
