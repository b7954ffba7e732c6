package cli

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/tomato/internal/sched"
	"github.com/alexanderramin/tomato/internal/teatest"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
)

// manualTUI runs scheduler callbacks on Advance instead of through
// tea messages, so tests control every tick.
type manualTUI struct{ *sched.Manual }

func (manualTUI) Flush() tea.Cmd       { return nil }
func (manualTUI) Deliver(tea.Msg) bool { return false }

// TestDriver wraps teatest.Driver with access to the timer model and its
// virtual clock.
type TestDriver struct {
	*teatest.Driver
	Clock *sched.Manual
}

func NewTestDriver(t *testing.T, app *App) *TestDriver {
	t.Helper()
	return NewTestDriverWithOptions(t, app, runOptions{})
}

// NewTestDriverWithOptions builds the model as `tomato run` would with
// the given flags. The caller has already overlaid them on app.Config.
func NewTestDriverWithOptions(t *testing.T, app *App, opts runOptions) *TestDriver {
	t.Helper()
	clock := sched.NewManual()
	m, err := newAppModel(context.Background(), app, manualTUI{clock}, opts)
	require.NoError(t, err)

	d := teatest.New(t, m, teatest.WithSize(80, 30))
	d.DrainInit()
	return &TestDriver{Driver: d, Clock: clock}
}

// Ticks advances virtual time by n tick intervals.
func (d *TestDriver) Ticks(n int) {
	d.Clock.Advance(time.Duration(n) * time.Second)
}

func (d *TestDriver) appModel() appModel {
	return d.Model.(appModel)
}

func (d *TestDriver) State() *timerState { return d.appModel().state }

func (d *TestDriver) Status() string { return d.appModel().status }

func (d *TestDriver) IsQuitting() bool {
	return d.appModel().quitting || d.Quitting
}

func (d *TestDriver) Editing() bool { return d.appModel().edit != nil }
