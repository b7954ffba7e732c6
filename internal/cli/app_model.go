package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/tomato/internal/cli/formatter"
	"github.com/alexanderramin/tomato/internal/config"
	"github.com/alexanderramin/tomato/internal/domain"
	"github.com/alexanderramin/tomato/internal/timer"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

const quitGuardText = "Timer is running. Press q again to quit."

type configReloadedMsg struct{ cfg *config.Config }

// appModel is the root bubbletea Model. It is the presentation adapter
// between key presses and the controller; every controller call and
// every scheduler callback happens inside Update.
type appModel struct {
	app     *App
	ctx     context.Context
	sched   tuiScheduler
	session *session
	state   *timerState

	keys   keyMap
	help   help.Model
	bar    progress.Model
	theme  domain.Theme
	styles formatter.Styles
	width  int

	opts        runOptions
	edit        *durationEdit
	confirmQuit bool
	quitting    bool
	status      string
	// ring emits a bell with the frame rendered after this Update.
	ring bool
}

func newAppModel(ctx context.Context, app *App, s tuiScheduler, opts runOptions) (appModel, error) {
	state := &timerState{}
	var extra []timer.Notifier
	if app.Bell {
		extra = append(extra, state)
	}
	sess, err := newSession(ctx, app, s, state, extra...)
	if err != nil {
		return appModel{}, err
	}
	theme := domain.ThemeLight
	if app.Prefs != nil {
		theme = app.Prefs.Theme(ctx)
	}

	m := appModel{
		app:     app,
		ctx:     ctx,
		sched:   s,
		session: sess,
		state:   state,
		opts:    opts,
		keys:    defaultKeyMap(),
		help:    help.New(),
		bar:     progress.New(progress.WithSolidFill(string(formatter.PaletteFor(theme).Work)), progress.WithoutPercentage()),
		width:   60,
	}
	m.bar.Width = 40
	m.setTheme(theme)
	sess.ctrl.Refresh()
	if opts.start {
		sess.ctrl.Toggle()
	}
	return m, nil
}

func (m *appModel) setTheme(t domain.Theme) {
	m.theme = t
	m.styles = formatter.NewStyles(t)
	m.help.Styles.ShortKey = m.styles.Fg
	m.help.Styles.ShortDesc = m.styles.Dim
	m.help.Styles.FullKey = m.styles.Fg
	m.help.Styles.FullDesc = m.styles.Dim
	m.bar.EmptyColor = string(m.styles.Palette.Dim)
}

// ── bubbletea interface ──────────────────────────────────────────────────────

func (m appModel) Init() tea.Cmd {
	return m.sched.Flush()
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m.ring = false
	var cmd tea.Cmd
	if !m.sched.Deliver(msg) {
		m, cmd = m.route(msg)
	}
	if m.state.bell {
		m.state.bell = false
		m.ring = true
	}
	return m, tea.Batch(cmd, m.sched.Flush())
}

func (m appModel) route(msg tea.Msg) (appModel, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		m.bar.Width = min(max(msg.Width-12, 10), 60)

	case configReloadedMsg:
		m.opts.overlay(msg.cfg)
		if err := m.session.applyConfig(msg.cfg); err != nil {
			m.status = "Config reload rejected: " + err.Error()
		} else {
			m.status = "Config reloaded."
		}

	case tea.KeyMsg:
		m, cmd = m.handleKey(msg)

	default:
		if m.edit != nil {
			m, cmd = m.updateEdit(msg)
		}
	}
	return m, cmd
}

func (m appModel) handleKey(msg tea.KeyMsg) (appModel, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		m.quitting = true
		return m, tea.Quit
	}
	if m.edit != nil {
		return m.updateEdit(msg)
	}

	if key.Matches(msg, m.keys.Quit) {
		if m.countdownActive() && !m.confirmQuit {
			m.confirmQuit = true
			m.status = quitGuardText
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit
	}
	m.confirmQuit = false
	m.status = ""

	ctrl := m.session.ctrl
	switch {
	case key.Matches(msg, m.keys.Toggle):
		ctrl.Toggle()
	case key.Matches(msg, m.keys.Reset):
		ctrl.Reset()
	case key.Matches(msg, m.keys.Skip):
		ctrl.SkipToNext()
	case key.Matches(msg, m.keys.EditWork):
		return m.openEdit(domain.PhaseWork)
	case key.Matches(msg, m.keys.EditBreak):
		return m.openEdit(domain.PhaseBreak)
	case key.Matches(msg, m.keys.Theme):
		m.toggleTheme()
	case key.Matches(msg, m.keys.ToggleHelp):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m appModel) openEdit(phase domain.Phase) (appModel, tea.Cmd) {
	m.edit = newDurationEdit(phase, m.session.ctrl.Durations().Get(phase), m.styles)
	return m, m.edit.form.Init()
}

func (m appModel) updateEdit(msg tea.Msg) (appModel, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.Type == tea.KeyEsc {
		m.edit = nil
		m.status = "Edit cancelled."
		return m, nil
	}

	form, cmd := m.edit.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.edit.form = f
	}

	switch m.edit.form.State {
	case huh.StateCompleted:
		return m.commitEdit(), nil
	case huh.StateAborted:
		m.edit = nil
		return m, nil
	}
	return m, cmd
}

// commitEdit applies the submitted form and closes it.
func (m appModel) commitEdit() appModel {
	phase := m.edit.phase
	if err := applyDurationEdit(m.session, phase, m.edit.fields); err != nil {
		m.status = "Not saved: " + err.Error()
	} else {
		m.status = fmt.Sprintf("%s timer set to %s.", formatter.PhaseTitle(phase),
			formatter.FormatClock(m.session.ctrl.Durations().Total(phase)))
	}
	m.edit = nil
	return m
}

// countdownActive is true while ticking and during the auto-chain gap
// before the next phase starts.
func (m appModel) countdownActive() bool {
	return m.state.running || m.session.ctrl.AutoRestartPending()
}

func (m *appModel) toggleTheme() {
	next := m.theme.Toggle()
	if m.app.Prefs != nil {
		var err error
		next, err = m.app.Prefs.ToggleTheme(m.ctx)
		if err != nil {
			m.app.logger().Warn("theme persist failed", "theme", next, "error", err)
		}
	}
	m.setTheme(next)
}

// ── rendering ────────────────────────────────────────────────────────────────

func (m appModel) View() string {
	if m.quitting {
		return ""
	}
	if m.edit != nil {
		return m.styles.RenderBox(formatter.EditTitle(m.edit.phase), m.edit.form.View()) + "\n"
	}

	s := m.styles
	st := m.state
	ctrl := m.session.ctrl

	var b strings.Builder

	status := "paused"
	if st.running {
		status = "running"
	} else if ctrl.AutoRestartPending() {
		status = "starting…"
	}
	b.WriteString(s.PhaseStyle(st.phase).Render(formatter.PhaseTitle(st.phase)))
	b.WriteString("  " + s.Dim.Render(status) + "\n\n")

	b.WriteString(s.Bold.Render(formatter.FormatClock(st.remaining)) + "\n")

	bar := m.bar
	bar.FullColor = string(s.PhaseColor(st.phase))
	b.WriteString(bar.ViewAs(formatter.Elapsed(st.remaining, ctrl.Durations().Total(st.phase))) + "\n\n")

	other := st.phase.Next()
	b.WriteString(s.Dim.Render(fmt.Sprintf("Next: %s %s", formatter.PhaseTitle(other),
		formatter.FormatClock(ctrl.RemainingFor(other)))) + "\n")
	b.WriteString(s.Dim.Render("Completed: "+formatter.FormatStatsLine(m.session.recorder.Stats())) + "\n")

	if st.justFinished != "" {
		b.WriteString("\n" + s.PhaseStyle(st.justFinished).Render("✓ "+formatter.PhaseTitle(st.justFinished)+" session complete") + "\n")
	}
	if m.status != "" {
		b.WriteString("\n" + s.Warn.Render(m.status) + "\n")
	}

	box := s.RenderBox("Pomodoro Timer", b.String())
	out := lipgloss.JoinVertical(lipgloss.Left, box, m.help.View(m.keys)) + "\n"
	if m.ring {
		out = "\a" + out
	}
	return out
}
