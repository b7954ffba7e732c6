package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alexanderramin/tomato/internal/cli/formatter"
	"github.com/alexanderramin/tomato/internal/config"
	"github.com/alexanderramin/tomato/internal/domain"
	"github.com/alexanderramin/tomato/internal/notify"
	"github.com/alexanderramin/tomato/internal/sched"
)

const headlessHelp = `commands:
  t            start or pause
  r            reset to work
  s            skip to the next phase
  e PHASE M S  set a phase length, e.g. "e work 25 0"
  p            print status
  theme        toggle the theme
  q            quit
`

// linePresenter prints controller transitions as one line each. Ticks
// are printed on whole minutes only.
type linePresenter struct {
	w       io.Writer
	phase   domain.Phase
	running bool
}

func (p *linePresenter) line(event string, phase domain.Phase, remaining int) {
	fmt.Fprintf(p.w, "%-8s %-5s %s\n", event, phase, formatter.FormatClock(remaining))
}

func (p *linePresenter) Render(phase domain.Phase, remaining int) {
	switch {
	case phase != p.phase:
		p.phase = phase
		p.line("phase", phase, remaining)
	case !p.running:
		p.line("set", phase, remaining)
	case remaining > 0 && remaining%60 == 0:
		p.line("tick", phase, remaining)
	}
}

func (p *linePresenter) RunningChanged(running bool) {
	p.running = running
	event := "paused"
	if running {
		event = "running"
	}
	fmt.Fprintf(p.w, "%-8s %s\n", event, p.phase)
}

func (p *linePresenter) Completed(phase domain.Phase) {
	fmt.Fprintf(p.w, "%-8s %s\n", "complete", phase)
}

type headlessRunner struct {
	ctx  context.Context
	app  *App
	sess *session
	out  io.Writer
}

// runHeadless drives a session from line commands on app.In. Everything
// the controller does runs on a sched.Loop goroutine.
func runHeadless(ctx context.Context, app *App, out io.Writer, opts runOptions) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	loop := sched.NewLoop(app.Clock)
	pres := &linePresenter{w: out, phase: domain.PhaseWork}
	senders := []notify.Sender{notify.NewLine(out)}
	if app.Bell {
		senders = append(senders, notify.NewBell(out))
	}
	sess, err := newSession(ctx, app, loop, pres, notify.New(app.logger(), senders...))
	if err != nil {
		return err
	}
	h := &headlessRunner{ctx: ctx, app: app, sess: sess, out: out}

	stop := watchConfig(ctx, app, func(cfg *config.Config) {
		_ = loop.Post(func() {
			opts.overlay(cfg)
			if err := sess.applyConfig(cfg); err != nil {
				fmt.Fprintf(out, "config rejected: %v\n", err)
				return
			}
			fmt.Fprintln(out, "config reloaded")
		})
	})
	defer stop()

	_ = loop.Post(func() {
		h.status()
		if opts.start {
			sess.ctrl.Toggle()
		}
	})

	go func() {
		scanner := bufio.NewScanner(app.stdin())
		for scanner.Scan() {
			line := scanner.Text()
			if err := loop.Post(func() {
				if h.exec(line) {
					cancel()
				}
			}); err != nil {
				return
			}
		}
	}()

	if err := loop.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// exec runs one command and reports whether the runner should stop.
func (h *headlessRunner) exec(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	ctrl := h.sess.ctrl
	switch strings.ToLower(fields[0]) {
	case "t", "toggle":
		ctrl.Toggle()
	case "r", "reset":
		ctrl.Reset()
	case "s", "n", "skip":
		ctrl.SkipToNext()
	case "e", "edit":
		if err := h.edit(fields[1:]); err != nil {
			fmt.Fprintf(h.out, "error: %v\n", err)
		}
	case "p", "status":
		h.status()
	case "theme":
		h.toggleTheme()
	case "q", "quit", "exit":
		fmt.Fprintln(h.out, "bye")
		return true
	case "?", "h", "help":
		fmt.Fprint(h.out, headlessHelp)
	default:
		fmt.Fprintf(h.out, "unknown command %q (try help)\n", fields[0])
	}
	return false
}

func (h *headlessRunner) edit(args []string) error {
	if len(args) != 3 {
		return errors.New("usage: e PHASE MINUTES SECONDS")
	}
	phase, err := domain.ParsePhase(args[0])
	if err != nil {
		return err
	}
	minutes, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("minutes %q: %w", args[1], domain.ErrInvalidDuration)
	}
	seconds, err := strconv.Atoi(args[2])
	if err != nil {
		return fmt.Errorf("seconds %q: %w", args[2], domain.ErrInvalidDuration)
	}
	return h.sess.setDuration(phase, minutes, seconds)
}

func (h *headlessRunner) status() {
	ctrl := h.sess.ctrl
	state := "idle"
	if ctrl.Running() {
		state = "running"
	}
	s := h.sess.recorder.Stats()
	done := formatter.Elapsed(ctrl.Remaining(), ctrl.Durations().Total(ctrl.Phase()))
	fmt.Fprintf(h.out, "status   %-5s %s %s (work %d, break %d) %s\n",
		ctrl.Phase(), formatter.FormatClock(ctrl.Remaining()), state,
		s.WorkSessionsCompleted, s.BreakSessionsCompleted,
		formatter.RenderProgress(done, 20))
}

func (h *headlessRunner) toggleTheme() {
	if h.app.Prefs == nil {
		return
	}
	t, err := h.app.Prefs.ToggleTheme(h.ctx)
	if err != nil {
		h.app.logger().Warn("theme persist failed", "theme", t, "error", err)
	}
	fmt.Fprintf(h.out, "theme    %s\n", t)
}
