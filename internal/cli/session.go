package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/tomato/internal/config"
	"github.com/alexanderramin/tomato/internal/domain"
	"github.com/alexanderramin/tomato/internal/metrics"
	"github.com/alexanderramin/tomato/internal/sched"
	"github.com/alexanderramin/tomato/internal/stats"
	"github.com/alexanderramin/tomato/internal/timer"
)

// session is one running timer: the controller plus the recorder that
// owns its counters.
type session struct {
	ctrl     *timer.Controller
	recorder *stats.Recorder
	metrics  *metrics.PrometheusRecorder

	// applied holds the phase lengths last taken from config, run flags
	// included. Reloads are diffed against it, not against the controller.
	applied map[domain.Phase]config.PhaseDuration
}

// newSession wires a controller on s that renders into p. Extra notifiers
// run after the app-level one.
func newSession(ctx context.Context, app *App, s sched.Scheduler, p timer.Presenter, extra ...timer.Notifier) (*session, error) {
	cfg := app.config()
	durations, err := cfg.Durations()
	if err != nil {
		return nil, fmt.Errorf("building durations: %w", err)
	}

	logger := app.logger()
	opts := []stats.Option{stats.WithLogger(logger)}
	if app.Metrics != nil {
		opts = append(opts, stats.WithHook(app.Metrics.ObserveCompletion))
		if cfg.MetricsTextfile != "" {
			path := cfg.MetricsTextfile
			opts = append(opts, stats.WithHook(func(domain.Phase, domain.SessionStats) {
				if err := app.Metrics.WriteTextfile(path); err != nil {
					logger.Warn("metrics export failed", "path", path, "error", err)
				}
			}))
		}
	}
	recorder := stats.New(app.KV, opts...)
	loaded := recorder.Load(ctx)
	if app.Metrics != nil {
		app.Metrics.SetStats(loaded)
		app.Metrics.SetDurations(durations)
	}

	notifiers := make(multiNotifier, 0, len(extra)+1)
	if app.Notifier != nil {
		notifiers = append(notifiers, app.Notifier)
	}
	notifiers = append(notifiers, extra...)

	ctrl := timer.NewController(timer.Options{
		Scheduler:       s,
		Durations:       durations,
		Stats:           recorder,
		Presenter:       p,
		Notifier:        notifiers,
		Logger:          logger,
		AutoChain:       cfg.AutoChain,
		CompletionDelay: cfg.CompletionDelay,
		SkipDelay:       cfg.SkipDelay,
	})
	logger.Debug("session ready",
		"work", durations.Total(domain.PhaseWork),
		"break", durations.Total(domain.PhaseBreak),
		"auto_chain", cfg.AutoChain,
		"work_sessions", loaded.WorkSessionsCompleted,
		"break_sessions", loaded.BreakSessionsCompleted,
	)
	return &session{
		ctrl:     ctrl,
		recorder: recorder,
		metrics:  app.Metrics,
		applied: map[domain.Phase]config.PhaseDuration{
			domain.PhaseWork:  cfg.Work,
			domain.PhaseBreak: cfg.Break,
		},
	}, nil
}

// setDuration changes a phase length and republishes the duration gauge.
func (s *session) setDuration(phase domain.Phase, minutes, seconds int) error {
	if err := s.ctrl.SetDuration(phase, minutes, seconds); err != nil {
		return err
	}
	if s.metrics != nil {
		s.metrics.SetDurations(s.ctrl.Durations())
	}
	return nil
}

// applyConfig pushes only the phases whose configured length changed
// since the last load, through SetDuration so an in-flight countdown
// keeps its remaining time. A length edited in the TUI survives a reload
// that leaves its phase alone.
func (s *session) applyConfig(cfg *config.Config) error {
	for _, phase := range domain.Phases {
		d := cfg.Work
		if phase == domain.PhaseBreak {
			d = cfg.Break
		}
		if d == s.applied[phase] {
			continue
		}
		if err := s.setDuration(phase, d.Minutes, d.Seconds); err != nil {
			return err
		}
		s.applied[phase] = d
	}
	return nil
}

type multiNotifier []timer.Notifier

func (m multiNotifier) Notify(phase domain.Phase) {
	for _, n := range m {
		n.Notify(phase)
	}
}
