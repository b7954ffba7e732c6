package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/tomato/internal/config"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newRunCmd(app *App) *cobra.Command {
	var headless bool
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the timer (TUI, or line commands with --headless)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.overlay(app.config())
			if headless {
				return runHeadless(cmd.Context(), app, cmd.OutOrStdout(), opts)
			}
			return runTUI(cmd.Context(), app, opts)
		},
	}

	cmd.Flags().BoolVar(&headless, "headless", false, "read commands from stdin instead of opening the TUI")
	cmd.Flags().BoolVar(&opts.start, "start", false, "start the work countdown immediately")
	addPhaseFlags(cmd.Flags(), &opts.work, &opts.brk)

	return cmd
}

func runTUI(ctx context.Context, app *App, opts runOptions) error {
	m, err := newAppModel(ctx, app, newTeaScheduler(), opts)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	stop := watchConfig(ctx, app, func(cfg *config.Config) {
		p.Send(configReloadedMsg{cfg: cfg})
	})
	defer stop()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running tui: %w", err)
	}
	return nil
}

// watchConfig starts a config watcher when enabled. A watcher that
// cannot start is logged and skipped.
func watchConfig(ctx context.Context, app *App, deliver func(*config.Config)) func() {
	cfg := app.config()
	path := cfg.Path
	if path == "" {
		path = config.DefaultPath()
	}
	if !cfg.Watch {
		return func() {}
	}

	logger := app.logger()
	w, err := config.NewWatcher(path, deliver, config.WithWatchLogger(logger))
	if err != nil {
		logger.Warn("config watch disabled", "path", path, "error", err)
		return func() {}
	}
	if err := w.Start(ctx); err != nil {
		logger.Debug("config watch disabled", "path", path, "error", err)
		return func() {}
	}
	return func() { _ = w.Close() }
}
