package cli

import (
	"io"
	"log/slog"
	"os"

	"github.com/alexanderramin/tomato/internal/config"
	"github.com/alexanderramin/tomato/internal/metrics"
	"github.com/alexanderramin/tomato/internal/repository"
	"github.com/alexanderramin/tomato/internal/service"
	"github.com/alexanderramin/tomato/internal/timer"
	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"
)

// App holds everything the commands need. main wires it once per process.
type App struct {
	Config *config.Config
	KV     repository.KVRepo
	Stats  service.StatsService
	Prefs  service.PreferencesService
	Logger *slog.Logger

	// Notifier receives natural completions. Nil disables notifications.
	Notifier timer.Notifier
	// Metrics is optional; nil skips the Prometheus mirror.
	Metrics *metrics.PrometheusRecorder

	// IsInteractive reports whether stdin is a terminal.
	IsInteractive func() bool
	// In feeds the headless runner; defaults to os.Stdin.
	In io.Reader
	// Bell rings the terminal bell on natural completion. The TUI rings
	// it through its own renderer.
	Bell bool
	// Clock drives the headless runner; nil uses the real clock.
	Clock clockwork.Clock
}

func (app *App) logger() *slog.Logger {
	if app.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return app.Logger
}

func (app *App) stdin() io.Reader {
	if app.In == nil {
		return os.Stdin
	}
	return app.In
}

func (app *App) config() *config.Config {
	if app.Config == nil {
		app.Config = config.DefaultConfig()
	}
	return app.Config
}

// NewRootCmd creates the top-level "tomato" command. With no subcommand
// it opens the TUI on a terminal and prints help otherwise.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "tomato",
		Short:         "Pomodoro timer for the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive != nil && app.IsInteractive() {
				return runTUI(cmd.Context(), app, runOptions{})
			}
			return cmd.Help()
		},
	}

	root.AddCommand(
		newRunCmd(app),
		newStatsCmd(app),
		newThemeCmd(app),
		newConfigCmd(app),
	)

	return root
}
