package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"syscall"

	"github.com/alexanderramin/tomato/internal/cli"
	"github.com/alexanderramin/tomato/internal/config"
	"github.com/alexanderramin/tomato/internal/db"
	"github.com/alexanderramin/tomato/internal/metrics"
	"github.com/alexanderramin/tomato/internal/notify"
	"github.com/alexanderramin/tomato/internal/repository"
	"github.com/alexanderramin/tomato/internal/service"
	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.LoadEnvFile(".env"); err != nil {
		return err
	}

	cfgPath := config.DefaultPath()
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	if cfg.Path == "" {
		cfg.Path = cfgPath
	}

	interactive := isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	logger, closeLog, err := openLogger(cfg, interactive && !slices.Contains(os.Args[1:], "--headless"))
	if err != nil {
		return err
	}
	defer closeLog()

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	kv := repository.NewSQLiteKVRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)
	observer := service.NewLogUseCaseObserver(logger)

	app := &cli.App{
		Config:   cfg,
		KV:       kv,
		Stats:    service.NewStatsService(kv, uow, logger, observer),
		Prefs:    service.NewPreferencesService(kv, observer),
		Logger:   logger,
		Notifier: buildNotifier(cfg, logger),
		Bell:     cfg.Notifications.Bell,
		Metrics:  metrics.NewPrometheusRecorder(nil),
		IsInteractive: func() bool {
			return interactive
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}

// openLogger writes to the log file when the TUI owns the terminal and
// to stderr otherwise. Every record carries the process run id.
func openLogger(cfg *config.Config, toFile bool) (*slog.Logger, func(), error) {
	var w io.Writer = os.Stderr
	closeFn := func() {}
	if toFile && cfg.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
			return nil, nil, fmt.Errorf("creating log directory: %w", err)
		}
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		w = f
		closeFn = func() { _ = f.Close() }
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: cfg.SlogLevel()})
	return slog.New(handler).With("run_id", uuid.NewString()), closeFn, nil
}

func buildNotifier(cfg *config.Config, logger *slog.Logger) *notify.Notifier {
	// The bell is written by each front end to its own output.
	var senders []notify.Sender
	if cfg.Notifications.Desktop {
		d, err := notify.NewDesktop()
		switch {
		case err == nil:
			senders = append(senders, d)
		case errors.Is(err, notify.ErrUnavailable):
			logger.Debug("desktop notifications disabled", "error", err)
		default:
			logger.Warn("desktop notifications disabled", "error", err)
		}
	}
	return notify.New(logger, senders...)
}
