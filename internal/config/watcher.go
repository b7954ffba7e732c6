package config

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/jonboulle/clockwork"
)

// DefaultDebounce collapses the burst of events editors emit on save.
const DefaultDebounce = 250 * time.Millisecond

// Watcher reloads a config file when it changes on disk. onReload runs on
// the watcher's own goroutine; callers hand the result to their logical
// thread themselves.
type Watcher struct {
	path     string
	onReload func(*Config)
	logger   *slog.Logger
	clock    clockwork.Clock
	debounce time.Duration

	watcher *fsnotify.Watcher

	mu      sync.Mutex
	pending clockwork.Timer
	stopped bool
	done    chan struct{}
}

type WatcherOption func(*Watcher)

func WithWatchLogger(l *slog.Logger) WatcherOption {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l
		}
	}
}

func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) { w.debounce = d }
}

func WithClock(c clockwork.Clock) WatcherOption {
	return func(w *Watcher) { w.clock = c }
}

// NewWatcher prepares a watcher for path. Nothing is watched until Start.
func NewWatcher(path string, onReload func(*Config), opts ...WatcherOption) (*Watcher, error) {
	abs, err := filepath.Abs(ExpandHome(path))
	if err != nil {
		return nil, fmt.Errorf("resolving config path: %w", err)
	}
	w := &Watcher{
		path:     abs,
		onReload: onReload,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		clock:    clockwork.NewRealClock(),
		debounce: DefaultDebounce,
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Start watches the directory holding the config file, which survives
// editors that replace the file on save.
func (w *Watcher) Start(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating file watcher: %w", err)
	}
	dir := filepath.Dir(w.path)
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return fmt.Errorf("watching %s: %w", dir, err)
	}
	w.watcher = fw
	w.logger.Debug("config watch started", "path", w.path)
	go w.loop(ctx)
	return nil
}

// Close stops watching and cancels a pending reload.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return nil
	}
	w.stopped = true
	if w.pending != nil {
		w.pending.Stop()
	}
	w.mu.Unlock()

	if w.watcher == nil {
		return nil
	}
	err := w.watcher.Close()
	<-w.done
	return err
}

func (w *Watcher) loop(ctx context.Context) {
	defer close(w.done)
	name := filepath.Base(w.path)
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(ev.Name) != name {
				continue
			}
			if ev.Has(fsnotify.Remove) {
				w.logger.Warn("config file removed", "path", ev.Name)
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
				w.schedule()
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("config watcher error", "error", err)
		}
	}
}

func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return
	}
	if w.pending != nil {
		w.pending.Stop()
	}
	w.pending = w.clock.AfterFunc(w.debounce, w.reload)
}

func (w *Watcher) reload() {
	w.mu.Lock()
	stopped := w.stopped
	w.mu.Unlock()
	if stopped {
		return
	}

	cfg, err := Load(w.path)
	if err != nil {
		w.logger.Warn("config reload rejected", "path", w.path, "error", err)
		return
	}
	w.logger.Info("config reloaded", "path", w.path)
	w.onReload(cfg)
}
