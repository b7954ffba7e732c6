// Package stats counts finished sessions and mirrors the counters into
// the key-value store.
package stats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/alexanderramin/tomato/internal/domain"
	"github.com/alexanderramin/tomato/internal/repository"
)

// Key is the record name the counters are stored under.
const Key = "stats"

// Hook observes every recorded completion after the counter moved.
type Hook func(phase domain.Phase, current domain.SessionStats)

// Recorder is the sole writer of SessionStats. The in-memory counters are
// authoritative; persistence is best effort.
type Recorder struct {
	kv      repository.KVRepo
	logger  *slog.Logger
	timeout time.Duration
	hooks   []Hook

	stats domain.SessionStats
}

type Option func(*Recorder)

func WithLogger(l *slog.Logger) Option {
	return func(r *Recorder) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithHook registers h to run after every RecordCompletion.
func WithHook(h Hook) Option {
	return func(r *Recorder) { r.hooks = append(r.hooks, h) }
}

// WithWriteTimeout bounds each persist call.
func WithWriteTimeout(d time.Duration) Option {
	return func(r *Recorder) { r.timeout = d }
}

// New returns a Recorder with zeroed counters. Call Load to restore
// persisted values.
func New(kv repository.KVRepo, opts ...Option) *Recorder {
	r := &Recorder{
		kv:      kv,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		timeout: 2 * time.Second,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Load restores the persisted counters. Missing, unreadable or malformed
// records yield zero counters; Load never fails.
func (r *Recorder) Load(ctx context.Context) domain.SessionStats {
	r.stats = Decode(ctx, r.kv, r.logger)
	return r.stats
}

// RecordCompletion increments the counter for phase and persists the
// new totals. A failed write is logged and otherwise ignored.
func (r *Recorder) RecordCompletion(phase domain.Phase) {
	r.stats.Inc(phase)
	for _, h := range r.hooks {
		h(phase, r.stats)
	}

	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()
	if err := Save(ctx, r.kv, r.stats); err != nil {
		r.logger.Warn("stats persist failed", "phase", phase, "error", err)
	}
}

// Stats returns a copy of the in-memory counters.
func (r *Recorder) Stats() domain.SessionStats { return r.stats }

// Decode reads the stats record from kv, falling back to zero counters.
func Decode(ctx context.Context, kv repository.KVRepo, logger *slog.Logger) domain.SessionStats {
	rec, err := kv.Get(ctx, Key)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			logger.Warn("stats load failed, using defaults", "error", err)
		}
		return domain.SessionStats{}
	}
	s, err := Parse(rec.Value)
	if err != nil {
		logger.Warn("stats record malformed, using defaults", "error", err)
		return domain.SessionStats{}
	}
	return s
}

// Parse decodes a stored stats record.
func Parse(raw string) (domain.SessionStats, error) {
	var s domain.SessionStats
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return domain.SessionStats{}, fmt.Errorf("decoding stats: %w", err)
	}
	if !s.Valid() {
		return domain.SessionStats{}, fmt.Errorf("decoding stats: negative counter in %q", raw)
	}
	return s, nil
}

// Save writes s as the stats record.
func Save(ctx context.Context, kv repository.KVRepo, s domain.SessionStats) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encoding stats: %w", err)
	}
	if err := kv.Set(ctx, Key, string(raw)); err != nil {
		return fmt.Errorf("saving stats: %w", err)
	}
	return nil
}
