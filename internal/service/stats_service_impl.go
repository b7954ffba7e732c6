package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/alexanderramin/tomato/internal/db"
	"github.com/alexanderramin/tomato/internal/domain"
	"github.com/alexanderramin/tomato/internal/repository"
	"github.com/alexanderramin/tomato/internal/stats"
)

type statsService struct {
	kv       repository.KVRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
	logger   *slog.Logger
}

// NewStatsService reads and resets the persisted counters. A nil logger
// discards output.
func NewStatsService(kv repository.KVRepo, uow db.UnitOfWork, logger *slog.Logger, observers ...UseCaseObserver) StatsService {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &statsService{
		kv:       kv,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
		logger:   logger,
	}
}

// Get never fails on a missing or malformed record; both read as zero.
func (s *statsService) Get(ctx context.Context) (snap *StatsSnapshot, err error) {
	defer observe(ctx, s.observer, "get-stats", nil, &err)()

	rec, err := s.kv.Get(ctx, stats.Key)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &StatsSnapshot{}, nil
		}
		return nil, fmt.Errorf("reading stats: %w", err)
	}
	parsed, perr := stats.Parse(rec.Value)
	if perr != nil {
		s.logger.WarnContext(ctx, "stats record malformed", "error", perr)
		return &StatsSnapshot{UpdatedAt: rec.UpdatedAt}, nil
	}
	return &StatsSnapshot{Stats: parsed, UpdatedAt: rec.UpdatedAt}, nil
}

func (s *statsService) Reset(ctx context.Context) (prev domain.SessionStats, err error) {
	fields := map[string]any{}
	defer observe(ctx, s.observer, "reset-stats", fields, &err)()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		kv := repository.NewSQLiteKVRepo(tx)
		prev = stats.Decode(ctx, kv, s.logger)
		return stats.Save(ctx, kv, domain.SessionStats{})
	})
	if err != nil {
		return domain.SessionStats{}, fmt.Errorf("resetting stats: %w", err)
	}
	fields["work"] = prev.WorkSessionsCompleted
	fields["break"] = prev.BreakSessionsCompleted
	return prev, nil
}
