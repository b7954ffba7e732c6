package service

import (
	"context"
	"time"

	"github.com/alexanderramin/tomato/internal/domain"
)

// StatsSnapshot is the persisted view of the session counters.
type StatsSnapshot struct {
	Stats domain.SessionStats
	// UpdatedAt is zero when no record has been written yet.
	UpdatedAt time.Time
}

type StatsService interface {
	Get(ctx context.Context) (*StatsSnapshot, error)
	// Reset zeroes the persisted counters and returns the previous values.
	Reset(ctx context.Context) (domain.SessionStats, error)
}

type PreferencesService interface {
	Theme(ctx context.Context) domain.Theme
	// SetTheme persists t. The returned theme is always t, even when the
	// write fails.
	SetTheme(ctx context.Context, t domain.Theme) (domain.Theme, error)
	ToggleTheme(ctx context.Context) (domain.Theme, error)
}
