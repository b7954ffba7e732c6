package repository

import (
	"context"
	"time"
)

// Record is one stored preference value.
type Record struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}

// KVRepo is a string-keyed preference store. Values are opaque strings;
// callers own their encoding.
type KVRepo interface {
	// Get returns ErrNotFound when key has never been written.
	Get(ctx context.Context, key string) (*Record, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) ([]Record, error)
}
