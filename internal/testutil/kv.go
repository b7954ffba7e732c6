package testutil

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/alexanderramin/tomato/internal/domain"
	"github.com/alexanderramin/tomato/internal/repository"
)

// MemoryKV is an in-process KVRepo. Setting FailWrites or FailReads makes
// the matching calls return that error, which lets tests exercise the
// best-effort persistence paths.
type MemoryKV struct {
	mu         sync.Mutex
	data       map[string]repository.Record
	writes     int
	FailWrites error
	FailReads  error
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: map[string]repository.Record{}}
}

func (m *MemoryKV) Get(_ context.Context, key string) (*repository.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailReads != nil {
		return nil, m.FailReads
	}
	rec, ok := m.data[key]
	if !ok {
		return nil, fmt.Errorf("key %q: %w", key, repository.ErrNotFound)
	}
	return &rec, nil
}

func (m *MemoryKV) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writes++
	if m.FailWrites != nil {
		return m.FailWrites
	}
	m.data[key] = repository.Record{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	return nil
}

func (m *MemoryKV) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites != nil {
		return m.FailWrites
	}
	if _, ok := m.data[key]; !ok {
		return fmt.Errorf("key %q: %w", key, repository.ErrNotFound)
	}
	delete(m.data, key)
	return nil
}

func (m *MemoryKV) List(_ context.Context) ([]repository.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailReads != nil {
		return nil, m.FailReads
	}
	out := make([]repository.Record, 0, len(m.data))
	for _, rec := range m.data {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

// Value returns the raw stored value and whether key exists.
func (m *MemoryKV) Value(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.data[key]
	return rec.Value, ok
}

// Writes counts Set calls, including failed ones.
func (m *MemoryKV) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

// SeedStats stores s under key as the persisted JSON record.
func SeedStats(kv repository.KVRepo, key string, s domain.SessionStats) {
	raw, err := json.Marshal(s)
	if err != nil {
		panic(err)
	}
	if err := kv.Set(context.Background(), key, string(raw)); err != nil {
		panic(err)
	}
}
