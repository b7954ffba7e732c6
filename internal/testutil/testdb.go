package testutil

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/tomato/internal/db"
	"github.com/stretchr/testify/require"
)

// NewTestDB opens a migrated in-memory kv store, closed on cleanup.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	return open(t, db.MemoryPath)
}

// OpenTestFileDB opens the store at path, closed on cleanup. Opening the
// same path twice stands in for a TUI and a CLI process sharing a file.
func OpenTestFileDB(t *testing.T, path string) *sql.DB {
	t.Helper()
	return open(t, path)
}

// TestDBPath is a fresh store location under t.TempDir.
func TestDBPath(t *testing.T) string {
	return filepath.Join(t.TempDir(), "tomato", "tomato.db")
}

// NewTestUoW creates a UnitOfWork backed by the given test database.
func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}

func open(t *testing.T, path string) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(path)
	require.NoError(t, err, "opening test kv store")
	t.Cleanup(func() { database.Close() })
	return database
}
