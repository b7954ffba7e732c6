package db

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}

func TestMigrate_CreatesKVTable(t *testing.T) {
	db := openTestDB(t)

	var name string
	err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name='kv'`).Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "kv", name)

	_, err = db.Exec(`INSERT INTO kv (key, value, updated_at) VALUES ('a', '1', '2026-01-01T00:00:00Z')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO kv (key, value, updated_at) VALUES ('a', '2', '2026-01-01T00:00:00Z')`)
	assert.Error(t, err, "key is the primary key")
}

func TestOpenDB_CreatesParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "tomato.db")

	db, err := OpenDB(path)
	require.NoError(t, err)
	defer db.Close()

	var mode string
	require.NoError(t, db.QueryRow(`PRAGMA journal_mode`).Scan(&mode))
	assert.Equal(t, "wal", mode)
	assert.FileExists(t, path)
}

func TestOpenDB_ReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tomato.db")

	first, err := OpenDB(path)
	require.NoError(t, err)
	_, err = first.Exec(`INSERT INTO kv (key, value, updated_at) VALUES ('theme', 'dark', 'now')`)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := OpenDB(path)
	require.NoError(t, err)
	defer second.Close()

	var value string
	require.NoError(t, second.QueryRow(`SELECT value FROM kv WHERE key = 'theme'`).Scan(&value))
	assert.Equal(t, "dark", value)
}

func TestOpenDB_SetsBusyTimeout(t *testing.T) {
	db := openTestDB(t)

	var ms int
	require.NoError(t, db.QueryRow(`PRAGMA busy_timeout`).Scan(&ms))
	assert.Equal(t, 2000, ms)
}

func TestOpenDB_SecondHandleSeesWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tomato.db")

	tui, err := OpenDB(path)
	require.NoError(t, err)
	defer tui.Close()
	cli, err := OpenDB(path)
	require.NoError(t, err)
	defer cli.Close()

	_, err = tui.Exec(`INSERT INTO kv (key, value, updated_at) VALUES ('stats', '{"work":1}', 'now')`)
	require.NoError(t, err)
	_, err = cli.Exec(`UPDATE kv SET value = '{}' WHERE key = 'stats'`)
	require.NoError(t, err)

	var value string
	require.NoError(t, tui.QueryRow(`SELECT value FROM kv WHERE key = 'stats'`).Scan(&value))
	assert.Equal(t, "{}", value)
}
