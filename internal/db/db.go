package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// MemoryPath opens a throwaway store for tests.
const MemoryPath = ":memory:"

// pragmas run on every open. The TUI keeps the store open for hours while
// `tomato stats` or `tomato theme` may write it from another terminal:
// WAL lets those readers run beside the TUI, and the busy timeout covers
// the brief overlap when both write one kv row.
var pragmas = []struct {
	name string
	stmt string
}{
	{"journal mode", "PRAGMA journal_mode = WAL"},
	{"busy timeout", "PRAGMA busy_timeout = 2000"},
}

// OpenDB opens the kv store holding session stats and the theme,
// creating parent directories for a file path.
func OpenDB(path string) (*sql.DB, error) {
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// A completion is a single upsert, so one connection never queues
	// for long. It also keeps a :memory: store from splitting per conn.
	db.SetMaxOpenConns(1)

	for _, p := range pragmas {
		if _, err := db.Exec(p.stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("setting %s: %w", p.name, err)
		}
	}

	if err := Migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return db, nil
}
