package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/tomato/internal/db"
)

// SQLiteKVRepo implements KVRepo on the kv table.
type SQLiteKVRepo struct {
	db db.DBTX
}

func NewSQLiteKVRepo(conn db.DBTX) *SQLiteKVRepo {
	return &SQLiteKVRepo{db: conn}
}

func (r *SQLiteKVRepo) Get(ctx context.Context, key string) (*Record, error) {
	row := r.db.QueryRowContext(ctx, `SELECT key, value, updated_at FROM kv WHERE key = ?`, key)

	var rec Record
	var updatedAt string
	if err := row.Scan(&rec.Key, &rec.Value, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("key %q: %w", key, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning key %q: %w", key, err)
	}
	rec.UpdatedAt = parseTime(updatedAt)
	return &rec, nil
}

func (r *SQLiteKVRepo) Set(ctx context.Context, key, value string) error {
	query := `INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
	if _, err := r.db.ExecContext(ctx, query, key, value, nowUTC()); err != nil {
		return fmt.Errorf("writing key %q: %w", key, err)
	}
	return nil
}

func (r *SQLiteKVRepo) Delete(ctx context.Context, key string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("deleting key %q: %w", key, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("key %q: %w", key, ErrNotFound)
	}
	return nil
}

func (r *SQLiteKVRepo) List(ctx context.Context) ([]Record, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key, value, updated_at FROM kv ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("listing keys: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var rec Record
		var updatedAt string
		if err := rows.Scan(&rec.Key, &rec.Value, &updatedAt); err != nil {
			return nil, fmt.Errorf("scanning key row: %w", err)
		}
		rec.UpdatedAt = parseTime(updatedAt)
		out = append(out, rec)
	}
	return out, rows.Err()
}
