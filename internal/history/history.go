// Package history records every dispatched command to a local SQLite
// database: what ran, with which payload, what came back, and how long
// it took. The store is purely diagnostic; the engine itself stays
// stateless across invocations.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Record is one command execution.
type Record struct {
	ID        string
	Command   string
	Payload   string
	Result    string
	Error     string
	Code      int
	StartedAt time.Time
	Duration  time.Duration
}

// Store is the SQLite-backed execution log.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS executions (
	id          TEXT PRIMARY KEY,
	command     TEXT NOT NULL,
	payload     TEXT NOT NULL DEFAULT '',
	result      TEXT NOT NULL DEFAULT '',
	error       TEXT NOT NULL DEFAULT '',
	code        INTEGER NOT NULL DEFAULT 0,
	started_at  INTEGER NOT NULL,
	duration_ms INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS executions_started_at ON executions(started_at);
`

// Open opens (and if needed creates) the store at path.
func Open(ctx context.Context, path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	if err := os.Chmod(path, 0o600); err != nil && !errors.Is(err, os.ErrNotExist) {
		db.Close()
		return nil, fmt.Errorf("chmod history db: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Append stores one execution record. A missing ID is assigned.
func (s *Store) Append(ctx context.Context, rec Record) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.StartedAt.IsZero() {
		rec.StartedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
INSERT INTO executions(id, command, payload, result, error, code, started_at, duration_ms)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`, rec.ID, rec.Command, rec.Payload, rec.Result, rec.Error, rec.Code,
		rec.StartedAt.UnixMilli(), rec.Duration.Milliseconds())
	if err != nil {
		return fmt.Errorf("append execution: %w", err)
	}
	return nil
}

// Recent returns up to limit executions, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, command, payload, result, error, code, started_at, duration_ms
FROM executions ORDER BY started_at DESC, id LIMIT ?
`, limit)
	if err != nil {
		return nil, fmt.Errorf("query executions: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var rec Record
		var startedMs, durMs int64
		if err := rows.Scan(&rec.ID, &rec.Command, &rec.Payload, &rec.Result,
			&rec.Error, &rec.Code, &startedMs, &durMs); err != nil {
			return nil, fmt.Errorf("scan execution: %w", err)
		}
		rec.StartedAt = time.UnixMilli(startedMs).UTC()
		rec.Duration = time.Duration(durMs) * time.Millisecond
		out = append(out, rec)
	}
	return out, rows.Err()
}
