// Package history records import runs in a local SQLite database so
// operators can see what each source last ingested without digging through
// logs.
package history

import (
	"context"
	"database/sql"
	"time"

	_ "modernc.org/sqlite"
)

type DB struct {
	sql *sql.DB
}

func Open(path string) (*DB, error) {
	dsn := "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS import_runs (
  id            INTEGER PRIMARY KEY,
  source        TEXT NOT NULL,
  ran_at        DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  last_modified TEXT,
  entity_count  INTEGER NOT NULL DEFAULT 0,
  status        TEXT NOT NULL CHECK (status IN ('imported','unchanged','failed'))
);
CREATE INDEX IF NOT EXISTS idx_runs_source ON import_runs(source, ran_at);
	`); err != nil {
		return nil, err
	}
	return &DB{sql: db}, nil
}

func (d *DB) Close() error {
	if d == nil || d.sql == nil {
		return nil
	}
	return d.sql.Close()
}

// Run is one recorded import attempt.
type Run struct {
	Source       string
	RanAt        time.Time
	LastModified string
	EntityCount  int
	Status       string // imported | unchanged | failed
}

// RecordRun inserts one run. A zero RanAt records the current time.
func (d *DB) RecordRun(ctx context.Context, r Run) error {
	ranAt := r.RanAt
	if ranAt.IsZero() {
		ranAt = time.Now().UTC()
	}
	_, err := d.sql.ExecContext(ctx,
		`INSERT INTO import_runs(source, ran_at, last_modified, entity_count, status) VALUES(?,?,?,?,?)`,
		r.Source, ranAt, r.LastModified, r.EntityCount, r.Status)
	return err
}

// Runs returns the most recent runs, newest first.
func (d *DB) Runs(ctx context.Context, limit int) ([]Run, error) {
	rows, err := d.sql.QueryContext(ctx,
		`SELECT source, ran_at, COALESCE(last_modified, ''), entity_count, status
		 FROM import_runs ORDER BY ran_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.Source, &r.RanAt, &r.LastModified, &r.EntityCount, &r.Status); err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
