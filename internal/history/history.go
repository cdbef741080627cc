// Package history keeps a local SQLite log of render runs.
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

const schema = `CREATE TABLE IF NOT EXISTS runs (
    run_id TEXT PRIMARY KEY,
    composition TEXT NOT NULL,
    format TEXT NOT NULL,
    encoder TEXT NOT NULL,
    output TEXT NOT NULL,
    first_frame INTEGER NOT NULL,
    frames INTEGER NOT NULL,
    workers INTEGER NOT NULL,
    started_at TEXT NOT NULL,
    duration_ms INTEGER NOT NULL,
    status TEXT NOT NULL,
    error TEXT
);
CREATE INDEX IF NOT EXISTS runs_started_at ON runs (started_at);`

// timeLayout is fixed width so started_at sorts as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// Run statuses.
const (
	StatusOK       = "ok"
	StatusFailed   = "failed"
	StatusCanceled = "canceled"
)

// Run is one render pass.
type Run struct {
	ID          string
	Composition string
	Format      string
	Encoder     string
	Output      string
	FirstFrame  int
	Frames      int
	Workers     int
	StartedAt   time.Time
	Duration    time.Duration
	Status      string
	Error       string
}

// FPS is the effective render speed of the run.
func (r Run) FPS() float64 {
	if r.Duration <= 0 {
		return 0
	}
	return float64(r.Frames) / r.Duration.Seconds()
}

// Store is a SQLite-backed run log.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init history schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// NewRunID returns a time-ordered run id.
func NewRunID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

// Record stores r, assigning an ID when it has none.
func (s *Store) Record(ctx context.Context, r *Run) error {
	if r.ID == "" {
		r.ID = NewRunID()
	}
	if r.Status == "" {
		return errors.New("run has no status")
	}
	var runErr sql.NullString
	if r.Error != "" {
		runErr = sql.NullString{String: r.Error, Valid: true}
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (run_id, composition, format, encoder, output, first_frame, frames, workers, started_at, duration_ms, status, error)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Composition, r.Format, r.Encoder, r.Output, r.FirstFrame, r.Frames, r.Workers,
		r.StartedAt.UTC().Format(timeLayout), r.Duration.Milliseconds(), r.Status, runErr,
	)
	if err != nil {
		return fmt.Errorf("record run %s: %w", r.ID, err)
	}
	return nil
}

// List returns up to limit runs, newest first. A composition filters by id.
func (s *Store) List(ctx context.Context, composition string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `SELECT run_id, composition, format, encoder, output, first_frame, frames, workers, started_at, duration_ms, status, error
		FROM runs`
	args := []any{}
	if composition != "" {
		query += ` WHERE composition = ?`
		args = append(args, composition)
	}
	query += ` ORDER BY started_at DESC, run_id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r          Run
			startedAt  string
			durationMs int64
			runErr     sql.NullString
		)
		if err := rows.Scan(&r.ID, &r.Composition, &r.Format, &r.Encoder, &r.Output, &r.FirstFrame,
			&r.Frames, &r.Workers, &startedAt, &durationMs, &r.Status, &runErr); err != nil {
			return nil, err
		}
		if r.StartedAt, err = time.Parse(timeLayout, startedAt); err != nil {
			return nil, fmt.Errorf("run %s: %w", r.ID, err)
		}
		r.Duration = time.Duration(durationMs) * time.Millisecond
		r.Error = runErr.String
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
