package history

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"cback/internal/history/migrations"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// Run is one recorded backup run.
type Run struct {
	ID          int64
	StartedAt   time.Time
	FinishedAt  sql.NullTime
	Status      string // "running", "success" or "error"
	Sources     string // space-joined source arguments
	Destination string
	Algorithm   string
	Discovered  int64
	Selected    int64
}

// Store records backup runs in a SQLite database so past runs can be
// inspected with `cback history`.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the history database at path and brings
// its schema up to date. path can be ":memory:" for tests.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	// Enable foreign key constraints (SQLite default is OFF for backward compatibility)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := migrations.MigrateUp(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating history database: %w", err)
	}

	return &Store{db: db}, nil
}

// Begin records the start of a run and returns its ID.
func (s *Store) Begin(startedAt time.Time, sources []string, destination, algorithm string) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO runs (started_at, status, sources, destination, algorithm)
		 VALUES (?, 'running', ?, ?, ?)`,
		startedAt, strings.Join(sources, " "), destination, algorithm,
	)
	if err != nil {
		return 0, fmt.Errorf("recording run start: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading run id: %w", err)
	}
	return id, nil
}

// Finish records the outcome of a run.
func (s *Store) Finish(id int64, finishedAt time.Time, status string, discovered, selected int) error {
	_, err := s.db.Exec(
		`UPDATE runs SET finished_at = ?, status = ?, discovered = ?, selected = ?
		 WHERE id = ?`,
		finishedAt, status, discovered, selected, id,
	)
	if err != nil {
		return fmt.Errorf("recording run finish: %w", err)
	}
	return nil
}

// Recent returns the most recent runs, newest first.
func (s *Store) Recent(limit int) ([]*Run, error) {
	rows, err := s.db.Query(
		`SELECT id, started_at, finished_at, status, sources, destination,
		        algorithm, discovered, selected
		 FROM runs ORDER BY id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.StartedAt, &r.FinishedAt, &r.Status,
			&r.Sources, &r.Destination, &r.Algorithm, &r.Discovered, &r.Selected); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		runs = append(runs, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}
	return runs, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
