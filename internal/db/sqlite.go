package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// SQLiteStore implements Store using SQLite
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite store and applies migrations
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) migrate() error {
	query := `
	CREATE TABLE IF NOT EXISTS runs (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		benchmark TEXT NOT NULL,
		command TEXT NOT NULL,
		labels TEXT NOT NULL,
		rows TEXT NOT NULL,
		means TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_runs_benchmark ON runs(benchmark, seq);
	`
	_, err := s.db.Exec(query)
	return err
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func prepareRun(run *Run) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}
}

// SaveRun stores an averaged benchmark run
func (s *SQLiteStore) SaveRun(run *Run) error {
	prepareRun(run)
	enc, err := encodeRun(run)
	if err != nil {
		return err
	}
	query := `INSERT INTO runs (id, benchmark, command, labels, rows, means, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`
	if _, err := s.db.Exec(query, run.ID, run.Benchmark, run.Command, enc.labels, enc.rows, enc.means, run.CreatedAt); err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}
	return nil
}

// LatestRun returns the most recent run of the named benchmark
func (s *SQLiteStore) LatestRun(benchmark string) (*Run, error) {
	query := `SELECT id, benchmark, command, labels, rows, means, created_at FROM runs WHERE benchmark = ? ORDER BY seq DESC LIMIT 1`
	run, err := scanRun(s.db.QueryRow(query, benchmark))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load latest run of %s: %w", benchmark, err)
	}
	return &run, nil
}

// ListRuns retrieves the most recent runs
func (s *SQLiteStore) ListRuns(limit int) ([]Run, error) {
	query := `SELECT id, benchmark, command, labels, rows, means, created_at FROM runs ORDER BY seq DESC LIMIT ?`
	rows, err := s.db.Query(query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, run)
	}
	return results, rows.Err()
}
