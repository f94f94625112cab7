package db

import (
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/lib/pq"
)

// PostgresStore implements Store using PostgreSQL
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a new Postgres store and applies migrations
func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &PostgresStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

func (s *PostgresStore) migrate() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			seq BIGSERIAL PRIMARY KEY,
			id TEXT NOT NULL UNIQUE,
			benchmark TEXT NOT NULL,
			command TEXT NOT NULL,
			labels JSONB NOT NULL,
			rows JSONB NOT NULL,
			means JSONB NOT NULL,
			created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE INDEX IF NOT EXISTS idx_runs_benchmark ON runs(benchmark, seq);`,
	}
	for _, q := range queries {
		if _, err := s.db.Exec(q); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the database connection
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// SaveRun stores an averaged benchmark run
func (s *PostgresStore) SaveRun(run *Run) error {
	prepareRun(run)
	enc, err := encodeRun(run)
	if err != nil {
		return err
	}
	query := `INSERT INTO runs (id, benchmark, command, labels, rows, means, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7)`
	if _, err := s.db.Exec(query, run.ID, run.Benchmark, run.Command, enc.labels, enc.rows, enc.means, run.CreatedAt); err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}
	return nil
}

// LatestRun returns the most recent run of the named benchmark
func (s *PostgresStore) LatestRun(benchmark string) (*Run, error) {
	query := `SELECT id, benchmark, command, labels, rows, means, created_at FROM runs WHERE benchmark = $1 ORDER BY seq DESC LIMIT 1`
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
func (s *PostgresStore) ListRuns(limit int) ([]Run, error) {
	query := `SELECT id, benchmark, command, labels, rows, means, created_at FROM runs ORDER BY seq DESC LIMIT $1`
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
