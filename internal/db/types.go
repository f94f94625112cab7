package db

import (
	"encoding/json"
	"fmt"
	"time"
)

// Run is one averaged benchmark table as stored in history.
type Run struct {
	ID        string      `json:"id"`
	Benchmark string      `json:"benchmark"`
	Command   string      `json:"command"`
	Labels    []string    `json:"labels"`
	Rows      [][]float64 `json:"rows"`
	Means     []float64   `json:"means"`
	CreatedAt time.Time   `json:"created_at"`
}

// Store interface defines the methods for persistent storage
type Store interface {
	Close() error
	// SaveRun stores run, assigning ID and CreatedAt when they are empty.
	SaveRun(run *Run) error
	// LatestRun returns the newest run of a benchmark, or nil if there is none.
	LatestRun(benchmark string) (*Run, error)
	// ListRuns returns the newest runs first.
	ListRuns(limit int) ([]Run, error)
}

type encodedRun struct {
	labels, rows, means string
}

func encodeRun(run *Run) (encodedRun, error) {
	var enc encodedRun
	for _, f := range []struct {
		dst *string
		v   any
	}{
		{&enc.labels, run.Labels},
		{&enc.rows, run.Rows},
		{&enc.means, run.Means},
	} {
		data, err := json.Marshal(f.v)
		if err != nil {
			return enc, fmt.Errorf("failed to encode run %s: %w", run.ID, err)
		}
		*f.dst = string(data)
	}
	return enc, nil
}

func (enc encodedRun) decodeInto(run *Run) error {
	if err := json.Unmarshal([]byte(enc.labels), &run.Labels); err != nil {
		return fmt.Errorf("failed to decode labels of run %s: %w", run.ID, err)
	}
	if err := json.Unmarshal([]byte(enc.rows), &run.Rows); err != nil {
		return fmt.Errorf("failed to decode rows of run %s: %w", run.ID, err)
	}
	if err := json.Unmarshal([]byte(enc.means), &run.Means); err != nil {
		return fmt.Errorf("failed to decode means of run %s: %w", run.ID, err)
	}
	return nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (Run, error) {
	var run Run
	var enc encodedRun
	err := s.Scan(&run.ID, &run.Benchmark, &run.Command, &enc.labels, &enc.rows, &enc.means, &run.CreatedAt)
	if err != nil {
		return run, err
	}
	return run, enc.decodeInto(&run)
}
