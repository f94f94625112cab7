package db

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withMockStore(t *testing.T, fn func(*PostgresStore, sqlmock.Sqlmock)) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	store := &PostgresStore{db: db}
	fn(store, mock)

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

var runColumns = []string{"id", "benchmark", "command", "labels", "rows", "means", "created_at"}

func TestPostgresStore_Mocked(t *testing.T) {
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	t.Run("Migrate", func(t *testing.T) {
		withMockStore(t, func(store *PostgresStore, mock sqlmock.Sqlmock) {
			mock.ExpectExec("CREATE TABLE IF NOT EXISTS runs").WillReturnResult(sqlmock.NewResult(0, 0))
			mock.ExpectExec("CREATE INDEX IF NOT EXISTS idx_runs_benchmark").WillReturnResult(sqlmock.NewResult(0, 0))
			assert.NoError(t, store.migrate())
		})
	})

	t.Run("SaveRun Success", func(t *testing.T) {
		withMockStore(t, func(store *PostgresStore, mock sqlmock.Sqlmock) {
			run := &Run{
				ID:        "run-1",
				Benchmark: "memory",
				Command:   "sysbench memory run",
				Labels:    []string{"Ops/s"},
				Rows:      [][]float64{{1.5}},
				Means:     []float64{1.5},
				CreatedAt: created,
			}
			mock.ExpectExec("INSERT INTO runs").
				WithArgs("run-1", "memory", "sysbench memory run", `["Ops/s"]`, `[[1.5]]`, `[1.5]`, created).
				WillReturnResult(sqlmock.NewResult(1, 1))

			assert.NoError(t, store.SaveRun(run))
		})
	})

	t.Run("SaveRun Error", func(t *testing.T) {
		withMockStore(t, func(store *PostgresStore, mock sqlmock.Sqlmock) {
			mock.ExpectExec("INSERT INTO runs").WillReturnError(errors.New("db down"))

			err := store.SaveRun(&Run{Benchmark: "cpu"})
			assert.ErrorContains(t, err, "db down")
		})
	})

	t.Run("LatestRun Found", func(t *testing.T) {
		withMockStore(t, func(store *PostgresStore, mock sqlmock.Sqlmock) {
			rows := sqlmock.NewRows(runColumns).
				AddRow("run-2", "cpu", "sysbench cpu run", []byte(`["a","b"]`), []byte(`[[1,2]]`), []byte(`[1,2]`), created)
			mock.ExpectQuery("SELECT id, benchmark, command, labels, rows, means, created_at FROM runs WHERE benchmark = \\$1").
				WithArgs("cpu").
				WillReturnRows(rows)

			run, err := store.LatestRun("cpu")
			require.NoError(t, err)
			require.NotNil(t, run)
			assert.Equal(t, "run-2", run.ID)
			assert.Equal(t, []string{"a", "b"}, run.Labels)
			assert.Equal(t, [][]float64{{1, 2}}, run.Rows)
			assert.Equal(t, created, run.CreatedAt)
		})
	})

	t.Run("LatestRun Missing", func(t *testing.T) {
		withMockStore(t, func(store *PostgresStore, mock sqlmock.Sqlmock) {
			mock.ExpectQuery("SELECT (.+) FROM runs WHERE benchmark").
				WithArgs("fileio").
				WillReturnRows(sqlmock.NewRows(runColumns))

			run, err := store.LatestRun("fileio")
			assert.NoError(t, err)
			assert.Nil(t, run)
		})
	})

	t.Run("ListRuns Corrupt Row", func(t *testing.T) {
		withMockStore(t, func(store *PostgresStore, mock sqlmock.Sqlmock) {
			rows := sqlmock.NewRows(runColumns).
				AddRow("run-3", "cpu", "c", []byte(`not json`), []byte(`[]`), []byte(`[]`), created)
			mock.ExpectQuery("SELECT (.+) FROM runs ORDER BY seq DESC LIMIT \\$1").
				WithArgs(5).
				WillReturnRows(rows)

			_, err := store.ListRuns(5)
			assert.ErrorContains(t, err, "failed to decode labels of run run-3")
		})
	})
}
