package report

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	// ErrColumnMismatch is returned when a row does not have one value per label.
	ErrColumnMismatch = errors.New("row length does not match column count")
	// ErrNoRows is returned when averaging a table without rows.
	ErrNoRows = errors.New("table has no rows")
)

// Table accumulates one row of measurements per benchmark run.
type Table struct {
	labels []string
	rows   [][]float64
}

// NewTable creates an empty table with the given column labels.
func NewTable(labels []string) *Table {
	return &Table{labels: append([]string(nil), labels...)}
}

// Labels returns the column labels.
func (t *Table) Labels() []string {
	return append([]string(nil), t.labels...)
}

// Rows returns a copy of the accumulated rows.
func (t *Table) Rows() [][]float64 {
	rows := make([][]float64, len(t.rows))
	for i, r := range t.rows {
		rows[i] = append([]float64(nil), r...)
	}
	return rows
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

func (t *Table) checkRow(row []float64) error {
	if len(row) != len(t.labels) {
		return fmt.Errorf("%w: got %d values, want %d", ErrColumnMismatch, len(row), len(t.labels))
	}
	return nil
}

// Append adds a row.
func (t *Table) Append(row []float64) error {
	if err := t.checkRow(row); err != nil {
		return err
	}
	t.rows = append(t.rows, append([]float64(nil), row...))
	return nil
}

// Set replaces row i in place.
func (t *Table) Set(i int, row []float64) error {
	if i < 0 || i >= len(t.rows) {
		return fmt.Errorf("row index %d out of range [0,%d)", i, len(t.rows))
	}
	if err := t.checkRow(row); err != nil {
		return err
	}
	t.rows[i] = append([]float64(nil), row...)
	return nil
}

// Means returns the arithmetic mean of every column.
func (t *Table) Means() ([]float64, error) {
	if len(t.rows) == 0 {
		return nil, ErrNoRows
	}
	means := make([]float64, len(t.labels))
	for col := range t.labels {
		var sum float64
		for _, row := range t.rows {
			sum += row[col]
		}
		means[col] = sum / float64(len(t.rows))
	}
	return means, nil
}

// Mean returns the column means formatted to four decimal places.
func (t *Table) Mean() ([]string, error) {
	means, err := t.Means()
	if err != nil {
		return nil, err
	}
	out := make([]string, len(means))
	for i, m := range means {
		out[i] = strconv.FormatFloat(m, 'f', 4, 64)
	}
	return out, nil
}

// formatValue prints a measurement the way the report always has: shortest
// representation, with ".0" kept on whole numbers, switching to exponent
// form below 1e-4 and from 1e16 on.
func formatValue(v float64) string {
	if a := math.Abs(v); a != 0 && (a < 1e-4 || a >= 1e16) && !math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'e', -1, 64)
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}

func tableLine(cells []string) string {
	return "| " + strings.Join(cells, " | ") + " |"
}

// Render returns the table as markdown: header, separator, one numbered
// line per row and a final line of column means.
func (t *Table) Render() (string, error) {
	avg, err := t.Mean()
	if err != nil {
		return "", err
	}

	lines := make([]string, 0, len(t.rows)+3)
	lines = append(lines, tableLine(append([]string{"   "}, t.labels...)))

	sep := []string{"---"}
	for _, l := range t.labels {
		sep = append(sep, strings.Repeat("-", len(l)))
	}
	lines = append(lines, tableLine(sep))

	for i, row := range t.rows {
		cells := []string{strconv.Itoa(i + 1)}
		for _, v := range row {
			cells = append(cells, formatValue(v))
		}
		lines = append(lines, tableLine(cells))
	}
	lines = append(lines, tableLine(append([]string{"Avg"}, avg...)))

	return strings.Join(lines, "\n"), nil
}

func (t *Table) String() string {
	s, err := t.Render()
	if err != nil {
		return fmt.Sprintf("<table: %v>", err)
	}
	return s
}
