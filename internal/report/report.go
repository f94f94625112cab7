package report

import (
	"fmt"
	"strings"

	"github.com/moby/sys/atomicwriter"
)

// Section pairs a benchmark command with the table of its runs.
type Section struct {
	Command string
	Table   *Table
}

// Report is the ordered list of benchmark sections written to report.md.
type Report struct {
	sections []Section
}

func New() *Report {
	return &Report{}
}

// Add appends a section.
func (r *Report) Add(command string, table *Table) {
	r.sections = append(r.sections, Section{Command: command, Table: table})
}

// Sections returns the sections in insertion order.
func (r *Report) Sections() []Section {
	return append([]Section(nil), r.sections...)
}

// Render joins every command and table with blank lines.
func (r *Report) Render() (string, error) {
	parts := make([]string, 0, 2*len(r.sections))
	for _, s := range r.sections {
		table, err := s.Table.Render()
		if err != nil {
			return "", fmt.Errorf("render table for %q: %w", s.Command, err)
		}
		parts = append(parts, "`"+s.Command+"`", table)
	}
	return strings.Join(parts, "\n\n"), nil
}

// WriteFile renders the report and atomically replaces path with it.
func (r *Report) WriteFile(path string) error {
	content, err := r.Render()
	if err != nil {
		return err
	}
	if err := atomicwriter.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write report %s: %w", path, err)
	}
	return nil
}
