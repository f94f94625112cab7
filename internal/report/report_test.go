package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReport_Render(t *testing.T) {
	t1 := NewTable([]string{"a"})
	require.NoError(t, t1.Append([]float64{1}))
	t2 := NewTable([]string{"b"})
	require.NoError(t, t2.Append([]float64{2}))

	r := New()
	r.Add("sysbench cpu run", t1)
	r.Add("sysbench threads run", t2)

	got, err := r.Render()
	require.NoError(t, err)
	want := "`sysbench cpu run`\n\n" +
		"|     | a |\n| --- | - |\n| 1 | 1.0 |\n| Avg | 1.0000 |\n\n" +
		"`sysbench threads run`\n\n" +
		"|     | b |\n| --- | - |\n| 1 | 2.0 |\n| Avg | 2.0000 |"
	assert.Equal(t, want, got)
	assert.Len(t, r.Sections(), 2)
}

func TestReport_WriteFile(t *testing.T) {
	table := NewTable([]string{"a"})
	require.NoError(t, table.Append([]float64{1}))
	r := New()
	r.Add("cmd", table)

	path := filepath.Join(t.TempDir(), "report.md")
	require.NoError(t, r.WriteFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "`cmd`")
	assert.Contains(t, string(data), "| Avg | 1.0000 |")
}

func TestReport_WriteFile_EmptyTableWritesNothing(t *testing.T) {
	r := New()
	r.Add("cmd", NewTable([]string{"a"}))

	path := filepath.Join(t.TempDir(), "report.md")
	assert.ErrorIs(t, r.WriteFile(path), ErrNoRows)
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}
