package benchmark

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompare(t *testing.T) {
	comps := Compare(
		[]string{"B1", "B2", "old"},
		[]float64{100, 0, 5},
		[]string{"B1", "B2", "new"},
		[]float64{110, 7, 1},
	)

	assert.Len(t, comps, 2)

	assert.Equal(t, "B1", comps[0].Metric)
	assert.InDelta(t, 10.0, comps[0].DiffPercent, 0.01)
	assert.Equal(t, "B1: 100.0000 -> 110.0000 (+10.00%)", comps[0].String())

	// Zero baseline has no relative change.
	assert.Equal(t, "B2", comps[1].Metric)
	assert.Equal(t, 0.0, comps[1].DiffPercent)
}

func TestCompare_ShortValues(t *testing.T) {
	comps := Compare([]string{"a", "b"}, []float64{1}, []string{"a", "b"}, []float64{2, 3})
	assert.Len(t, comps, 1)
	assert.InDelta(t, 100.0, comps[0].DiffPercent, 0.001)
}
