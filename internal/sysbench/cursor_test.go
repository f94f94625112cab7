package sysbench

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursor_SkipsBlankLinesAndTrims(t *testing.T) {
	c := NewCursor("\n  first line  \n\n\t\nsecond\n   \n")

	line, err := c.Next()
	require.NoError(t, err)
	assert.Equal(t, "first line", line)

	fields, raw, err := c.Fields()
	require.NoError(t, err)
	assert.Equal(t, []string{"second"}, fields)
	assert.Equal(t, "second", raw)
	assert.Equal(t, 2, c.Consumed())

	_, err = c.Next()
	assert.ErrorIs(t, err, ErrExhaustedInput)
	assert.Contains(t, err.Error(), "after 2 lines")
}

func TestCursor_Skip(t *testing.T) {
	c := NewCursor("a\nb\nc\n")
	require.NoError(t, c.Skip(2))

	line, err := c.Next()
	require.NoError(t, err)
	assert.Equal(t, "c", line)

	err = NewCursor("a\n").Skip(3)
	assert.True(t, errors.Is(err, ErrExhaustedInput))
}

func TestCursor_Empty(t *testing.T) {
	_, err := NewCursor("").Next()
	assert.ErrorIs(t, err, ErrExhaustedInput)
}
