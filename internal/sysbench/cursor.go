package sysbench

import (
	"bufio"
	"fmt"
	"strings"

	"sbreport/internal/telemetry"
)

const maxLineSize = 1024 * 1024

// Cursor walks captured sysbench output one trimmed, non-empty line at a
// time. It is forward-only: consumed lines cannot be read again.
type Cursor struct {
	scanner  *bufio.Scanner
	consumed int
}

// NewCursor wraps the raw output of one benchmark invocation.
func NewCursor(output string) *Cursor {
	scanner := bufio.NewScanner(strings.NewReader(output))
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &Cursor{scanner: scanner}
}

// Next consumes and returns the next non-empty line.
func (c *Cursor) Next() (string, error) {
	for c.scanner.Scan() {
		line := strings.TrimSpace(c.scanner.Text())
		if line == "" {
			continue
		}
		c.consumed++
		telemetry.LogDebug("consumed line", "n", c.consumed, "line", line)
		return line, nil
	}
	if err := c.scanner.Err(); err != nil {
		return "", fmt.Errorf("read output after %d lines: %w", c.consumed, err)
	}
	return "", fmt.Errorf("%w after %d lines", ErrExhaustedInput, c.consumed)
}

// Fields consumes the next line and splits it on whitespace.
func (c *Cursor) Fields() ([]string, string, error) {
	line, err := c.Next()
	if err != nil {
		return nil, "", err
	}
	return strings.Fields(line), line, nil
}

// Skip discards n lines.
func (c *Cursor) Skip(n int) error {
	for i := 0; i < n; i++ {
		if _, err := c.Next(); err != nil {
			return err
		}
	}
	return nil
}

// Consumed returns the number of lines read so far.
func (c *Cursor) Consumed() int {
	return c.consumed
}
