package sysbench

import (
	"errors"
	"fmt"
	"strings"
)

// ErrExhaustedInput is returned when a parser asks for a line the captured
// output does not have. It usually means the sysbench version prints a
// different layout or the run died early.
var ErrExhaustedInput = errors.New("sysbench output exhausted")

// FormatError reports a line that is present but does not have the expected
// shape.
type FormatError struct {
	Field string // metric being extracted, e.g. "latency min"
	Pos   int    // token position, -1 when the whole line was checked
	Line  string
	Err   error
}

func (e *FormatError) Error() string {
	if e.Pos < 0 {
		return fmt.Sprintf("unexpected format for %s: %q: %v", e.Field, e.Line, e.Err)
	}
	return fmt.Sprintf("unexpected format for %s (token %d): %q: %v", e.Field, e.Pos, e.Line, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// ProcessError is returned when the benchmark process cannot be started or
// exits with a non-zero status. Output is never parsed in that case.
type ProcessError struct {
	Command  string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *ProcessError) Error() string {
	msg := fmt.Sprintf("command %q failed", e.Command)
	if e.ExitCode > 0 {
		msg += fmt.Sprintf(" with exit code %d", e.ExitCode)
	}
	msg += ": " + e.Err.Error()
	if tail := strings.TrimSpace(e.Stderr); tail != "" {
		msg += "\nstderr:\n" + tail
	}
	return msg
}

func (e *ProcessError) Unwrap() error {
	return e.Err
}
