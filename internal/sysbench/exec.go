package sysbench

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/kballard/go-shellquote"

	"sbreport/internal/telemetry"
)

// Runner executes a benchmark command and returns its standard output.
type Runner interface {
	Run(ctx context.Context, command string) (string, error)
}

// execCommand allows mocking in tests.
var execCommand = exec.CommandContext

// ExecRunner runs commands as child processes, one at a time.
type ExecRunner struct {
	// Timeout bounds a single invocation. Zero waits forever.
	Timeout time.Duration
}

func NewExecRunner(timeout time.Duration) *ExecRunner {
	return &ExecRunner{Timeout: timeout}
}

func (r *ExecRunner) Run(ctx context.Context, command string) (string, error) {
	args, err := shellquote.Split(command)
	if err != nil {
		return "", fmt.Errorf("split command %q: %w", command, err)
	}
	if len(args) == 0 {
		return "", fmt.Errorf("empty command")
	}

	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	var stdout, stderr bytes.Buffer
	cmd := execCommand(ctx, args[0], args[1:]...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	telemetry.LogDebug("running benchmark command", "command", command)
	if err := cmd.Run(); err != nil {
		perr := &ProcessError{Command: command, Stderr: stderr.String(), Err: err}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			perr.ExitCode = exitErr.ExitCode()
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			perr.Err = fmt.Errorf("%w (%v)", ctxErr, err)
		}
		return "", perr
	}
	telemetry.LogDebug("benchmark command finished", "command", command, "duration", time.Since(start))

	return stdout.String(), nil
}

// RunAndParse runs command once and parses its output as kind.
func RunAndParse(ctx context.Context, r Runner, k Kind, command string, opts ParseOptions) (Row, error) {
	out, err := r.Run(ctx, command)
	if err != nil {
		return nil, err
	}
	return Parse(k, NewCursor(out), opts)
}
