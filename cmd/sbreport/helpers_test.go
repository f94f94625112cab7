package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"sbreport/internal/db"
	"sbreport/internal/sysbench"
)

func executeCommand(root *cobra.Command, args ...string) (string, error) {
	return executeCommandWithInput(root, "", args...)
}

// executeCommandWithInput turns a call to exit into an "exit-N" error.
func executeCommandWithInput(root *cobra.Command, input string, args ...string) (out string, err error) {
	resetFlags(root)
	// Mock exit
	oldExit := exit
	exit = func(code int) {
		if code != 0 {
			panic(fmt.Sprintf("exit-%d", code))
		}
	}
	defer func() { exit = oldExit }()
	defer func() {
		if r := recover(); r != nil {
			if s, ok := r.(string); ok && strings.HasPrefix(s, "exit-") {
				err = errors.New(s)
				return
			}
			panic(r)
		}
	}()
	root.SetArgs(args)
	b := new(bytes.Buffer)
	root.SetOut(b)
	root.SetErr(b)
	root.SetIn(bytes.NewBufferString(input))
	defer func() { out = b.String() }()
	return "", root.ExecuteContext(context.Background())
}

// resetFlags resets all flags to their default values.
func resetFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if !f.Changed {
			return
		}
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	})
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// inTempDir runs the test from an empty directory so no config.yaml or
// .env is picked up and relative outputs land in the sandbox.
func inTempDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func fixture(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("..", "..", "internal", "sysbench", "testdata", name))
	require.NoError(t, err)
	return string(data)
}

type fakeRunner struct {
	outputs map[string]string
	fail    map[string]error
	calls   []string
}

func (f *fakeRunner) Run(ctx context.Context, command string) (string, error) {
	f.calls = append(f.calls, command)
	if err, ok := f.fail[command]; ok {
		return "", err
	}
	for prefix, out := range f.outputs {
		if strings.HasPrefix(command, prefix) {
			return out, nil
		}
	}
	return "", nil
}

// mockRunner answers every sysbench subcommand with its fixture. Fixtures
// must be read before the test changes directory.
func mockRunner(t *testing.T) *fakeRunner {
	t.Helper()
	r := &fakeRunner{
		outputs: map[string]string{
			"sysbench cpu ":     fixture(t, "cpu.txt"),
			"sysbench threads ": fixture(t, "threads.txt"),
			"sysbench memory ":  fixture(t, "memory.txt"),
		},
		fail: map[string]error{},
	}
	fileio := fixture(t, "fileio.txt")
	r.outputs["sysbench fileio --file-total-size=10G --file-test-mode"] = fileio

	old := newRunnerFunc
	newRunnerFunc = func(time.Duration) sysbench.Runner { return r }
	t.Cleanup(func() { newRunnerFunc = old })
	return r
}

// sqliteHistory points the history store at a database in dir.
func sqliteHistory(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "history.db")
	old := newStoreFunc
	newStoreFunc = func(cfg db.StoreConfig) (db.Store, error) {
		return db.NewSQLiteStore(path)
	}
	t.Cleanup(func() { newStoreFunc = old })
	return path
}
