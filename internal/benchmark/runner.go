package benchmark

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"

	"sbreport/internal/db"
	"sbreport/internal/report"
	"sbreport/internal/sysbench"
	"sbreport/internal/telemetry"
	"sbreport/internal/ui"
)

// Options controls a suite run. Everything except Parse is optional.
type Options struct {
	Parse    sysbench.ParseOptions
	Progress io.Writer
	Metrics  *telemetry.Metrics
	// Store receives every averaged table once the whole suite succeeded.
	Store db.Store
	// Compare prints the change of each mean against the latest stored run.
	Compare bool
}

// Result is the averaged outcome of one benchmark.
type Result struct {
	Benchmark Benchmark
	Table     *report.Table
	Means     []float64
}

// Suite runs benchmarks sequentially, one child process at a time.
type Suite struct {
	runner     sysbench.Runner
	benchmarks []Benchmark
	opts       Options
	now        func() time.Time
}

func NewSuite(r sysbench.Runner, benchmarks []Benchmark, opts Options) *Suite {
	if opts.Progress == nil {
		opts.Progress = io.Discard
	}
	return &Suite{runner: r, benchmarks: benchmarks, opts: opts, now: time.Now}
}

func (s *Suite) progressf(format string, args ...any) {
	fmt.Fprintf(s.opts.Progress, format, args...)
}

// Run executes every benchmark and assembles the report. Any failure aborts
// the run; no partial report is returned.
func (s *Suite) Run(ctx context.Context) (*report.Report, []Result, error) {
	rep := report.New()
	results := make([]Result, 0, len(s.benchmarks))

	for i, b := range s.benchmarks {
		s.progressf("%s\n", ui.Title(fmt.Sprintf("[%d/%d] %s", i+1, len(s.benchmarks), b.Name)))
		table, err := s.RunBenchmark(ctx, b)
		if err != nil {
			s.progressf("%s\n", ui.Failure(fmt.Sprintf("%s failed", b.Name)))
			return nil, nil, fmt.Errorf("benchmark %s: %w", b.Name, err)
		}
		means, err := table.Means()
		if err != nil {
			return nil, nil, fmt.Errorf("benchmark %s: %w", b.Name, err)
		}
		if s.opts.Metrics != nil {
			s.opts.Metrics.SetMeans(b.Name, table.Labels(), means)
		}
		rep.Add(b.Command, table)
		results = append(results, Result{Benchmark: b, Table: table, Means: means})
	}

	if s.opts.Store != nil {
		if err := s.persist(results); err != nil {
			return nil, nil, err
		}
	}
	return rep, results, nil
}

// RunBenchmark runs the prepare step, b.Repeats parsed invocations and the
// cleanup step. Cleanup is attempted even when a repeat fails, and its own
// failure is logged without discarding the table.
func (s *Suite) RunBenchmark(ctx context.Context, b Benchmark) (*report.Table, error) {
	if b.Repeats <= 0 {
		return nil, fmt.Errorf("repeat count must be positive, got %d", b.Repeats)
	}

	if b.Prepare != "" {
		s.progressf("  %s\n", ui.Muted("prepare: "+b.Prepare))
		if _, err := s.runner.Run(ctx, b.Prepare); err != nil {
			return nil, fmt.Errorf("prepare: %w", err)
		}
	}
	if b.Cleanup != "" {
		defer func() {
			s.progressf("  %s\n", ui.Muted("cleanup: "+b.Cleanup))
			// Measurements are already taken; a failed cleanup only leaves files behind.
			if _, cerr := s.runner.Run(context.WithoutCancel(ctx), b.Cleanup); cerr != nil {
				telemetry.LogError("cleanup failed", cerr, "benchmark", b.Name)
				s.progressf("  %s\n", ui.Failure(fmt.Sprintf("cleanup failed: %v", cerr)))
			}
		}()
	}

	table := report.NewTable(b.Kind.Labels())
	for i := 0; i < b.Repeats; i++ {
		start := s.now()
		row, err := sysbench.RunAndParse(ctx, s.runner, b.Kind, b.Command, s.opts.Parse)
		elapsed := s.now().Sub(start)
		if s.opts.Metrics != nil {
			s.opts.Metrics.ObserveInvocation(b.Name, elapsed, err)
		}
		if err != nil {
			return nil, fmt.Errorf("run %d/%d: %w", i+1, b.Repeats, err)
		}
		if err := table.Append(row); err != nil {
			return nil, fmt.Errorf("run %d/%d: %w", i+1, b.Repeats, err)
		}
		telemetry.LogInfo("benchmark run finished", "benchmark", b.Name, "run", i+1, "of", b.Repeats, "duration", elapsed)
		s.progressf("  run %d/%d done in %s\n", i+1, b.Repeats, elapsed.Round(time.Millisecond))
	}
	return table, nil
}

func (s *Suite) persist(results []Result) error {
	for _, r := range results {
		if s.opts.Compare {
			if err := s.printComparison(r); err != nil {
				return err
			}
		}
		run := &db.Run{
			Benchmark: r.Benchmark.Name,
			Command:   r.Benchmark.Command,
			Labels:    r.Table.Labels(),
			Rows:      r.Table.Rows(),
			Means:     r.Means,
		}
		if err := s.opts.Store.SaveRun(run); err != nil {
			return fmt.Errorf("save %s history: %w", r.Benchmark.Name, err)
		}
		telemetry.LogDebug("saved run", "benchmark", run.Benchmark, "id", run.ID)
	}
	return nil
}

func (s *Suite) printComparison(r Result) error {
	prev, err := s.opts.Store.LatestRun(r.Benchmark.Name)
	if err != nil {
		return err
	}
	if prev == nil {
		s.progressf("%s\n", ui.Muted(r.Benchmark.Name+": no previous run to compare"))
		return nil
	}
	s.progressf("%s\n", ui.Title(fmt.Sprintf("%s vs run of %s", r.Benchmark.Name, humanize.Time(prev.CreatedAt))))
	for _, c := range Compare(prev.Labels, prev.Means, r.Table.Labels(), r.Means) {
		s.progressf("  %s\n", ui.Diff(c.String(), c.DiffPercent))
	}
	return nil
}
