package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"sbreport/internal/benchmark"
	"sbreport/internal/config"
	"sbreport/internal/db"
	"sbreport/internal/sysbench"
	"sbreport/internal/telemetry"
	"sbreport/internal/ui"
)

// Factories allow mocking in tests.
var (
	newRunnerFunc = func(timeout time.Duration) sysbench.Runner { return sysbench.NewExecRunner(timeout) }
	newStoreFunc  = func(cfg db.StoreConfig) (db.Store, error) { return db.NewStore(cfg) }
	askOneFunc    = survey.AskOne
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the benchmark suite and write the markdown report",
	Long: `Runs every benchmark of the suite sequentially, repeating each command
(--repeats, --fileio-repeats) and averaging the parsed metrics. The report is
written only when every run succeeded; any failure aborts the whole suite.`,
	Example: `  sbreport run
  sbreport run --only cpu,threads --repeats 3 -o quick.md
  sbreport run --save --compare`,
	RunE: runSuite,
}

func init() {
	f := runCmd.Flags()
	f.Int("repeats", config.DefaultRepeats, "Runs per benchmark")
	f.Int("fileio-repeats", config.DefaultFileIORepeats, "Runs of the file I/O benchmark")
	f.StringP("output", "o", config.DefaultOutput, "Report file")
	f.Duration("timeout", 0, "Timeout for a single sysbench invocation (0 = none)")
	f.Bool("strict", false, "Check section labels in sysbench output")
	f.StringSlice("only", nil, "Run only these benchmarks (cpu, threads, memory-write, memory-speed, fileio)")
	f.Bool("pick", false, "Choose benchmarks interactively")
	f.Bool("save", false, "Save averaged results to the history store")
	f.Bool("compare", false, "Compare averages with the latest saved run")
	f.String("metrics-file", "", "Write Prometheus metrics to this textfile")
	f.String("metrics-addr", "", "Serve Prometheus metrics on this address while running")

	bindFlags(f, map[string]string{
		"repeats":         "repeats",
		"fileio_repeats":  "fileio-repeats",
		"output":          "output",
		"timeout":         "timeout",
		"strict_labels":   "strict",
		"history.enabled": "save",
		"metrics_file":    "metrics-file",
		"metrics_addr":    "metrics-addr",
	})

	rootCmd.AddCommand(runCmd)
}

func selectBenchmarks(cmd *cobra.Command, suite []benchmark.Benchmark) ([]benchmark.Benchmark, error) {
	only, _ := cmd.Flags().GetStringSlice("only")
	if pick, _ := cmd.Flags().GetBool("pick"); pick {
		var options []string
		for _, b := range suite {
			options = append(options, b.Name)
		}
		prompt := &survey.MultiSelect{
			Message: "Select benchmarks to run:",
			Options: options,
			Default: options,
		}
		if err := askOneFunc(prompt, &only); err != nil {
			return nil, fmt.Errorf("selection cancelled: %w", err)
		}
		if len(only) == 0 {
			return nil, errors.New("no benchmark selected")
		}
	}
	return benchmark.Select(suite, only)
}

func runSuite(cmd *cobra.Command, args []string) error {
	settings := config.Current()
	out := cmd.OutOrStdout()

	suite, err := selectBenchmarks(cmd, benchmark.DefaultSuite(settings.Repeats, settings.FileIORepeats))
	if err != nil {
		return err
	}

	metrics := telemetry.NewMetrics()
	if settings.MetricsAddr != "" {
		go func() {
			if err := telemetry.StartMetricsServer(settings.MetricsAddr, metrics); err != nil {
				telemetry.LogError("metrics server stopped", err, "addr", settings.MetricsAddr)
			}
		}()
	}

	opts := benchmark.Options{
		Parse:    sysbench.ParseOptions{StrictLabels: settings.StrictLabels},
		Progress: out,
		Metrics:  metrics,
	}

	compare, _ := cmd.Flags().GetBool("compare")
	if settings.History.Enabled || compare {
		store, err := openHistory()
		if err != nil {
			return err
		}
		defer store.Close()
		opts.Compare = compare
		if settings.History.Enabled {
			opts.Store = store
		} else {
			opts.Store = readOnlyStore{store}
		}
	}

	telemetry.LogInfo("starting benchmark suite", "benchmarks", len(suite), "repeats", settings.Repeats, "fileio_repeats", settings.FileIORepeats)
	start := time.Now()

	rep, _, runErr := benchmark.NewSuite(newRunnerFunc(settings.Timeout), suite, opts).Run(cmd.Context())
	if runErr == nil {
		if runErr = rep.WriteFile(settings.Output); runErr == nil {
			metrics.MarkSuccess(time.Now())
		}
	}

	if settings.MetricsFile != "" {
		if err := metrics.WriteTextfile(settings.MetricsFile); err != nil {
			telemetry.LogError("failed to write metrics", err)
		}
	}
	if runErr != nil {
		return runErr
	}

	fmt.Fprintf(out, "%s\n", ui.Success(fmt.Sprintf("Report written to %s in %s", settings.Output, time.Since(start).Round(time.Second))))
	return nil
}

// readOnlyStore lets --compare read history without --save writing to it.
type readOnlyStore struct {
	db.Store
}

func (readOnlyStore) SaveRun(*db.Run) error { return nil }

