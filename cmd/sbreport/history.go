package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"sbreport/internal/config"
	"sbreport/internal/db"
	"sbreport/internal/report"
	"sbreport/internal/ui"
)

var historyCmd = &cobra.Command{
	Use:   "history [benchmark]",
	Short: "List saved benchmark runs, or show the latest table of one benchmark",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of runs to list")
	rootCmd.AddCommand(historyCmd)
}

func openHistory() (db.Store, error) {
	h := config.Current().History
	store, err := newStoreFunc(db.StoreConfig{Type: h.Type, ConnectionString: h.DSN})
	if err != nil {
		return nil, fmt.Errorf("failed to open history store: %w", err)
	}
	return store, nil
}

func runHistory(cmd *cobra.Command, args []string) error {
	store, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	out := cmd.OutOrStdout()
	if len(args) == 1 {
		run, err := store.LatestRun(args[0])
		if err != nil {
			return err
		}
		if run == nil {
			return fmt.Errorf("no saved runs for benchmark %q", args[0])
		}
		table := report.NewTable(run.Labels)
		for _, row := range run.Rows {
			if err := table.Append(row); err != nil {
				return fmt.Errorf("run %s: %w", run.ID, err)
			}
		}
		fmt.Fprintf(out, "%s\n\n", ui.Title(fmt.Sprintf("%s (%s, %s)", run.Benchmark, run.ID, humanize.Time(run.CreatedAt))))
		fmt.Fprintf(out, "`%s`\n\n%s\n", run.Command, table.String())
		return nil
	}

	limit, _ := cmd.Flags().GetInt("limit")
	runs, err := store.ListRuns(limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(out, "No saved runs.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, ui.Header("ID")+"\t"+ui.Header("BENCHMARK")+"\t"+ui.Header("RUNS")+"\t"+ui.Header("WHEN")+"\t"+ui.Header("FIRST METRIC"))
	for _, r := range runs {
		first := "-"
		if len(r.Labels) > 0 && len(r.Means) > 0 {
			first = fmt.Sprintf("%s = %.4f", r.Labels[0], r.Means[0])
		}
		id, _, _ := strings.Cut(r.ID, "-")
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n", id, r.Benchmark, len(r.Rows), humanize.Time(r.CreatedAt), first)
	}
	return w.Flush()
}
