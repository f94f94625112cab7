package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"sbreport/internal/report"
	"sbreport/internal/sysbench"
)

var parseCmd = &cobra.Command{
	Use:   "parse --kind <cpu|threads|memory|fileio> [file]",
	Short: "Parse saved sysbench output and print the extracted metrics",
	Long: `Reads the output of one sysbench run from a file (or stdin when the file is
omitted or "-") and prints every metric the report would contain. Useful for
checking a new sysbench version against the expected layout.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().StringP("kind", "k", "", "Benchmark kind of the output")
	parseCmd.Flags().Bool("markdown", false, "Print a one-row report table instead of label/value pairs")
	_ = parseCmd.MarkFlagRequired("kind")
	parseCmd.Flags().Bool("strict", false, "Check section labels")
	rootCmd.AddCommand(parseCmd)
}

func readInput(cmd *cobra.Command, args []string) (string, error) {
	var data []byte
	var err error
	if len(args) == 0 || args[0] == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(args[0])
	}
	if err != nil {
		return "", fmt.Errorf("failed to read output: %w", err)
	}
	return string(data), nil
}

func runParse(cmd *cobra.Command, args []string) error {
	kindName, _ := cmd.Flags().GetString("kind")
	kind, err := sysbench.ParseKind(kindName)
	if err != nil {
		return err
	}
	strict, _ := cmd.Flags().GetBool("strict")
	opts := sysbench.ParseOptions{StrictLabels: strict || viper.GetBool("strict_labels")}

	output, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	cursor := sysbench.NewCursor(output)
	row, err := sysbench.Parse(kind, cursor, opts)
	if err != nil {
		return err
	}

	labels := kind.Labels()
	if md, _ := cmd.Flags().GetBool("markdown"); md {
		table := report.NewTable(labels)
		if err := table.Append(row); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), table.String())
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "METRIC\tVALUE")
	for i, l := range labels {
		fmt.Fprintf(w, "%s\t%g\n", l, row[i])
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "\n%d lines read, %d of them %s header\n", cursor.Consumed(), kind.HeaderLines(), kind)
	return nil
}
