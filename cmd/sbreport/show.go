package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sbreport/internal/config"
	"sbreport/internal/ui"
)

var showCmd = &cobra.Command{
	Use:   "show [report]",
	Short: "Render a markdown report in the terminal",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.Current().Output
		if len(args) > 0 {
			path = args[0]
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read report: %w", err)
		}

		if raw, _ := cmd.Flags().GetBool("raw"); raw {
			_, err := cmd.OutOrStdout().Write(data)
			return err
		}

		style, _ := cmd.Flags().GetString("style")
		width, _ := cmd.Flags().GetInt("width")
		fmt.Fprint(cmd.OutOrStdout(), ui.RenderMarkdown(string(data), width, style))
		return nil
	},
}

func init() {
	showCmd.Flags().Bool("raw", false, "Print the markdown without rendering")
	showCmd.Flags().String("style", "auto", "Glamour style: auto, dark, light or notty")
	showCmd.Flags().Int("width", 0, "Wrap width (0 = no wrapping)")
	rootCmd.AddCommand(showCmd)
}
