package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"heartlog/internal/logparse"
	"heartlog/internal/ui"
)

var summaryCmd = &cobra.Command{
	Use:   "summary <log>...",
	Short: "Summarize trace logs by turn",
	Long: `Parse one or more trace logs and print a table per log with the records,
iterations and complexity notes of every turn, and whether its Start/End
records are balanced.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSummary,
}

func init() {
	summaryCmd.Flags().Int("jobs", 0, "max parallel readers (0=auto)")
	summaryCmd.Flags().Int("width", 0, "table width (0=terminal width)")
}

func runSummary(cmd *cobra.Command, args []string) error {
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	width, err := cmd.Flags().GetInt("width")
	if err != nil {
		return fmt.Errorf("failed to get width flag: %w", err)
	}
	if width <= 0 {
		width = terminalWidth(os.Stdout, 100)
	}

	logs, err := logparse.ReadFiles(cmd.Context(), args, jobs)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for i, recs := range logs {
		if i > 0 {
			fmt.Fprintln(out)
		}
		if err := ui.RenderSummary(out, filepath.Base(args[i]), logparse.Summarize(recs), width); err != nil {
			return err
		}
	}
	return nil
}
