package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"heartlog/internal/logparse"
	"heartlog/internal/ui"
)

var browseCmd = &cobra.Command{
	Use:   "browse <log>",
	Short: "Browse a trace log interactively",
	Long: `Open a trace log in a terminal browser listing its turns. Enter shows the
records of the selected turn. Without a terminal (or with --ui=off) the summary
table is printed instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runBrowse,
}

func init() {
	browseCmd.Flags().String("ui", "auto", "user interface mode (auto|on|off)")
}

func runBrowse(cmd *cobra.Command, args []string) error {
	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	uiMode, err := readMode("ui", uiFlag)
	if err != nil {
		return err
	}

	recs, err := logparse.ReadFile(args[0])
	if err != nil {
		return err
	}
	title := filepath.Base(args[0])

	if !uiMode.enabled(os.Stdout) {
		return ui.RenderSummary(cmd.OutOrStdout(), title, logparse.Summarize(recs), terminalWidth(os.Stdout, 100))
	}

	program := tea.NewProgram(ui.NewBrowseModel(title, recs), tea.WithOutput(os.Stdout), tea.WithAltScreen())
	_, err = program.Run()
	return err
}
