package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"heartlog/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "heartlog",
	Short: "Turn-based call tracing logs",
	Long: `heartlog records instrumented calls, loop iterations and complexity notes
as pipe-delimited lines grouped by turn, and reads those logs back.`,
}

func init() {
	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("settings", "", "settings file (default: heartlog.toml or log.json in the working directory)")
	rootCmd.PersistentFlags().Bool("verbose", false, "print debug diagnostics to stderr")
}

// main sets the CLI version and executes the root command.
// If command execution returns an error, the process exits with status code 1.
func main() {
	rootCmd.Version = version.Version

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// terminalWidth returns the width of f, or fallback when it is not a terminal.
func terminalWidth(f *os.File, fallback int) int {
	if !isTerminal(f) {
		return fallback
	}
	w, _, err := term.GetSize(int(f.Fd()))
	if err != nil || w <= 0 {
		return fallback
	}
	return w
}
