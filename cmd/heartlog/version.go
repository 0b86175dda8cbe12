package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"heartlog/internal/config"
	"heartlog/internal/trace"
	"heartlog/internal/version"
)

// versionInfo is what `heartlog version` reports: the build and the file
// formats this build writes and reads.
type versionInfo struct {
	Version          string
	GitCommit        string
	BuildDate        string
	LogFormat        int
	TraceLayout      string
	ComplexityLayout string
	SettingsFiles    []string
}

type versionOptions struct {
	format   string
	showHash bool
	showDate bool
}

type versionPayload struct {
	Tool             string   `json:"tool"`
	Version          string   `json:"version"`
	LogFormat        int      `json:"log_format"`
	TraceLayout      string   `json:"trace_layout"`
	ComplexityLayout string   `json:"complexity_layout"`
	SettingsFiles    []string `json:"settings_files"`
	GitCommit        string   `json:"git_commit,omitempty"`
	BuildDate        string   `json:"build_date,omitempty"`
}

var (
	versionFormat   string
	versionShowHash bool
	versionShowDate bool
	versionShowFull bool
)

func init() {
	versionCmd.Flags().BoolVar(&versionShowHash, "hash", false, "include git commit hash")
	versionCmd.Flags().BoolVar(&versionShowDate, "date", false, "include build timestamp")
	versionCmd.Flags().BoolVar(&versionShowFull, "full", false, "show all build metadata")
	versionCmd.Flags().StringVar(&versionFormat, "format", "pretty", "output format (pretty|json)")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the build and the log and settings formats it uses",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := versionOptions{
			format:   strings.ToLower(versionFormat),
			showHash: versionShowHash || versionShowFull,
			showDate: versionShowDate || versionShowFull,
		}

		info := collectVersionInfo()
		switch opts.format {
		case "json":
			return renderVersionJSON(cmd.OutOrStdout(), info, opts)
		case "pretty":
			renderVersionPretty(cmd.OutOrStdout(), info, opts)
			return nil
		default:
			return fmt.Errorf("unsupported format %q (must be pretty or json)", versionFormat)
		}
	},
}

func collectVersionInfo() versionInfo {
	v := strings.TrimSpace(version.Version)
	if v == "" {
		v = "dev"
	}
	return versionInfo{
		Version:          v,
		GitCommit:        strings.TrimSpace(version.GitCommit),
		BuildDate:        strings.TrimSpace(version.BuildDate),
		LogFormat:        version.LogFormat,
		TraceLayout:      trace.TraceLayout,
		ComplexityLayout: trace.ComplexityLayout,
		SettingsFiles:    []string{config.TOMLFile, config.JSONFile},
	}
}

func renderVersionPretty(out io.Writer, info versionInfo, opts versionOptions) {
	fmt.Fprintf(out, "heartlog %s\n", version.Colored(info.Version))
	fmt.Fprintf(out, "log format: v%d\n", info.LogFormat)
	fmt.Fprintf(out, "  trace:      %s\n", info.TraceLayout)
	fmt.Fprintf(out, "  complexity: %s\n", info.ComplexityLayout)
	fmt.Fprintf(out, "settings:   %s\n", strings.Join(info.SettingsFiles, ", "))
	if opts.showHash {
		fmt.Fprintf(out, "commit:     %s\n", valueOrUnknown(info.GitCommit))
	}
	if opts.showDate {
		fmt.Fprintf(out, "built:      %s\n", valueOrUnknown(info.BuildDate))
	}
}

func renderVersionJSON(out io.Writer, info versionInfo, opts versionOptions) error {
	payload := versionPayload{
		Tool:             "heartlog",
		Version:          info.Version,
		LogFormat:        info.LogFormat,
		TraceLayout:      info.TraceLayout,
		ComplexityLayout: info.ComplexityLayout,
		SettingsFiles:    info.SettingsFiles,
	}
	if opts.showHash {
		payload.GitCommit = valueOrUnknown(info.GitCommit)
	}
	if opts.showDate {
		payload.BuildDate = valueOrUnknown(info.BuildDate)
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

func valueOrUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
