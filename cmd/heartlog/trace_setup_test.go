package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"heartlog/internal/trace"
)

const testSettings = `[LogParameters]
print_function = true
print_loop = true
print_if_statement = false
print_time_complexity = true

[Output]
log_dir = %q
color = "auto"
`

// newTracedCommand builds a command tree with the root flags setupTracing reads.
func newTracedCommand(t *testing.T) (*cobra.Command, *bytes.Buffer, *bytes.Buffer, string) {
	t.Helper()
	dir := t.TempDir()
	logDir := filepath.Join(dir, "logs")
	settings := filepath.Join(dir, "heartlog.toml")
	data := fmt.Sprintf(testSettings, filepath.ToSlash(logDir))
	if err := os.WriteFile(settings, []byte(data), 0o644); err != nil {
		t.Fatalf("write settings: %v", err)
	}

	root := &cobra.Command{Use: "heartlog"}
	root.PersistentFlags().String("settings", settings, "")
	root.PersistentFlags().Bool("verbose", false, "")
	child := &cobra.Command{Use: "run"}
	root.AddCommand(child)

	var stdout, stderr bytes.Buffer
	child.SetOut(&stdout)
	child.SetErr(&stderr)
	child.SetContext(context.Background())
	return child, &stdout, &stderr, logDir
}

func TestSetupTracingDumpsOpenCallsOnExit(t *testing.T) {
	cmd, stdout, stderr, logDir := newTracedCommand(t)

	sess, cleanup, err := setupTracing(cmd, 0)
	if err != nil {
		t.Fatalf("setupTracing: %v", err)
	}
	tracker, ok := trace.FromContext(cmd.Context())
	if !ok {
		t.Fatalf("tracker missing from command context")
	}
	tracker.Enter(trace.Func("main.go", "hang"), "never returns")
	cleanup()

	if !strings.Contains(stderr.String(), "last 1 trace lines:") ||
		!strings.Contains(stderr.String(), "[1]|[main.go]|[]|[hang]|[S]|") {
		t.Fatalf("stderr = %q, want a dump of the open call", stderr.String())
	}
	if strings.Contains(stdout.String(), "\x1b[") {
		t.Fatalf("console echo is coloured for a non-terminal writer: %q", stdout.String())
	}
	if !strings.Contains(stdout.String(), "[hang]|[S]") {
		t.Fatalf("stdout = %q, want the Start record echoed", stdout.String())
	}

	data, err := os.ReadFile(sess.logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.HasPrefix(sess.logPath, logDir) || !strings.Contains(string(data), "[hang]|[S]") {
		t.Fatalf("log %s = %q", sess.logPath, data)
	}
}

func TestStallReporterDumpsRecentLines(t *testing.T) {
	recent := trace.NewRingSink(2)
	for _, line := range []string{"a", "b", "c"} {
		if err := recent.WriteLine(line); err != nil {
			t.Fatalf("WriteLine: %v", err)
		}
	}
	var buf bytes.Buffer
	report := stallReporter(zap.NewNop(), recent, &buf)
	report(trace.Stall{Turn: 4, Depth: 1, For: time.Second})

	if got, want := buf.String(), "last 2 trace lines:\nb\nc\n"; got != want {
		t.Fatalf("dump = %q, want %q", got, want)
	}
}
