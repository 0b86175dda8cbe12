package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"heartlog/internal/config"
	"heartlog/internal/logfile"
	"heartlog/internal/observ"
	"heartlog/internal/trace"
)

// recentLines is how many trace lines are kept for stall and exit dumps.
const recentLines = 64

// session is everything a traced command needs besides the tracker, which
// travels in the command context.
type session struct {
	settings config.Settings
	logPath  string
	log      *zap.Logger
}

// setupTracing loads the settings, opens the log file and builds the tracker.
// Settings failures are fatal: the command returns them and exits 1.
// It returns a cleanup function that stops the watchdog and closes the log.
func setupTracing(cmd *cobra.Command, stallAfter time.Duration) (*session, func(), error) {
	root := cmd.Root()

	settingsPath, err := root.PersistentFlags().GetString("settings")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get settings flag: %w", err)
	}
	verbose, err := root.PersistentFlags().GetBool("verbose")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get verbose flag: %w", err)
	}

	if settingsPath == "" {
		settingsPath, err = config.Find(".")
		if err != nil {
			return nil, nil, err
		}
	}
	settings, err := config.Load(settingsPath)
	if err != nil {
		return nil, nil, err
	}
	colorMode, err := readMode("color", settings.Output.Color)
	if err != nil {
		return nil, nil, err
	}

	log := observ.NewLogger(cmd.ErrOrStderr(), verbose)
	log.Debug("settings loaded", zap.String("path", settingsPath))

	file, err := logfile.Open(logfile.Options{
		Dir:        settings.Output.LogDir,
		MaxSizeMB:  settings.Output.MaxSizeMB,
		MaxBackups: settings.Output.MaxBackups,
		Compress:   settings.Output.Compress,
	}, time.Now())
	if err != nil {
		return nil, nil, err
	}
	log.Debug("log file opened", zap.String("path", file.Path))

	recent := trace.NewRingSink(recentLines)
	sink := trace.NewMultiSink(trace.NewStreamSink(file), recent)
	console := cmd.OutOrStdout()
	em := trace.NewEmitter(sink, settings.PrintOptions(),
		trace.WithConsole(console),
		trace.WithColor(colorMode.enabled(console)),
	)
	tracker := trace.NewTracker(observ.LogFailures(em, log))

	ctx := trace.WithTracker(cmd.Context(), tracker)
	cmd.SetContext(ctx)

	var watchdog *trace.Watchdog
	if stallAfter > 0 {
		watchdog = trace.StartWatchdog(tracker, stallAfter/4, stallAfter, stallReporter(log, recent, cmd.ErrOrStderr()))
	}

	cleanup := func() {
		watchdog.Stop()
		if depth := tracker.Depth(); depth > 0 {
			log.Warn("exiting with open instrumented calls", zap.Int("depth", depth), zap.Int("turn", tracker.CurrentTurn()))
			dumpRecent(log, recent, cmd.ErrOrStderr())
		}
		if err := sink.Close(); err != nil {
			log.Error("failed to close log file", zap.String("path", file.Path), zap.Error(err))
		}
		_ = log.Sync() //nolint:errcheck
	}

	return &session{
		settings: settings,
		logPath:  file.Path,
		log:      log,
	}, cleanup, nil
}

// stallReporter logs a stall and dumps the trace lines leading up to it.
func stallReporter(log *zap.Logger, recent *trace.RingSink, w io.Writer) func(trace.Stall) {
	report := observ.StallReporter(log)
	return func(s trace.Stall) {
		report(s)
		dumpRecent(log, recent, w)
	}
}

func dumpRecent(log *zap.Logger, recent *trace.RingSink, w io.Writer) {
	fmt.Fprintf(w, "last %d trace lines:\n", len(recent.Snapshot()))
	if err := recent.Dump(w); err != nil {
		log.Error("failed to dump recent trace lines", zap.Error(err))
	}
}
