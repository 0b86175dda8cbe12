package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"heartlog/internal/prof"
)

func addProfileFlags(cmd *cobra.Command) {
	cmd.Flags().String("cpu-profile", "", "write a CPU profile of the run")
	cmd.Flags().String("mem-profile", "", "write a heap profile at the end of the run")
	cmd.Flags().String("runtime-trace", "", "write a Go runtime trace of the run")
}

// setupProfiling starts the profiles requested on cmd. The returned cleanup
// function stops them and logs write failures.
func setupProfiling(cmd *cobra.Command, log *zap.Logger) (func(), error) {
	var opts prof.Options
	var err error
	if opts.CPU, err = cmd.Flags().GetString("cpu-profile"); err != nil {
		return nil, fmt.Errorf("failed to get cpu-profile flag: %w", err)
	}
	if opts.Mem, err = cmd.Flags().GetString("mem-profile"); err != nil {
		return nil, fmt.Errorf("failed to get mem-profile flag: %w", err)
	}
	if opts.Trace, err = cmd.Flags().GetString("runtime-trace"); err != nil {
		return nil, fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}
	if !opts.Enabled() {
		return func() {}, nil
	}

	session, err := prof.Start(opts)
	if err != nil {
		return nil, err
	}
	return func() {
		if err := session.Stop(); err != nil {
			log.Error("failed to finish profiling", zap.Error(err))
		}
	}, nil
}
