package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"heartlog/internal/trace"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run an instrumented sample workload",
	Long: `Run a small instrumented workload and write its trace to a new log file.

The workload covers a wrapped free function, a wrapped method logging loop
iterations (optionally calling a nested instrumented method) and a method that
logs its own Start/End records together with a complexity note.`,
	Args: cobra.NoArgs,
	RunE: runDemo,
}

func init() {
	demoCmd.Flags().Int("iterations", 5, "loop iterations logged by the wrapped method")
	demoCmd.Flags().Bool("nested", false, "call a nested instrumented method inside the loop method")
	demoCmd.Flags().Duration("stall-after", 0, "report instrumented calls open longer than this (0 disables)")
	demoCmd.Flags().Duration("pause", 0, "sleep between loop iterations")
	addProfileFlags(demoCmd)
}

func runDemo(cmd *cobra.Command, args []string) error {
	iterations, err := cmd.Flags().GetInt("iterations")
	if err != nil {
		return fmt.Errorf("failed to get iterations flag: %w", err)
	}
	if iterations < 0 {
		return fmt.Errorf("iterations must be >= 0, got %d", iterations)
	}
	nested, err := cmd.Flags().GetBool("nested")
	if err != nil {
		return fmt.Errorf("failed to get nested flag: %w", err)
	}
	stallAfter, err := cmd.Flags().GetDuration("stall-after")
	if err != nil {
		return fmt.Errorf("failed to get stall-after flag: %w", err)
	}

	pause, err := cmd.Flags().GetDuration("pause")
	if err != nil {
		return fmt.Errorf("failed to get pause flag: %w", err)
	}

	sess, cleanup, err := setupTracing(cmd, stallAfter)
	if err != nil {
		return err
	}
	defer cleanup()

	stopProfiling, err := setupProfiling(cmd, sess.log)
	if err != nil {
		return err
	}
	defer stopProfiling()

	tracker, ok := trace.FromContext(cmd.Context())
	if !ok {
		return errors.New("no tracker in command context")
	}
	w := &workload{
		tracker:    tracker,
		out:        cmd.OutOrStdout(),
		iterations: iterations,
		nested:     nested,
		pause:      pause,
	}
	if err := w.run(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "log: %s (%d turns)\n", sess.logPath, tracker.CurrentTurn()-trace.FirstTurn)
	return nil
}

const demoFile = "demo.go"

var (
	subjectFunc    = trace.Func(demoFile, "test_func")
	subjectLoop    = trace.Method(demoFile, "TestClass", "test_method")
	subjectManual  = trace.Method(demoFile, "TestClass", "test_method2")
	subjectNested  = trace.Method(demoFile, "TestClass", "test_method3")
	demoComplexity = "K"
)

// workload is the sample program traced by the demo command.
type workload struct {
	tracker    *trace.Tracker
	out        io.Writer
	iterations int
	nested     bool
	pause      time.Duration
}

// run executes one turn per top-level call.
func (w *workload) run() error {
	testFunc := trace.WrapFunc(w.tracker, subjectFunc, "description", func(p [2]string) (string, error) {
		s := p[0] + " " + p[1]
		fmt.Fprintln(w.out, s)
		return s, nil
	})
	if _, err := testFunc([2]string{"value1", "value2"}); err != nil {
		return err
	}
	if err := w.testMethod(); err != nil {
		return err
	}
	return w.testMethod2("value3")
}

func (w *workload) testMethod() error {
	return w.tracker.Call(subjectLoop, "description", func() error {
		for i, n := 0, w.iterations; i < n; i++ {
			if err := w.tracker.Iteration(subjectLoop, i, "iteration "+strconv.Itoa(i)); err != nil {
				return err
			}
			fmt.Fprintln(w.out, i)
			if w.pause > 0 {
				time.Sleep(w.pause)
			}
		}
		if w.nested {
			return w.testMethod3()
		}
		return nil
	})
}

// testMethod2 logs its own records and closes its turn by hand.
// The turn advances on every exit path, even when Start fails.
func (w *workload) testMethod2(par string) (err error) {
	defer w.tracker.AdvanceTurn()
	if err := w.tracker.Mark(subjectManual, trace.Start, "description"); err != nil {
		return err
	}
	defer func() {
		if endErr := w.tracker.Mark(subjectManual, trace.End, "description"); endErr != nil && err == nil {
			err = endErr
		}
	}()
	if err := w.tracker.Complexity(subjectManual, demoComplexity); err != nil {
		return err
	}
	fmt.Fprintln(w.out, par)
	return nil
}

func (w *workload) testMethod3() error {
	return w.tracker.Call(subjectNested, "deep inside", func() error {
		fmt.Fprintln(w.out, "-------")
		return nil
	})
}
