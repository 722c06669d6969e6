// Copyright 2026 The Bugconf Authors
// SPDX-License-Identifier: MIT

// Package proc runs the external launcher and reducer and reports how they
// terminated.
package proc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"syscall"
	"time"

	"github.com/davetashner/bugconf/internal/testable"
)

// ErrToolNotFound is returned when the program to run cannot be found.
var ErrToolNotFound = errors.New("tool not found")

// waitDelay bounds how long Run waits for the child's output pipes after
// the child was killed.
const waitDelay = 5 * time.Second

// Options controls one run.
type Options struct {
	// Timeout kills the child after this long. Zero means no timeout.
	Timeout time.Duration

	// Dir is the working directory. Empty means the current directory.
	Dir string

	// Stdout and Stderr receive the child's output. Nil discards it.
	Stdout io.Writer
	Stderr io.Writer
}

// Outcome describes how the child terminated.
type Outcome struct {
	// ExitCode is the child's exit status, 128+N if it died from signal N
	// and -1 if it timed out.
	ExitCode int

	// TimedOut is set when the child was killed because Timeout elapsed.
	TimedOut bool

	// Duration is the wall time of the run.
	Duration time.Duration
}

// Success reports whether the child exited with status 0.
func (o Outcome) Success() bool {
	return !o.TimedOut && o.ExitCode == 0
}

// Run starts argv and waits for it. A non-zero exit is reported in Outcome,
// not as an error; errors are reserved for failures to start the child and
// for cancellation of ctx. Cancelling ctx interrupts the child.
func Run(ctx context.Context, executor testable.CommandExecutor, argv []string, opts Options) (Outcome, error) {
	if len(argv) == 0 {
		return Outcome{}, fmt.Errorf("empty command")
	}
	if executor == nil {
		executor = testable.DefaultExecutor()
	}

	if _, err := executor.LookPath(argv[0]); err != nil {
		return Outcome{}, fmt.Errorf("%w: %s: %w", ErrToolNotFound, argv[0], err)
	}

	runCtx := ctx
	var cancel context.CancelFunc = func() {}
	if opts.Timeout > 0 {
		runCtx, cancel = context.WithTimeout(ctx, opts.Timeout)
	}
	defer cancel()

	start := time.Now()
	cmd := executor.CommandContext(runCtx, argv[0], argv[1:]...)
	cmd.Dir = opts.Dir
	cmd.Stdout = opts.Stdout
	cmd.Stderr = opts.Stderr
	cmd.Cancel = func() error {
		return cmd.Process.Signal(os.Interrupt)
	}
	cmd.WaitDelay = waitDelay

	if err := cmd.Start(); err != nil {
		return Outcome{}, fmt.Errorf("starting %s: %w", argv[0], err)
	}
	err := cmd.Wait()
	out := Outcome{Duration: time.Since(start)}

	if ctx.Err() != nil {
		return out, ctx.Err()
	}
	if opts.Timeout > 0 && errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		out.TimedOut = true
		out.ExitCode = -1
		return out, nil
	}

	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return out, fmt.Errorf("waiting for %s: %w", argv[0], err)
		}
		out.ExitCode = exitErr.ExitCode()
		if status, ok := exitErr.Sys().(syscall.WaitStatus); ok && status.Signaled() {
			out.ExitCode = 128 + int(status.Signal())
		}
	}
	return out, nil
}
