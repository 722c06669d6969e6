// Copyright 2026 The Bugconf Authors
// SPDX-License-Identifier: MIT

package dispatch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/fatih/color"

	"github.com/davetashner/bugconf/internal/build"
	"github.com/davetashner/bugconf/internal/cli"
	"github.com/davetashner/bugconf/internal/command"
	"github.com/davetashner/bugconf/internal/config"
	"github.com/davetashner/bugconf/internal/crashlog"
	"github.com/davetashner/bugconf/internal/option"
	"github.com/davetashner/bugconf/internal/proc"
)

var originColors = map[config.Origin]*color.Color{
	config.OriginDefaults: color.New(color.FgCyan),
	config.OriginProject:  color.New(color.FgGreen),
	config.OriginCLI:      color.New(color.FgYellow),
	config.OriginExplicit: color.New(color.FgMagenta),
}

func (d *Dispatcher) repro(ctx context.Context, store *config.Store, p cli.Parsed) error {
	s := store.Settings()
	launcher, err := command.LookupLauncher(s.ReproDialect)
	if err != nil {
		return err
	}
	if err := requireOptions(store, option.Build, option.Prefs); err != nil {
		return err
	}

	logDir := launcher.LogDir(s.LogFile)
	if err := crashlog.RemoveStale(d.fs, logDir); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	argv := launcher.Argv(s, p.Verbose, p.Testcase)
	d.logger.Debug("launching", "dialect", launcher.Name(), "argv", argv)
	d.logger.Info("running firefox", "build", s.Build)
	outcome, err := proc.Run(ctx, d.exec, argv, proc.Options{
		Timeout: time.Duration(s.Timeout) * time.Second,
		Stdout:  d.stdout,
		Stderr:  d.stderr,
	})
	if err != nil {
		return err
	}
	if outcome.TimedOut {
		d.logger.Info(fmt.Sprintf("testcase hit %ds timeout", s.Timeout))
	}
	d.logger.Info("firefox process closed", "exit_code", outcome.ExitCode, "duration", outcome.Duration.Round(time.Millisecond))

	d.summarize(logDir)
	d.reportBuild(s)

	if !outcome.Success() && !outcome.TimedOut {
		return &ExitError{Tool: launcher.Name(), Code: outcome.ExitCode}
	}
	return nil
}

func (d *Dispatcher) summarize(dir string) {
	logs, err := crashlog.Select(d.fs, dir)
	if err != nil {
		d.logger.Warn("reading logs", "error", err)
		return
	}
	err = crashlog.Write(d.stdout, d.fs, logs)
	switch {
	case errors.Is(err, crashlog.ErrNoLogs):
		d.logger.Warn("no stderr!")
	case err != nil:
		d.logger.Warn("writing crash summary", "error", err)
	}
}

func (d *Dispatcher) reportBuild(s config.Settings) {
	md, err := build.NewLocator(d.fs).ReadMetadata(s.BuildPath, s.Build)
	if err != nil {
		d.logger.Error("reading build metadata", "error", err)
		return
	}
	d.logger.Warn(fmt.Sprintf("run in %s rev %s", md.ShortProduct(), md.Revision))
}

func (d *Dispatcher) reduce(ctx context.Context, store *config.Store, p cli.Parsed) error {
	s := store.Settings()
	reducer, err := command.LookupReducer(s.ReduceDialect)
	if err != nil {
		return err
	}
	required := append([]string{option.Build, option.Prefs}, reducer.Requires()...)
	if err := requireOptions(store, required...); err != nil {
		return err
	}

	argv := reducer.Argv(s, p.Verbose, p.Testcase)
	d.logger.Debug("calling", "dialect", reducer.Name(), "argv", argv)
	outcome, err := proc.Run(ctx, d.exec, argv, proc.Options{Stdout: d.stdout, Stderr: d.stderr})
	if err != nil {
		return err
	}
	if !outcome.Success() {
		return &ExitError{Tool: reducer.Name(), Code: outcome.ExitCode}
	}
	return nil
}

func (d *Dispatcher) listBuilds(store *config.Store) error {
	for b, err := range store.Builds() {
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(d.stdout, b); err != nil {
			return err
		}
	}
	return nil
}

func (d *Dispatcher) show(store *config.Store) error {
	entries := store.Entries()
	if len(entries) == 0 {
		_, err := fmt.Fprintln(d.stdout, "No configuration set.")
		return err
	}
	for _, e := range entries {
		label := fmt.Sprintf("(%s)", e.Origin)
		if c, ok := originColors[e.Origin]; ok {
			label = c.Sprint(label)
		}
		if _, err := fmt.Fprintf(d.stdout, "%s = %v %s\n", e.Name, e.Value, label); err != nil {
			return err
		}
	}
	return nil
}
