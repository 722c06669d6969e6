// Copyright 2026 The Bugconf Authors
// SPDX-License-Identifier: MIT

package command

import (
	"github.com/davetashner/bugconf/internal/config"
	"github.com/davetashner/bugconf/internal/option"
)

// lithium drives the lithium reducer with an interestingness script
// (interesting.py). Lithium's own options come before the script; the
// script's options follow it.
type lithium struct{}

func (lithium) Name() string { return Lithium }

func (lithium) Requires() []string { return []string{option.Reducer} }

func (lithium) Argv(s config.Settings, verbosity int, testcase string) []string {
	a := argv{"lithium"}
	a.flag(s.Char, "--char")
	a.flag(s.JS, "--js")
	a.value("--strategy", s.Strategy)
	a.flag(s.Symbol, "--symbol")
	a.value("--testcase", s.ReduceFile)

	a.add(s.Reducer, "-p", s.Prefs, s.Binary())
	a.flag(s.Xvfb, "--xvfb")
	a.flag(s.GDB, "--gdb")
	a.flag(s.Valgrind, "--valgrind")
	a.flag(s.AnyCrash, "--any-crash")
	a.intValue("--min-crashes", s.MinCrashes)
	a.flag(s.NoHarness, "--no-harness")
	a.intValue("--repeat", s.Repeat)
	a.value("--sig", s.Sig)
	a.intValue("--skip", s.Skip)
	a.verbosity(verbosityOnce, verbosity)
	a.add(testcase)
	return a
}

// grizzlyReduce drives grizzly.reduce, which embeds the launcher and needs
// no interestingness script.
type grizzlyReduce struct{}

func (grizzlyReduce) Name() string { return Grizzly }

func (grizzlyReduce) Requires() []string { return nil }

func (grizzlyReduce) Argv(s config.Settings, verbosity int, testcase string) []string {
	a := argv{"python3", "-m", "grizzly.reduce"}
	a.add(s.Binary(), "-p", s.Prefs)
	a.verbosity(verbosityPerLevel, verbosity)
	a.flag(s.Xvfb, "--xvfb")
	a.flag(s.GDB, "--gdb")
	a.flag(s.Valgrind, "--valgrind")
	a.flag(s.AnyCrash, "--any-crash")
	a.intValue("--min-crashes", s.MinCrashes)
	a.flag(s.NoHarness, "--no-harness")
	a.intValue("--repeat", s.Repeat)
	a.value("--sig", s.Sig)
	a.value("--strategy", s.Strategy)
	a.add(testcase)
	return a
}
