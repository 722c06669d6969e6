// Copyright 2026 The Bugconf Authors
// SPDX-License-Identifier: MIT

package command

import (
	"path/filepath"

	"github.com/davetashner/bugconf/internal/config"
)

// bytesPerMB converts the memory option to the byte count older ffpuppet
// releases expect.
const bytesPerMB = 1024 * 1024

// puppetPrefix returns the launcher invocation prefix.
func puppetPrefix(s config.Settings) argv {
	if s.Puppet != "" {
		return argv{s.Puppet}
	}
	return argv{"python3", "-m", "ffpuppet"}
}

// ffpuppet is the current launcher dialect: the binary is the first
// positional and the testcase is passed with -u.
type ffpuppet struct{}

func (ffpuppet) Name() string { return FFPuppet }

// LogDir is logfn itself; ffpuppet -l names a directory it creates.
func (ffpuppet) LogDir(logFile string) string {
	if logFile == "" {
		return "."
	}
	return filepath.Clean(logFile)
}

func (ffpuppet) Argv(s config.Settings, verbosity int, testcase string) []string {
	a := puppetPrefix(s)
	a.add(s.Binary(), "-p", s.Prefs)
	a.verbosity(verbosityCounted, verbosity)
	a.flag(s.Xvfb, "--xvfb")
	a.flag(s.GDB, "--gdb")
	a.flag(s.Valgrind, "--valgrind")
	a.flag(s.SafeMode, "--safe-mode")
	if s.Extension {
		a.value("-e", s.ExtensionPath)
	}
	a.intValue("-m", s.Memory)
	a.value("-l", s.LogFile)
	a.add("-u", testcase)
	return a
}

// ffpuppetLegacy is the launcher dialect of early ffpuppet releases: prefs
// come before the binary, memory is given in bytes and the testcase is the
// final positional.
type ffpuppetLegacy struct{}

func (ffpuppetLegacy) Name() string { return FFPuppetLegacy }

// LogDir is the parent of logfn; --log names the file prefix the launcher
// writes next to.
func (ffpuppetLegacy) LogDir(logFile string) string {
	if logFile == "" {
		return "."
	}
	return filepath.Dir(logFile)
}

func (ffpuppetLegacy) Argv(s config.Settings, verbosity int, testcase string) []string {
	a := puppetPrefix(s)
	a.add("-p", s.Prefs, s.Binary())
	a.verbosity(verbosityOnce, verbosity)
	a.flag(s.Xvfb, "--xvfb")
	a.flag(s.GDB, "--gdb")
	a.flag(s.Valgrind, "--valgrind")
	a.flag(s.SafeMode, "--safe-mode")
	if s.Extension {
		a.value("--extension", s.ExtensionPath)
	}
	a.intValue("--memory", s.Memory*bytesPerMB)
	a.value("--log", s.LogFile)
	a.add(testcase)
	return a
}
