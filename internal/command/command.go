// Copyright 2026 The Bugconf Authors
// SPDX-License-Identifier: MIT

// Package command translates resolved settings into the argument vectors of
// the external launcher (ffpuppet) and reducer (lithium, grizzly.reduce).
//
// Each tool generation speaks its own flag dialect. Dialects form a closed
// set chosen once at startup; each one owns its flag names and positional
// layout, and all of them are pure: identical settings and verbosity always
// produce the identical argv.
//
// Zero-valued options (false, 0, "") are treated as "not requested" and do
// not produce a flag. An explicit zero cannot be passed to a tool.
package command

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/davetashner/bugconf/internal/config"
)

// ErrUnknownDialect is returned when a dialect name is not registered.
var ErrUnknownDialect = errors.New("unknown dialect")

// Builder produces the argv of one external tool.
type Builder interface {
	// Name returns the dialect name.
	Name() string

	// Argv returns the full command line, program first.
	Argv(s config.Settings, verbosity int, testcase string) []string
}

// Launcher builds repro command lines.
type Launcher interface {
	Builder

	// LogDir returns the directory the launcher writes its logs to for the
	// given logfn. An empty logfn means the working directory.
	LogDir(logFile string) string
}

// Reducer builds reduce command lines.
type Reducer interface {
	Builder

	// Requires returns the options that must be set for this dialect, in
	// addition to build and prefs.
	Requires() []string
}

// Dialect names.
const (
	FFPuppet       = "ffpuppet"
	FFPuppetLegacy = "ffpuppet-legacy"
	Lithium        = "lithium"
	Grizzly        = "grizzly"
)

var launchers = map[string]Launcher{
	FFPuppet:       ffpuppet{},
	FFPuppetLegacy: ffpuppetLegacy{},
}

var reducers = map[string]Reducer{
	Lithium: lithium{},
	Grizzly: grizzlyReduce{},
}

// LookupLauncher returns the launcher dialect called name. The empty name
// selects the default (newest) dialect.
func LookupLauncher(name string) (Launcher, error) {
	if name == "" {
		name = FFPuppet
	}
	l, ok := launchers[name]
	if !ok {
		return nil, fmt.Errorf("%w %q for repro; known: %s", ErrUnknownDialect, name, strings.Join(LauncherNames(), ", "))
	}
	return l, nil
}

// LookupReducer returns the reducer dialect called name. The empty name
// selects lithium.
func LookupReducer(name string) (Reducer, error) {
	if name == "" {
		name = Lithium
	}
	r, ok := reducers[name]
	if !ok {
		return nil, fmt.Errorf("%w %q for reduce; known: %s", ErrUnknownDialect, name, strings.Join(ReducerNames(), ", "))
	}
	return r, nil
}

// LauncherNames returns the registered launcher dialects, sorted.
func LauncherNames() []string { return sortedKeys(launchers) }

// ReducerNames returns the registered reducer dialects, sorted.
func ReducerNames() []string { return sortedKeys(reducers) }

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// argv accumulates a command line.
type argv []string

func (a *argv) add(args ...string) {
	*a = append(*a, args...)
}

// flag appends name iff on.
func (a *argv) flag(on bool, name string) {
	if on {
		a.add(name)
	}
}

// value appends name and v iff v is non-empty.
func (a *argv) value(name, v string) {
	if v != "" {
		a.add(name, v)
	}
}

// intValue appends name and n iff n is non-zero.
func (a *argv) intValue(name string, n int) {
	if n != 0 {
		a.add(name, strconv.Itoa(n))
	}
}

// verbosityStyle is how a dialect spells the --verbose count.
type verbosityStyle int

const (
	// verbosityOnce emits a single -v for any non-zero count.
	verbosityOnce verbosityStyle = iota
	// verbosityPerLevel emits one -v per level.
	verbosityPerLevel
	// verbosityCounted emits one token with the count folded in: -vvv.
	verbosityCounted
)

func (a *argv) verbosity(style verbosityStyle, n int) {
	if n <= 0 {
		return
	}
	switch style {
	case verbosityOnce:
		a.add("-v")
	case verbosityPerLevel:
		for range n {
			a.add("-v")
		}
	case verbosityCounted:
		a.add("-" + strings.Repeat("v", n))
	}
}
