// Copyright 2026 The Bugconf Authors
// SPDX-License-Identifier: MIT

// Package option defines the static registry of bugconf options. Every
// other component (config store, CLI surface, command builders) derives its
// behavior from this table.
package option

import "strings"

// Kind is the value type of an option.
type Kind int

const (
	// Bool options are presence flags on the command line.
	Bool Kind = iota
	// Int options take one integer argument.
	Int
	// String options take one string argument.
	String
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case Bool:
		return "bool"
	case Int:
		return "int"
	case String:
		return "string"
	default:
		return "unknown"
	}
}

// Descriptor describes one registered option.
type Descriptor struct {
	// Name is the unique key used in config files.
	Name string

	// Short is an optional alias. Single-character aliases become flag
	// shorthands, longer ones become hidden long aliases.
	Short string

	// Help is the usage text shown by --help.
	Help string

	// Kind is the option's value type.
	Kind Kind

	// Path marks values that are ~-expanded when read back.
	Path bool

	// Validated marks options checked against discovered builds on assignment.
	Validated bool
}

// Flag returns the long flag name for the option (underscores become dashes).
func (d Descriptor) Flag() string {
	return strings.ReplaceAll(d.Name, "_", "-")
}

// Shorthand returns the single-character flag alias, or "".
func (d Descriptor) Shorthand() string {
	if len(d.Short) == 1 {
		return d.Short
	}
	return ""
}

// Alias returns the multi-character long alias, or "".
func (d Descriptor) Alias() string {
	if len(d.Short) > 1 {
		return d.Short
	}
	return ""
}

// Option names referenced directly by code.
const (
	AnyCrash      = "any_crash"
	Build         = "build"
	BuildPath     = "buildpath"
	Char          = "char"
	Extension     = "extension"
	ExtensionPath = "extension_path"
	GDB           = "gdb"
	JS            = "js"
	LogFile       = "logfn"
	Memory        = "memory"
	MinCrashes    = "min_crashes"
	NoHarness     = "no_harness"
	Prefs         = "prefs"
	Puppet        = "puppet"
	ReduceDialect = "reduce_dialect"
	ReduceFile    = "reduce_file"
	Reducer       = "reducer"
	Repeat        = "repeat"
	ReproDialect  = "repro_dialect"
	SafeMode      = "safemode"
	Sig           = "sig"
	Skip          = "skip"
	Strategy      = "strategy"
	Symbol        = "symbol"
	Timeout       = "timeout"
	Valgrind      = "valgrind"
	Xvfb          = "xvfb"
)

// registry is kept sorted by name.
var registry = []Descriptor{
	{Name: AnyCrash, Help: "Any crash is interesting during reduction", Kind: Bool},
	{Name: Build, Short: "b", Help: "Folder name of downloaded build (relative to buildpath)", Kind: String, Validated: true},
	{Name: BuildPath, Short: "bp", Help: "Path of downloaded builds", Kind: String, Path: true},
	{Name: Char, Short: "c", Help: "Use char reduction", Kind: Bool},
	{Name: Extension, Short: "e", Help: "Use DOMFuzz extension", Kind: Bool},
	{Name: ExtensionPath, Help: "Path to DOMFuzz extension", Kind: String, Path: true},
	{Name: GDB, Short: "g", Help: "Use GDB", Kind: Bool},
	{Name: JS, Short: "j", Help: "Use jsstr reduction", Kind: Bool},
	{Name: LogFile, Short: "l", Help: "Filename to save log to during repro", Kind: String, Path: true},
	{Name: Memory, Short: "m", Help: "Set memory limit (MB)", Kind: Int},
	{Name: MinCrashes, Short: "n", Help: "Require the testcase to crash n times before accepting the result", Kind: Int},
	{Name: NoHarness, Help: "Don't use a background tab to detect timeout", Kind: Bool},
	{Name: Prefs, Short: "p", Help: "Path to prefs.js to use", Kind: String, Path: true},
	{Name: Puppet, Help: "Path to the ffpuppet launcher (default: python3 -m ffpuppet)", Kind: String, Path: true},
	{Name: ReduceDialect, Help: "Reducer argument dialect (lithium, grizzly)", Kind: String},
	{Name: ReduceFile, Short: "rf", Help: "Testcase to reduce", Kind: String, Path: true},
	{Name: Reducer, Help: "Path to interesting.py", Kind: String, Path: true},
	{Name: Repeat, Help: "Run intermittent testcase reduction multiple times", Kind: Int},
	{Name: ReproDialect, Help: "Launcher argument dialect (ffpuppet, ffpuppet-legacy)", Kind: String},
	{Name: SafeMode, Help: "Launch in Safe Mode (requires interaction)", Kind: Bool},
	{Name: Sig, Help: "Specify signature to reduce", Kind: String},
	{Name: Skip, Help: "Skip n initial iterations", Kind: Int},
	{Name: Strategy, Help: "Use lithium strategy", Kind: String},
	{Name: Symbol, Help: "Use symbol reduction", Kind: Bool},
	{Name: Timeout, Short: "t", Help: "Kill firefox if the testcase doesn't terminate within n seconds", Kind: Int},
	{Name: Valgrind, Help: "Use Valgrind", Kind: Bool},
	{Name: Xvfb, Help: "Use Xvfb", Kind: Bool},
}

var byName = func() map[string]Descriptor {
	m := make(map[string]Descriptor, len(registry))
	for _, d := range registry {
		m[d.Name] = d
	}
	return m
}()

// All returns every registered option, sorted by name.
func All() []Descriptor {
	out := make([]Descriptor, len(registry))
	copy(out, registry)
	return out
}

// Lookup returns the descriptor for name.
func Lookup(name string) (Descriptor, bool) {
	d, ok := byName[name]
	return d, ok
}

// Names returns every registered option name, sorted.
func Names() []string {
	names := make([]string, len(registry))
	for i, d := range registry {
		names[i] = d.Name
	}
	return names
}
