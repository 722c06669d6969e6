// Copyright 2026 The Bugconf Authors
// SPDX-License-Identifier: MIT

// Package cli generates the command-line surface of the bugconf entry
// points from the option registry.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/davetashner/bugconf/internal/option"
)

// Flags every entry point carries in addition to the registry options.
const (
	FlagWrite   = "write"
	FlagVerbose = "verbose"
)

// UsageError reports a malformed command line: an unknown flag, a missing
// or extra positional argument, or a value of the wrong type.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string { return e.Err.Error() }

func (e *UsageError) Unwrap() error { return e.Err }

// Parsed is the result of a successful parse.
type Parsed struct {
	// Overrides holds a typed value for every option flag the user gave
	// explicitly, keyed by option name. Flags left alone are absent, so a
	// boolean given as --xvfb=false is an explicit false.
	Overrides map[string]any

	// Write requests that the merged configuration be persisted.
	Write bool

	// Verbose is the number of times -v was given.
	Verbose int

	// Testcase is the positional argument, empty when the command takes none.
	Testcase string
}

// RunFunc is invoked with the parsed command line.
type RunFunc func(cmd *cobra.Command, p Parsed) error

// NewCommand builds the command for one entry point. The testcase
// positional is required when withTestcase is set and rejected otherwise.
func NewCommand(name string, withTestcase bool, run RunFunc) *cobra.Command {
	use := name + " [flags]"
	args := cobra.NoArgs
	if withTestcase {
		use += " <testcase>"
		args = cobra.ExactArgs(1)
	}

	cmd := &cobra.Command{
		Use:           use,
		Short:         "Run browser crash triage tools with a stored configuration",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, a []string) error {
			if err := args(cmd, a); err != nil {
				return &UsageError{Err: err}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, a []string) error {
			p, err := parse(cmd.Flags(), a)
			if err != nil {
				return err
			}
			return run(cmd, p)
		},
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &UsageError{Err: err}
	})

	fs := cmd.Flags()
	fs.SortFlags = true
	for _, d := range option.All() {
		addOption(fs, d)
	}
	fs.BoolP(FlagWrite, "w", false, "write the merged configuration to the project file")
	fs.CountP(FlagVerbose, "v", "increase verbosity (repeatable)")
	return cmd
}

// addOption registers the flag for d. A one-letter alias becomes the
// shorthand; a longer alias becomes a hidden flag sharing the same value.
func addOption(fs *pflag.FlagSet, d option.Descriptor) {
	switch d.Kind {
	case option.Bool:
		fs.BoolP(d.Flag(), d.Shorthand(), false, d.Help)
	case option.Int:
		fs.IntP(d.Flag(), d.Shorthand(), 0, d.Help)
	default:
		fs.StringP(d.Flag(), d.Shorthand(), "", d.Help)
	}

	alias := d.Alias()
	if alias == "" {
		return
	}
	primary := fs.Lookup(d.Flag())
	fs.AddFlag(&pflag.Flag{
		Name:        alias,
		Usage:       fmt.Sprintf("alias for --%s", d.Flag()),
		Value:       primary.Value,
		DefValue:    primary.DefValue,
		NoOptDefVal: primary.NoOptDefVal,
		Hidden:      true,
	})
}

// changed reports whether the user set d's flag or its alias.
func changed(fs *pflag.FlagSet, d option.Descriptor) bool {
	if fs.Changed(d.Flag()) {
		return true
	}
	return d.Alias() != "" && fs.Changed(d.Alias())
}

func parse(fs *pflag.FlagSet, args []string) (Parsed, error) {
	p := Parsed{Overrides: make(map[string]any)}
	for _, d := range option.All() {
		if !changed(fs, d) {
			continue
		}
		var (
			v   any
			err error
		)
		switch d.Kind {
		case option.Bool:
			v, err = fs.GetBool(d.Flag())
		case option.Int:
			v, err = fs.GetInt(d.Flag())
		default:
			v, err = fs.GetString(d.Flag())
		}
		if err != nil {
			return Parsed{}, &UsageError{Err: err}
		}
		p.Overrides[d.Name] = v
	}

	var err error
	if p.Write, err = fs.GetBool(FlagWrite); err != nil {
		return Parsed{}, err
	}
	if p.Verbose, err = fs.GetCount(FlagVerbose); err != nil {
		return Parsed{}, err
	}
	if len(args) > 0 {
		p.Testcase = args[0]
	}
	return p, nil
}
