// Copyright 2026 The Bugconf Authors
// SPDX-License-Identifier: MIT

package config

import "github.com/davetashner/bugconf/internal/build"

// Settings is a read-only snapshot of a Store with path options expanded and
// unset options at their zero value. It is the input of the command builders.
type Settings struct {
	AnyCrash      bool
	Build         string
	BuildPath     string
	Char          bool
	Extension     bool
	ExtensionPath string
	GDB           bool
	JS            bool
	LogFile       string
	Memory        int
	MinCrashes    int
	NoHarness     bool
	Prefs         string
	Puppet        string
	ReduceDialect string
	ReduceFile    string
	Reducer       string
	Repeat        int
	ReproDialect  string
	SafeMode      bool
	Sig           string
	Skip          int
	Strategy      string
	Symbol        bool
	Timeout       int
	Valgrind      bool
	Xvfb          bool
}

// Binary returns the browser executable of the selected build.
func (s Settings) Binary() string {
	return build.Binary(s.BuildPath, s.Build)
}

// Settings returns a snapshot of the current values.
func (s *Store) Settings() Settings {
	f := &s.fields
	return Settings{
		AnyCrash:      deref(f.AnyCrash),
		Build:         deref(f.Build),
		BuildPath:     expandUser(deref(f.BuildPath)),
		Char:          deref(f.Char),
		Extension:     deref(f.Extension),
		ExtensionPath: expandUser(deref(f.ExtensionPath)),
		GDB:           deref(f.GDB),
		JS:            deref(f.JS),
		LogFile:       expandUser(deref(f.LogFile)),
		Memory:        deref(f.Memory),
		MinCrashes:    deref(f.MinCrashes),
		NoHarness:     deref(f.NoHarness),
		Prefs:         expandUser(deref(f.Prefs)),
		Puppet:        expandUser(deref(f.Puppet)),
		ReduceDialect: deref(f.ReduceDialect),
		ReduceFile:    expandUser(deref(f.ReduceFile)),
		Reducer:       expandUser(deref(f.Reducer)),
		Repeat:        deref(f.Repeat),
		ReproDialect:  deref(f.ReproDialect),
		SafeMode:      deref(f.SafeMode),
		Sig:           deref(f.Sig),
		Skip:          deref(f.Skip),
		Strategy:      deref(f.Strategy),
		Symbol:        deref(f.Symbol),
		Timeout:       deref(f.Timeout),
		Valgrind:      deref(f.Valgrind),
		Xvfb:          deref(f.Xvfb),
	}
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
