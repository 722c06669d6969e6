// Copyright 2026 The Bugconf Authors
// SPDX-License-Identifier: MIT

// Package config holds the resolved bugconf configuration for one run.
//
// Values arrive in three layers: the user defaults file (~/.bugconfrc or
// ~/.config/bugconf/config), the project file (bugconf in the working
// directory) and command-line overrides. Later layers win. The store remembers
// where every value came from so that Dump persists only values that were
// set on purpose, never ones inherited from the user defaults.
package config

import (
	"errors"
	"log/slog"

	"github.com/davetashner/bugconf/internal/build"
	"github.com/davetashner/bugconf/internal/option"
	"github.com/davetashner/bugconf/internal/testable"
)

// FileName is the project config file name in the working directory.
const FileName = "bugconf"

var (
	// ErrUnsupportedOption is returned for keys missing from the option registry.
	ErrUnsupportedOption = errors.New("unsupported option")

	// ErrInvalidValue is returned when a value does not match the option's type.
	ErrInvalidValue = errors.New("invalid value")

	// ErrBuildNotFound is returned when build names a directory that is not
	// among the discovered builds.
	ErrBuildNotFound = errors.New("build not found")
)

// Origin records which layer last set an option.
type Origin int

const (
	// OriginUnset means the option holds no value.
	OriginUnset Origin = iota
	// OriginDefaults marks values inherited from the user defaults file.
	OriginDefaults
	// OriginProject marks values read from the project file.
	OriginProject
	// OriginCLI marks values given on the command line.
	OriginCLI
	// OriginExplicit marks values assigned programmatically with Set.
	OriginExplicit
)

// String returns a short label for the origin.
func (o Origin) String() string {
	switch o {
	case OriginDefaults:
		return "defaults"
	case OriginProject:
		return "project"
	case OriginCLI:
		return "cli"
	case OriginExplicit:
		return "explicit"
	default:
		return "unset"
	}
}

// Store holds the current value of every registered option and the origin
// of each value.
type Store struct {
	fields  Fields
	origins map[string]Origin

	fs      testable.FileSystem
	locator *build.Locator
	logger  *slog.Logger
}

// New returns an empty store. A nil fsys uses the real file system and a nil
// logger discards records.
func New(logger *slog.Logger, fsys testable.FileSystem) *Store {
	if fsys == nil {
		fsys = testable.DefaultFS
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{
		origins: make(map[string]Origin),
		fs:      fsys,
		locator: build.NewLocator(fsys),
		logger:  logger,
	}
}

// Get returns the current value of name with path options expanded. The
// second result is false when the option is unset or not registered.
func (s *Store) Get(name string) (any, bool) {
	d, ok := option.Lookup(name)
	if !ok {
		return nil, false
	}
	v := fieldTable[name].get(&s.fields)
	if v == nil {
		return nil, false
	}
	if d.Path {
		v = expandUser(v.(string))
	}
	return v, true
}

// Raw returns the value of name exactly as it was assigned.
func (s *Store) Raw(name string) (any, bool) {
	f, ok := fieldTable[name]
	if !ok {
		return nil, false
	}
	v := f.get(&s.fields)
	return v, v != nil
}

// Origin reports which layer last set name.
func (s *Store) Origin(name string) Origin {
	return s.origins[name]
}

// IsDefault reports whether name holds a value inherited from the user
// defaults file.
func (s *Store) IsDefault(name string) bool {
	return s.origins[name] == OriginDefaults
}

// Entry is one set option, as listed by Entries.
type Entry struct {
	Name   string
	Value  any
	Origin Origin
}

// Entries returns every option that holds a value, sorted by name, with
// path options expanded.
func (s *Store) Entries() []Entry {
	var out []Entry
	for _, name := range option.Names() {
		v, ok := s.Get(name)
		if !ok {
			continue
		}
		out = append(out, Entry{Name: name, Value: v, Origin: s.origins[name]})
	}
	return out
}
