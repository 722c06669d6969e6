// Copyright 2026 The Bugconf Authors
// SPDX-License-Identifier: MIT

// Package dispatch runs one bugconf invocation: it merges the configuration
// layers, performs the action selected by the program name and optionally
// persists the merged configuration.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/davetashner/bugconf/internal/cli"
	"github.com/davetashner/bugconf/internal/config"
	"github.com/davetashner/bugconf/internal/testable"
)

// ErrMissingOption is returned when an action needs an option that no layer
// provided.
var ErrMissingOption = errors.New("missing required option")

// ExitError carries the non-zero exit status of an external tool.
type ExitError struct {
	Tool string
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s exited with status %d", e.Tool, e.Code)
}

// Verb is the action selected by the name the program was invoked as.
type Verb int

const (
	// WriteOnly merges the layers and does nothing else; with --write it
	// updates the project file.
	WriteOnly Verb = iota
	// Repro launches the browser on a test case.
	Repro
	// Reduce runs the test-case reducer.
	Reduce
	// ListBuilds prints the builds under the build path.
	ListBuilds
	// Show prints every set option and where its value came from.
	Show
)

// Program names of the entry points.
const (
	ProgramRepro      = "bcrepro"
	ProgramReduce     = "bcreduce"
	ProgramListBuilds = "bclistbuilds"
	ProgramShow       = "bcshow"
)

var programs = map[string]Verb{
	ProgramRepro:      Repro,
	ProgramReduce:     Reduce,
	ProgramListBuilds: ListBuilds,
	ProgramShow:       Show,
}

// VerbFor maps argv[0] to a verb. Unknown names select WriteOnly.
func VerbFor(argv0 string) Verb {
	name := strings.TrimSuffix(filepath.Base(argv0), ".exe")
	return programs[name]
}

func (v Verb) String() string {
	switch v {
	case Repro:
		return "repro"
	case Reduce:
		return "reduce"
	case ListBuilds:
		return "list-builds"
	case Show:
		return "show"
	default:
		return "write-only"
	}
}

// TakesTestcase reports whether the verb requires a test case argument.
func (v Verb) TakesTestcase() bool {
	return v == Repro || v == Reduce
}

// Env holds the dependencies of a Dispatcher. Zero fields get production
// defaults.
type Env struct {
	FS       testable.FileSystem
	Executor testable.CommandExecutor
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *slog.Logger

	// DefaultsPaths are the user defaults candidates; nil means
	// config.DefaultsSearchPaths().
	DefaultsPaths []string

	// ProjectFile is the project config path; "" means config.FileName in
	// the working directory.
	ProjectFile string
}

// Dispatcher executes verbs against a freshly merged configuration.
type Dispatcher struct {
	fs            testable.FileSystem
	exec          testable.CommandExecutor
	stdout        io.Writer
	stderr        io.Writer
	logger        *slog.Logger
	defaultsPaths []string
	projectFile   string
}

// New returns a Dispatcher for env.
func New(env Env) *Dispatcher {
	d := &Dispatcher{
		fs:            env.FS,
		exec:          env.Executor,
		stdout:        env.Stdout,
		stderr:        env.Stderr,
		logger:        env.Logger,
		defaultsPaths: env.DefaultsPaths,
		projectFile:   env.ProjectFile,
	}
	if d.fs == nil {
		d.fs = testable.DefaultFS
	}
	if d.exec == nil {
		d.exec = testable.DefaultExecutor()
	}
	if d.stdout == nil {
		d.stdout = os.Stdout
	}
	if d.stderr == nil {
		d.stderr = os.Stderr
	}
	if d.logger == nil {
		d.logger = slog.New(slog.DiscardHandler)
	}
	if d.defaultsPaths == nil {
		d.defaultsPaths = config.DefaultsSearchPaths()
	}
	if d.projectFile == "" {
		d.projectFile = config.FileName
	}
	return d
}

// Run merges the user defaults, the project file and the command-line
// overrides, performs verb and, when p.Write is set, writes the merged
// configuration back to the project file. The file is written even when
// the external tool fails (the *ExitError is still returned) but never after
// a configuration error.
func (d *Dispatcher) Run(ctx context.Context, verb Verb, p cli.Parsed) error {
	store, err := d.load(verb, p)
	if err != nil {
		return err
	}

	runErr := d.dispatch(ctx, verb, store, p)

	var exitErr *ExitError
	if p.Write && (runErr == nil || errors.As(runErr, &exitErr)) {
		if err := store.DumpFile(d.projectFile); err != nil {
			return err
		}
	}
	return runErr
}

func (d *Dispatcher) load(verb Verb, p cli.Parsed) (*config.Store, error) {
	store := config.New(d.logger, d.fs)

	path, err := store.LoadDefaults(d.defaultsPaths)
	if err != nil {
		return nil, err
	}
	if path != "" {
		d.logger.Debug("loaded defaults", "path", path)
	}

	err = store.LoadFile(d.projectFile, config.OriginProject)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if verb != ListBuilds {
			d.logger.Warn("no bugconf file found in current directory")
		}
	case err != nil:
		return nil, err
	}

	if err := store.LoadOverrides(p.Overrides); err != nil {
		return nil, err
	}
	return store, nil
}

func (d *Dispatcher) dispatch(ctx context.Context, verb Verb, store *config.Store, p cli.Parsed) error {
	switch verb {
	case Repro:
		return d.repro(ctx, store, p)
	case Reduce:
		return d.reduce(ctx, store, p)
	case ListBuilds:
		return d.listBuilds(store)
	case Show:
		return d.show(store)
	default:
		if !p.Write {
			d.logger.Warn("nothing to do!")
		}
		return nil
	}
}

// requireOptions fails with ErrMissingOption naming every unset option.
func requireOptions(store *config.Store, names ...string) error {
	var missing []string
	for _, name := range names {
		if _, ok := store.Raw(name); !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingOption, strings.Join(missing, ", "))
	}
	return nil
}
