// Copyright 2026 The Bugconf Authors
// SPDX-License-Identifier: MIT

package testable

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// MockCommandExecutor is a test double for CommandExecutor.
// It can simulate a missing tool, non-zero exits, hangs and predetermined
// outputs without running the real launcher or reducer.
type MockCommandExecutor struct {
	// LookPathErr, when non-nil, is returned by LookPath for any file.
	LookPathErr error

	// CommandOutputs maps a command key (e.g., "lithium --char ...") to the
	// stdout that the resulting exec.Cmd should produce. The key is built from
	// the command name and all arguments joined by spaces.
	CommandOutputs map[string]string

	// CommandExitCodes maps a command key to the exit status the resulting
	// exec.Cmd should terminate with.
	CommandExitCodes map[string]int

	// CommandScripts maps a command key to a shell script run in its place.
	CommandScripts map[string]string

	// DefaultOutput is returned when no key matches in CommandOutputs.
	DefaultOutput string

	// DefaultExitCode is used when no key matches in CommandExitCodes.
	DefaultExitCode int

	// Calls records the argv of every command that was created.
	Calls [][]string
}

// LookPath returns the configured error or the file unchanged.
func (m *MockCommandExecutor) LookPath(file string) (string, error) {
	if m.LookPathErr != nil {
		return "", m.LookPathErr
	}
	return file, nil
}

// CommandContext returns an *exec.Cmd that, when executed, produces the
// pre-configured output and exit status. It runs "sh -c" to simulate the
// behaviour without running the real binary.
func (m *MockCommandExecutor) CommandContext(ctx context.Context, name string, args ...string) *exec.Cmd {
	argv := append([]string{name}, args...)
	m.Calls = append(m.Calls, argv)
	key := strings.Join(argv, " ")

	if script, ok := m.CommandScripts[key]; ok {
		return exec.CommandContext(ctx, "sh", "-c", script) //nolint:gosec // test helper
	}

	out := m.DefaultOutput
	if o, ok := m.CommandOutputs[key]; ok {
		out = o
	}
	code := m.DefaultExitCode
	if c, ok := m.CommandExitCodes[key]; ok {
		code = c
	}
	script := fmt.Sprintf("printf '%%s' %q; exit %d", out, code)
	return exec.CommandContext(ctx, "sh", "-c", script) //nolint:gosec // test helper
}

// LastCall returns the argv of the most recent command, or nil.
func (m *MockCommandExecutor) LastCall() []string {
	if len(m.Calls) == 0 {
		return nil
	}
	return m.Calls[len(m.Calls)-1]
}
