// Copyright 2026 The Bugconf Authors
// SPDX-License-Identifier: MIT

package testable

import (
	"context"
	"os/exec"
)

// CommandExecutor is how proc.Run resolves and starts ffpuppet, lithium and
// grizzly.reduce. Tests swap in MockCommandExecutor so no browser or reducer
// is needed.
type CommandExecutor interface {
	// LookPath resolves a tool name; failure becomes proc.ErrToolNotFound.
	LookPath(file string) (string, error)

	// CommandContext prepares the tool's process. proc.Run attaches stdio,
	// the interrupt-on-cancel hook and the kill grace period to it.
	CommandContext(ctx context.Context, name string, args ...string) *exec.Cmd
}

// osExecutor starts tools as real child processes.
type osExecutor struct{}

func (osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (osExecutor) CommandContext(ctx context.Context, name string, args ...string) *exec.Cmd {
	return exec.CommandContext(ctx, name, args...) //nolint:gosec // argv comes from the launcher and reducer dialects
}

// DefaultExecutor is used by the bugconf binaries whenever no executor is
// injected.
func DefaultExecutor() CommandExecutor {
	return osExecutor{}
}
