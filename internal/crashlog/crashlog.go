// Copyright 2026 The Bugconf Authors
// SPDX-License-Identifier: MIT

// Package crashlog picks the interesting logs the launcher leaves behind
// (log_*.txt) and condenses them into a short crash summary.
package crashlog

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"github.com/davetashner/bugconf/internal/testable"
)

// ErrNoLogs is returned by Write when the launcher left neither a crash log
// nor a stderr log.
var ErrNoLogs = errors.New("no stderr")

// highlight marks assertion and panic lines copied from stderr.
var highlight = color.New(color.FgRed, color.Bold)

// Logs names the logs selected from a log directory. Empty fields mean no
// such log was found.
type Logs struct {
	Dir    string
	Stderr string
	Crash  string
}

// isLog reports whether name looks like a log saved by the launcher.
func isLog(name string) bool {
	return strings.HasPrefix(name, "log_") && strings.HasSuffix(name, ".txt")
}

// Select scans dir for launcher logs. The stderr log is kept aside; the
// largest sanitizer (asan) log is the crash log, and without one the first
// other log that is not stdout is used.
func Select(fsys testable.FileSystem, dir string) (Logs, error) {
	entries, err := fsys.ReadDir(dir)
	if err != nil {
		return Logs{}, fmt.Errorf("reading log directory %s: %w", dir, err)
	}

	logs := Logs{Dir: dir}
	var bestSize int64
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !isLog(name) {
			continue
		}
		switch {
		case strings.Contains(name, "stderr"):
			logs.Stderr = name
		case strings.Contains(name, "asan"):
			info, err := e.Info()
			if err != nil {
				continue
			}
			// A non-sanitizer log chosen earlier leaves bestSize at zero,
			// so any non-empty asan log replaces it.
			if info.Size() > bestSize {
				logs.Crash = name
				bestSize = info.Size()
			}
		case !strings.Contains(name, "stdout") && logs.Crash == "":
			logs.Crash = name
		}
	}
	return logs, nil
}

// RemoveStale deletes launcher logs left in dir by a previous run.
func RemoveStale(fsys testable.FileSystem, dir string) error {
	entries, err := fsys.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading log directory %s: %w", dir, err)
	}
	for _, e := range entries {
		if e.IsDir() || !isLog(e.Name()) {
			continue
		}
		if err := fsys.Remove(filepath.Join(dir, e.Name())); err != nil {
			return fmt.Errorf("removing stale log: %w", err)
		}
	}
	return nil
}

// Write prints the crash summary for logs to w.
//
// Without a crash log the stderr log is printed verbatim. With one, the
// assertion and panic lines of stderr come first, followed by the crash log
// itself; minidump logs are reduced to one line per stack frame.
func Write(w io.Writer, fsys testable.FileSystem, logs Logs) error {
	if logs.Crash == "" {
		if logs.Stderr == "" {
			return ErrNoLogs
		}
		return copyFile(w, fsys, filepath.Join(logs.Dir, logs.Stderr))
	}

	if logs.Stderr != "" {
		if err := writeAssertions(w, fsys, filepath.Join(logs.Dir, logs.Stderr)); err != nil {
			return err
		}
	}

	path := filepath.Join(logs.Dir, logs.Crash)
	if !strings.Contains(logs.Crash, "minidump") {
		return copyFile(w, fsys, path)
	}

	f, err := fsys.Open(path)
	if err != nil {
		return fmt.Errorf("opening crash log: %w", err)
	}
	defer f.Close() //nolint:errcheck // read-only file
	frames, err := FormatMinidump(f, -1)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	_, err = io.WriteString(w, strings.Join(frames, "\n"))
	return err
}

func copyFile(w io.Writer, fsys testable.FileSystem, path string) error {
	f, err := fsys.Open(path)
	if err != nil {
		return fmt.Errorf("opening log: %w", err)
	}
	defer f.Close() //nolint:errcheck // read-only file
	_, err = io.Copy(w, f)
	return err
}

func writeAssertions(w io.Writer, fsys testable.FileSystem, path string) error {
	f, err := fsys.Open(path)
	if err != nil {
		return fmt.Errorf("opening stderr log: %w", err)
	}
	defer f.Close() //nolint:errcheck // read-only file

	r := bufio.NewReader(f)
	for {
		line, err := r.ReadString('\n')
		if strings.Contains(line, "Assertion failure") || strings.Contains(line, "panicked at") {
			if _, werr := highlight.Fprint(w, line); werr != nil {
				return werr
			}
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
	}
}
