// Copyright 2026 The Bugconf Authors
// SPDX-License-Identifier: MIT

package crashlog

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davetashner/bugconf/internal/testable"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func writeLogs(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600))
	}
}

func TestSelect_PrefersLargestAsanLog(t *testing.T) {
	dir := t.TempDir()
	writeLogs(t, dir, map[string]string{
		"log_ffp_asan_1.txt":  "short",
		"log_ffp_asan_2.txt":  "a much longer sanitizer report",
		"log_stderr.txt":      "stderr",
		"log_stdout.txt":      "stdout",
		"log_ffp_worker.txt":  "worker",
		"unrelated_file.txt":  "ignored",
		"log_not_a_text.json": "ignored",
	})

	logs, err := Select(testable.DefaultFS, dir)
	require.NoError(t, err)
	assert.Equal(t, "log_stderr.txt", logs.Stderr)
	assert.Equal(t, "log_ffp_asan_2.txt", logs.Crash)
	assert.Equal(t, dir, logs.Dir)
}

func TestSelect_FallsBackToFirstOtherLog(t *testing.T) {
	dir := t.TempDir()
	writeLogs(t, dir, map[string]string{
		"log_b_minidump.txt": "b",
		"log_c_other.txt":    "c",
		"log_stdout.txt":     "stdout",
	})

	logs, err := Select(testable.DefaultFS, dir)
	require.NoError(t, err)
	assert.Empty(t, logs.Stderr)
	assert.Equal(t, "log_b_minidump.txt", logs.Crash)
}

func TestSelect_StdoutNeverChosen(t *testing.T) {
	dir := t.TempDir()
	writeLogs(t, dir, map[string]string{"log_stdout.txt": "stdout"})

	logs, err := Select(testable.DefaultFS, dir)
	require.NoError(t, err)
	assert.Empty(t, logs.Crash)
	assert.Empty(t, logs.Stderr)
}

func TestSelect_MissingDirectory(t *testing.T) {
	_, err := Select(testable.DefaultFS, filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestRemoveStale(t *testing.T) {
	dir := t.TempDir()
	writeLogs(t, dir, map[string]string{
		"log_stderr.txt": "old",
		"log_asan.txt":   "old",
		"testcase.html":  "<html>",
	})

	require.NoError(t, RemoveStale(testable.DefaultFS, dir))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "testcase.html", entries[0].Name())
}

func TestRemoveStale_RemoveError(t *testing.T) {
	dir := t.TempDir()
	writeLogs(t, dir, map[string]string{"log_stderr.txt": "old"})
	fsys := &testable.MockFileSystem{
		RemoveFn: func(string) error { return os.ErrPermission },
	}

	err := RemoveStale(fsys, dir)
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrPermission))
}

func TestWrite_StderrOnly(t *testing.T) {
	dir := t.TempDir()
	writeLogs(t, dir, map[string]string{"log_stderr.txt": "line one\nline two\n"})

	var buf bytes.Buffer
	err := Write(&buf, testable.DefaultFS, Logs{Dir: dir, Stderr: "log_stderr.txt"})
	require.NoError(t, err)
	assert.Equal(t, "line one\nline two\n", buf.String())
}

func TestWrite_NoLogs(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, testable.DefaultFS, Logs{Dir: t.TempDir()})
	assert.ErrorIs(t, err, ErrNoLogs)
	assert.Empty(t, buf.String())
}

func TestWrite_AssertionsThenCrashLog(t *testing.T) {
	dir := t.TempDir()
	writeLogs(t, dir, map[string]string{
		"log_stderr.txt": strings.Join([]string{
			"noise",
			"Assertion failure: x == y, at foo.cpp:12",
			"more noise",
			"thread 'main' panicked at src/lib.rs:4:5",
			"",
		}, "\n"),
		"log_ffp_asan.txt": "==1==ERROR: AddressSanitizer: heap-use-after-free\n",
	})

	var buf bytes.Buffer
	err := Write(&buf, testable.DefaultFS, Logs{Dir: dir, Stderr: "log_stderr.txt", Crash: "log_ffp_asan.txt"})
	require.NoError(t, err)
	assert.Equal(t,
		"Assertion failure: x == y, at foo.cpp:12\n"+
			"thread 'main' panicked at src/lib.rs:4:5\n"+
			"==1==ERROR: AddressSanitizer: heap-use-after-free\n",
		buf.String())
}

func TestWrite_MinidumpIsCondensed(t *testing.T) {
	dir := t.TempDir()
	writeLogs(t, dir, map[string]string{
		"log_minidump_01.txt": strings.Join([]string{
			"OS|Linux|0.0.0",
			"Crash|SIGSEGV|0x0|0",
			"0|0|libxul.so|mozilla::Foo|hg:hg.mozilla.org/mozilla-central:dom/Foo.cpp:abc|42|0x10",
			"0|1|libc.so.6||||0x2f",
			"1|0|libxul.so|Other|hg:r:other.cpp:abc|1|0x1",
		}, "\n"),
	})

	var buf bytes.Buffer
	err := Write(&buf, testable.DefaultFS, Logs{Dir: dir, Crash: "log_minidump_01.txt"})
	require.NoError(t, err)
	assert.Equal(t, "#0: mozilla::Foo, at dom/Foo.cpp:42\n#1: libc.so.6+0x2f", buf.String())
}

func TestFormatMinidump_SelectedThread(t *testing.T) {
	in := strings.Join([]string{
		"0|0|libxul.so|A|hg:r:a.cpp:rev|1|0x1",
		"1|0|libxul.so|B|hg:r:b.cpp:rev|2|0x2",
		"1|1|libxul.so|||||",
		"1|2|libxul.so||||0x9",
	}, "\n")

	frames, err := FormatMinidump(strings.NewReader(in), 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"#0: B, at b.cpp:2", "#2: libxul.so+0x9"}, frames)
}

func TestFormatMinidump_SourceWithoutRepoPrefix(t *testing.T) {
	frames, err := FormatMinidump(strings.NewReader("3|0|lib.so|sym|plain.c|7|0x1\n"), -1)
	require.NoError(t, err)
	assert.Equal(t, []string{"#0: sym, at plain.c:7"}, frames)
}

func TestFormatMinidump_NoThreads(t *testing.T) {
	frames, err := FormatMinidump(strings.NewReader("OS|Linux\nCPU|amd64\n"), -1)
	require.NoError(t, err)
	assert.Empty(t, frames)
}
