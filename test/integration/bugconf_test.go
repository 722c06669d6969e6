// Package integration contains end-to-end tests for bugconf.
//
// These tests build the bugconf binary, install it under each program name
// with symlinks, and drive it the way a user would: from a scratch working
// directory with its own home directory and a stand-in launcher script.
package integration

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// repoRoot returns the bugconf repository root directory.
func repoRoot(t *testing.T) string {
	t.Helper()
	_, thisFile, _, ok := runtime.Caller(0)
	require.True(t, ok, "runtime.Caller failed")
	// test/integration/bugconf_test.go -> repo root
	return filepath.Dir(filepath.Dir(filepath.Dir(thisFile)))
}

// installBinaries compiles bugconf into a temp directory and links it under
// every program name. It returns the directory holding the links.
func installBinaries(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("program-name dispatch relies on symlinks")
	}
	bin := t.TempDir()
	binary := filepath.Join(bin, "bugconf")
	cmd := exec.Command("go", "build", "-o", binary, "./cmd/bugconf") //nolint:gosec // test helper
	cmd.Dir = repoRoot(t)
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "go build failed:\n%s", out)

	for _, name := range []string{"bcrepro", "bcreduce", "bclistbuilds", "bcshow"} {
		require.NoError(t, os.Symlink(binary, filepath.Join(bin, name)))
	}
	return bin
}

// sandbox is a working directory with its own HOME and a build tree.
type sandbox struct {
	bin    string
	home   string
	work   string
	builds string
}

func newSandbox(t *testing.T) *sandbox {
	t.Helper()
	root := t.TempDir()
	s := &sandbox{
		bin:    installBinaries(t),
		home:   filepath.Join(root, "home"),
		work:   filepath.Join(root, "work"),
		builds: filepath.Join(root, "builds"),
	}
	for _, dir := range []string{s.home, s.work, filepath.Join(s.builds, "m-c-20260101-asan"), filepath.Join(s.builds, "m-c-20260102-debug")} {
		require.NoError(t, os.MkdirAll(dir, 0o750))
	}
	require.NoError(t, os.WriteFile(
		filepath.Join(s.builds, "m-c-20260101-asan", "firefox.fuzzmanagerconf"),
		[]byte("[Main]\nplatform = x86-64\nproduct = mozilla-central\nproduct_version = 20260101-0f1e2d\nos = linux\n"), 0o600))
	return s
}

// run invokes program with args and returns its exit code, stdout and stderr.
func (s *sandbox) run(t *testing.T, program string, args ...string) (int, string, string) {
	t.Helper()
	cmd := exec.Command(filepath.Join(s.bin, program), args...) //nolint:gosec // test helper
	cmd.Dir = s.work
	cmd.Env = append(os.Environ(), "HOME="+s.home, "NO_COLOR=1")
	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	code := 0
	if exitErr, ok := err.(*exec.ExitError); ok {
		code = exitErr.ExitCode()
	} else {
		require.NoError(t, err)
	}
	return code, stdout.String(), stderr.String()
}

func TestListBuilds_FromUserDefaults(t *testing.T) {
	s := newSandbox(t)
	require.NoError(t, os.WriteFile(filepath.Join(s.home, ".bugconfrc"),
		[]byte(fmt.Sprintf("{\"buildpath\": %q}\n", s.builds)), 0o600))

	code, stdout, stderr := s.run(t, "bclistbuilds")
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, "m-c-20260101-asan\nm-c-20260102-debug\n", stdout)
}

func TestWriteThenShow(t *testing.T) {
	s := newSandbox(t)
	require.NoError(t, os.WriteFile(filepath.Join(s.home, ".bugconfrc"),
		[]byte(fmt.Sprintf("{\"buildpath\": %q, \"xvfb\": true}\n", s.builds)), 0o600))

	code, _, stderr := s.run(t, "bugconf", "-b", "m-c-20260101-asan", "--memory", "2048", "--xvfb=false", "-w")
	require.Equal(t, 0, code, stderr)

	data, err := os.ReadFile(filepath.Join(s.work, "bugconf"))
	require.NoError(t, err)
	assert.Equal(t, "{\n \"build\": \"m-c-20260101-asan\",\n \"memory\": 2048,\n \"xvfb\": false\n}\n", string(data))

	code, stdout, _ := s.run(t, "bcshow")
	require.Equal(t, 0, code)
	assert.Contains(t, stdout, "build = m-c-20260101-asan (project)\n")
	assert.Contains(t, stdout, fmt.Sprintf("buildpath = %s (defaults)\n", s.builds))
}

func TestRepro_WithStandInLauncher(t *testing.T) {
	s := newSandbox(t)
	record := filepath.Join(s.work, "argv.txt")
	puppet := filepath.Join(s.work, "fake-ffpuppet")
	script := fmt.Sprintf(`#!/bin/sh
printf '%%s\n' "$@" > %q
printf 'Assertion failure: false, at nsFoo.cpp:1\n' > log_ffp_stderr.txt
printf '==1==ERROR: AddressSanitizer: SEGV\n' > log_ffp_asan_1.txt
exit 1
`, record)
	require.NoError(t, os.WriteFile(puppet, []byte(script), 0o700)) //nolint:gosec // executable test fixture
	require.NoError(t, os.WriteFile(filepath.Join(s.work, "bugconf"), []byte(fmt.Sprintf(
		"{\"buildpath\": %q, \"build\": \"m-c-20260101-asan\", \"prefs\": \"prefs.js\", \"puppet\": %q}\n",
		s.builds, puppet)), 0o600))

	code, stdout, stderr := s.run(t, "bcrepro", "--xvfb", "test.html")
	assert.Equal(t, 1, code, stderr)
	assert.Equal(t, "Assertion failure: false, at nsFoo.cpp:1\n==1==ERROR: AddressSanitizer: SEGV\n", stdout)
	assert.Contains(t, stderr, "run in m-c rev 20260101-0f1e2d")

	argv, err := os.ReadFile(record)
	require.NoError(t, err)
	assert.Equal(t, strings.Join([]string{
		filepath.Join(s.builds, "m-c-20260101-asan", "firefox"),
		"-p", "prefs.js", "--xvfb", "-u", "test.html",
	}, "\n")+"\n", string(argv))
}

func TestUsageError_ExitStatus(t *testing.T) {
	s := newSandbox(t)

	code, _, stderr := s.run(t, "bcreduce")
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "error:")
}
