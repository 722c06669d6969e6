// Copyright 2026 The Bugconf Authors
// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davetashner/bugconf/internal/option"
	"github.com/davetashner/bugconf/internal/testable"
)

func TestDefaultsSearchPaths(t *testing.T) {
	t.Setenv("HOME", "/home/fuzzer")
	assert.Equal(t, []string{
		"/home/fuzzer/.bugconfrc",
		"/home/fuzzer/.config/bugconf/config",
	}, DefaultsSearchPaths())
}

func TestLoadDefaults_FirstExistingWins(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first")
	second := filepath.Join(dir, "second")
	require.NoError(t, os.WriteFile(first, []byte(`{"timeout": 10}`), 0o600))
	require.NoError(t, os.WriteFile(second, []byte(`{"timeout": 20, "gdb": true}`), 0o600))

	s := New(nil, nil)
	path, err := s.LoadDefaults([]string{first, second})
	require.NoError(t, err)
	assert.Equal(t, first, path)

	v, _ := s.Get(option.Timeout)
	assert.Equal(t, 10, v)
	_, ok := s.Get(option.GDB)
	assert.False(t, ok, "only one defaults file is ever loaded")
}

func TestLoadDefaults_SkipsMissing(t *testing.T) {
	dir := t.TempDir()
	second := filepath.Join(dir, "second")
	require.NoError(t, os.WriteFile(second, []byte(`{"gdb": true}`), 0o600))

	s := New(nil, nil)
	path, err := s.LoadDefaults([]string{filepath.Join(dir, "missing"), second})
	require.NoError(t, err)
	assert.Equal(t, second, path)
	assert.True(t, s.IsDefault(option.GDB))
}

func TestLoadDefaults_NoneExist(t *testing.T) {
	dir := t.TempDir()
	s := New(nil, nil)
	path, err := s.LoadDefaults([]string{filepath.Join(dir, "a"), filepath.Join(dir, "b")})
	require.NoError(t, err)
	assert.Equal(t, "", path)
	assert.Empty(t, s.Entries())
}

func TestLoadDefaults_ReadErrorIsFatal(t *testing.T) {
	mock := &testable.MockFileSystem{
		ReadFileFn: func(string) ([]byte, error) { return nil, fs.ErrPermission },
	}
	s := New(nil, mock)
	_, err := s.LoadDefaults([]string{"/home/fuzzer/.bugconfrc"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrPermission))
}

func TestLoadFile_MissingWrapsNotExist(t *testing.T) {
	s := New(nil, nil)
	err := s.LoadFile(filepath.Join(t.TempDir(), FileName), OriginProject)
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestDumpFile_ThenLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	s := New(nil, nil)
	require.NoError(t, s.LoadOverrides(map[string]any{"skip": 4, "js": true}))
	require.NoError(t, s.DumpFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{\n \"js\": true,\n \"skip\": 4\n}\n", string(data))

	fresh := New(nil, nil)
	require.NoError(t, fresh.LoadFile(path, OriginProject))
	v, _ := fresh.Get(option.Skip)
	assert.Equal(t, 4, v)
}

func TestDumpFile_WriteError(t *testing.T) {
	mock := &testable.MockFileSystem{
		WriteFileFn: func(string, []byte, os.FileMode) error { return fs.ErrPermission },
	}
	s := New(nil, mock)
	err := s.DumpFile(FileName)
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrPermission))
}

func TestExpandUser(t *testing.T) {
	t.Setenv("HOME", "/home/fuzzer")
	assert.Equal(t, "/home/fuzzer", expandUser("~"))
	assert.Equal(t, "/home/fuzzer/builds", expandUser("~/builds"))
	assert.Equal(t, "/abs/path", expandUser("/abs/path"))
	assert.Equal(t, "relative", expandUser("relative"))
	assert.Equal(t, "~other/x", expandUser("~other/x"))
	assert.Equal(t, "", expandUser(""))
}
