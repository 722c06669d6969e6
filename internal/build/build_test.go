// Copyright 2026 The Bugconf Authors
// SPDX-License-Identifier: MIT

package build

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davetashner/bugconf/internal/testable"
)

func mkdirs(t *testing.T, root string, names ...string) {
	t.Helper()
	for _, n := range names {
		require.NoError(t, os.MkdirAll(filepath.Join(root, n), 0o750))
	}
}

func TestList_SortedSubdirectories(t *testing.T) {
	dir := t.TempDir()
	mkdirs(t, dir, "z-build", "a-build")

	builds, err := NewLocator(nil).List(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"a-build", "z-build"}, builds)
}

func TestList_SkipsFilesFollowsSymlinks(t *testing.T) {
	dir := t.TempDir()
	mkdirs(t, dir, "m-c-64")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o600))
	require.NoError(t, os.Symlink(filepath.Join(dir, "m-c-64"), filepath.Join(dir, "latest")))

	builds, err := NewLocator(nil).List(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"latest", "m-c-64"}, builds)
}

func TestList_EmptyDirectory(t *testing.T) {
	builds, err := NewLocator(nil).List(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, builds)
}

func TestList_MissingPath(t *testing.T) {
	_, err := NewLocator(nil).List(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrPathNotFound))
}

func TestList_NotADirectory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0o600))

	_, err := NewLocator(nil).List(file)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrPathNotFound))
}

func TestList_ReadsFreshEachCall(t *testing.T) {
	dir := t.TempDir()
	loc := NewLocator(nil)

	builds, err := loc.List(dir)
	require.NoError(t, err)
	assert.Empty(t, builds)

	mkdirs(t, dir, "new-build")
	builds, err = loc.List(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"new-build"}, builds)
}

func TestList_ReadDirError(t *testing.T) {
	mock := &testable.MockFileSystem{
		ReadDirFn: func(string) ([]fs.DirEntry, error) {
			return nil, fs.ErrPermission
		},
	}
	_, err := NewLocator(mock).List(t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrPermission))
	assert.False(t, errors.Is(err, ErrPathNotFound))
}

func TestContains(t *testing.T) {
	dir := t.TempDir()
	mkdirs(t, dir, "a-build", "m-c-64")
	loc := NewLocator(nil)

	ok, err := loc.Contains(dir, "m-c-64")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = loc.Contains(dir, "m-c-32")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBinary(t *testing.T) {
	assert.Equal(t, filepath.Join("/builds", "m-c-64", "firefox"), Binary("/builds", "m-c-64"))
}

func TestReadMetadata(t *testing.T) {
	dir := t.TempDir()
	mkdirs(t, dir, "m-c-64")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "m-c-64", MetadataFile),
		[]byte("[Main]\nproduct = mozilla-central\nproduct_version = 20260101-abcdef\n"), 0o600))

	md, err := NewLocator(nil).ReadMetadata(dir, "m-c-64")
	require.NoError(t, err)
	assert.Equal(t, "mozilla-central", md.Product)
	assert.Equal(t, "20260101-abcdef", md.Revision)
	assert.Equal(t, "m-c", md.ShortProduct())
}

func TestReadMetadata_Missing(t *testing.T) {
	dir := t.TempDir()
	mkdirs(t, dir, "m-c-64")

	_, err := NewLocator(nil).ReadMetadata(dir, "m-c-64")
	assert.Error(t, err)
}

func TestReadMetadata_MissingKeys(t *testing.T) {
	dir := t.TempDir()
	mkdirs(t, dir, "m-c-64")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "m-c-64", MetadataFile),
		[]byte("[Main]\nproduct = mozilla-central\n"), 0o600))

	_, err := NewLocator(nil).ReadMetadata(dir, "m-c-64")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "product_version")
}

func TestShortProduct(t *testing.T) {
	assert.Equal(t, "m-c", Metadata{Product: "mozilla-central"}.ShortProduct())
	assert.Equal(t, "m-b", Metadata{Product: "mozilla-beta"}.ShortProduct())
	assert.Equal(t, "c", Metadata{Product: "central"}.ShortProduct())
	assert.Equal(t, "", Metadata{}.ShortProduct())
}
