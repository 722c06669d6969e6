// Copyright 2026 The Bugconf Authors
// SPDX-License-Identifier: MIT

// Package build discovers installed browser builds under a build path and
// reads the metadata FuzzManager stores next to each build.
package build

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/davetashner/bugconf/internal/fuzzmanager"
	"github.com/davetashner/bugconf/internal/testable"
)

const (
	// BinaryName is the browser executable inside a build directory.
	BinaryName = "firefox"

	// MetadataFile is the FuzzManager metadata file inside a build directory.
	MetadataFile = "firefox.fuzzmanagerconf"
)

// ErrPathNotFound is returned when the build path is missing or is not a
// directory.
var ErrPathNotFound = errors.New("build path not found")

// Locator lists builds on a file system.
type Locator struct {
	fs testable.FileSystem
}

// NewLocator returns a Locator backed by fsys. A nil fsys uses the real
// file system.
func NewLocator(fsys testable.FileSystem) *Locator {
	if fsys == nil {
		fsys = testable.DefaultFS
	}
	return &Locator{fs: fsys}
}

// List returns the names of the immediate subdirectories of buildPath in
// ascending order. The directory is read on every call.
func (l *Locator) List(buildPath string) ([]string, error) {
	info, err := l.fs.Stat(buildPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrPathNotFound, buildPath)
		}
		return nil, fmt.Errorf("stat %s: %w", buildPath, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrPathNotFound, buildPath)
	}

	entries, err := l.fs.ReadDir(buildPath)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", buildPath, err)
	}

	var builds []string
	for _, e := range entries {
		if l.isDir(buildPath, e) {
			builds = append(builds, e.Name())
		}
	}
	sort.Strings(builds)
	return builds, nil
}

// isDir reports whether e is a directory, following symlinks.
func (l *Locator) isDir(parent string, e fs.DirEntry) bool {
	if e.IsDir() {
		return true
	}
	if e.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := l.fs.Stat(filepath.Join(parent, e.Name()))
	return err == nil && info.IsDir()
}

// Contains reports whether build is one of the builds under buildPath.
func (l *Locator) Contains(buildPath, build string) (bool, error) {
	builds, err := l.List(buildPath)
	if err != nil {
		return false, err
	}
	i := sort.SearchStrings(builds, build)
	return i < len(builds) && builds[i] == build, nil
}

// Binary returns the path of the browser executable of build.
func Binary(buildPath, build string) string {
	return filepath.Join(buildPath, build, BinaryName)
}

// Metadata is the reporting information of a build.
type Metadata struct {
	Product  string
	Revision string
}

// ShortProduct abbreviates the product name to the first letter of each
// dash-separated part: "mozilla-central" becomes "m-c".
func (m Metadata) ShortProduct() string {
	parts := strings.Split(m.Product, "-")
	for i, p := range parts {
		if p != "" {
			parts[i] = p[:1]
		}
	}
	return strings.Join(parts, "-")
}

// ReadMetadata reads product and revision from the build's metadata file.
func (l *Locator) ReadMetadata(buildPath, build string) (Metadata, error) {
	path := filepath.Join(buildPath, build, MetadataFile)
	data, err := l.fs.ReadFile(path)
	if err != nil {
		return Metadata{}, fmt.Errorf("reading build metadata: %w", err)
	}
	conf, err := fuzzmanager.ParseConf(data)
	if err != nil {
		return Metadata{}, fmt.Errorf("parsing %s: %w", path, err)
	}

	var md Metadata
	var ok bool
	if md.Product, ok = fuzzmanager.MainValue(conf, "product"); !ok {
		return Metadata{}, fmt.Errorf("%s: missing [Main] product", path)
	}
	if md.Revision, ok = fuzzmanager.MainValue(conf, "product_version"); !ok {
		return Metadata{}, fmt.Errorf("%s: missing [Main] product_version", path)
	}
	return md, nil
}
