// Copyright 2026 The Bugconf Authors
// SPDX-License-Identifier: MIT

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// DefaultsSearchPaths returns the user defaults file candidates, in the order
// they are tried. The first one that exists is loaded; the rest are ignored.
func DefaultsSearchPaths() []string {
	home, _ := os.UserHomeDir()
	return []string{
		filepath.Join(home, ".bugconfrc"),
		filepath.Join(home, ".config", "bugconf", "config"),
	}
}

// LoadDefaults loads the first existing file among paths as the defaults
// layer and returns its path. Missing files are skipped; if none exists the
// store is left empty and "" is returned. Any other read error is fatal.
func (s *Store) LoadDefaults(paths []string) (string, error) {
	for _, path := range paths {
		data, err := s.fs.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("reading defaults %s: %w", path, err)
		}
		return path, s.Load(bytes.NewReader(data), path, OriginDefaults)
	}
	return "", nil
}

// expandUser replaces a leading "~" with the current user's home directory.
// Other forms ("~user") are returned unchanged.
func expandUser(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}
	return filepath.Join(home, path[1:])
}
