// Copyright 2026 The Bugconf Authors
// SPDX-License-Identifier: MIT

package fuzzmanager

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/davetashner/bugconf/internal/redact"
	"github.com/davetashner/bugconf/internal/testable"
)

// ConfFileName is the per-user FuzzManager client configuration, read from
// the home directory.
const ConfFileName = ".fuzzmanagerconf"

// ErrMissingSetting is returned when the client configuration lacks a
// required server setting.
var ErrMissingSetting = errors.New("missing server setting")

// Server holds the connection settings for a FuzzManager instance.
type Server struct {
	URL   string
	Token string
}

// DefaultConfPath returns ~/.fuzzmanagerconf, or "" when the home directory
// is unknown.
func DefaultConfPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ConfFileName)
}

// LoadServer reads the [Main] section of the client configuration at path.
// The token comes from serverauthtoken, or else from the file named by
// serverauthtokenfile. The token is registered for redaction.
func LoadServer(fsys testable.FileSystem, path string) (Server, error) {
	if fsys == nil {
		fsys = testable.DefaultFS
	}
	data, err := fsys.ReadFile(path)
	if err != nil {
		return Server{}, fmt.Errorf("reading %s: %w", path, err)
	}
	conf, err := ParseConf(data)
	if err != nil {
		return Server{}, fmt.Errorf("parsing %s: %w", path, err)
	}

	get := func(key string) (string, error) {
		v, ok := MainValue(conf, key)
		if !ok || v == "" {
			return "", fmt.Errorf("%s: %w: %s", path, ErrMissingSetting, key)
		}
		return v, nil
	}

	var parts [3]string
	for i, key := range []string{"serverproto", "serverhost", "serverport"} {
		if parts[i], err = get(key); err != nil {
			return Server{}, err
		}
	}

	token, err := get("serverauthtoken")
	if err != nil {
		tokenFile, ferr := get("serverauthtokenfile")
		if ferr != nil {
			return Server{}, err
		}
		raw, rerr := fsys.ReadFile(tokenFile)
		if rerr != nil {
			return Server{}, fmt.Errorf("reading auth token: %w", rerr)
		}
		token = strings.TrimSpace(string(raw))
	}
	redact.Register(token)

	return Server{
		URL:   fmt.Sprintf("%s://%s:%s", parts[0], parts[1], parts[2]),
		Token: token,
	}, nil
}
