// Copyright 2026 The Bugconf Authors
// SPDX-License-Identifier: MIT

package config

import (
	"encoding/json"
	"fmt"
	"iter"
	"math"

	"github.com/davetashner/bugconf/internal/build"
	"github.com/davetashner/bugconf/internal/option"
)

// maxExactFloat is the largest float64 magnitude that still holds every
// integer exactly.
const maxExactFloat = 1 << 53

// coerce converts a decoded document or flag value to the Go type of the
// option's kind. nil passes through and means "clear".
func coerce(d option.Descriptor, raw any) (any, error) {
	if raw == nil {
		return nil, nil
	}
	switch d.Kind {
	case option.Bool:
		if b, ok := raw.(bool); ok {
			return b, nil
		}
	case option.Int:
		switch v := raw.(type) {
		case int:
			return v, nil
		case int64:
			return int(v), nil
		case uint64:
			if v <= math.MaxInt64 {
				return int(v), nil
			}
		case float64:
			if v == math.Trunc(v) && math.Abs(v) <= maxExactFloat {
				return int(v), nil
			}
		case json.Number:
			if n, err := v.Int64(); err == nil {
				return int(n), nil
			}
			if f, err := v.Float64(); err == nil && f == math.Trunc(f) && math.Abs(f) <= maxExactFloat {
				return int(f), nil
			}
		}
	case option.String:
		if s, ok := raw.(string); ok {
			return s, nil
		}
	}
	return nil, fmt.Errorf("%w for %s: expected %s, got %v (%T)", ErrInvalidValue, d.Name, d.Kind, raw, raw)
}

// validateBuild checks that name is one of the builds under the build path
// held by f.
func (s *Store) validateBuild(f *Fields, name string) error {
	if f.BuildPath == nil {
		return fmt.Errorf("%w: %q: buildpath is not set", ErrBuildNotFound, name)
	}
	buildPath := expandUser(*f.BuildPath)
	ok, err := s.locator.Contains(buildPath, name)
	if err != nil {
		return fmt.Errorf("%w: %q: %w", ErrBuildNotFound, name, err)
	}
	if !ok {
		return fmt.Errorf("%w: %q is not in %s", ErrBuildNotFound, name, buildPath)
	}
	return nil
}

// Builds returns the builds under the configured build path. The sequence
// is lazy and restartable: every range re-reads the directory. A listing
// failure is yielded once as ("", err).
func (s *Store) Builds() iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		builds, err := s.ListBuilds()
		if err != nil {
			yield("", err)
			return
		}
		for _, b := range builds {
			if !yield(b, nil) {
				return
			}
		}
	}
}

// ListBuilds returns the builds under the configured build path, sorted.
func (s *Store) ListBuilds() ([]string, error) {
	if s.fields.BuildPath == nil {
		return nil, fmt.Errorf("%w: buildpath is not set", build.ErrPathNotFound)
	}
	return s.locator.List(expandUser(*s.fields.BuildPath))
}
