// Copyright 2026 The Bugconf Authors
// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"maps"
	"sort"

	"github.com/davetashner/bugconf/internal/option"
)

// assignment is one key/value pair of a layer.
type assignment struct {
	name  string
	value any
}

// apply assigns a batch of values from one layer. The batch is applied to a
// copy and committed only if every assignment succeeds, so a failing batch
// leaves the store untouched.
//
// Validated options (build) are assigned after all others so that they are
// checked against a buildpath given in the same batch.
func (s *Store) apply(batch []assignment, origin Origin) error {
	for _, a := range batch {
		if _, ok := option.Lookup(a.name); !ok {
			return fmt.Errorf("%w: %s", ErrUnsupportedOption, a.name)
		}
	}

	// Slots are replaced, never mutated in place, so a shallow copy is
	// enough to keep s.fields intact until commit.
	next := s.fields
	origins := maps.Clone(s.origins)

	for _, a := range assignmentOrder(batch) {
		d, _ := option.Lookup(a.name)
		v, err := coerce(d, a.value)
		if err != nil {
			return err
		}
		if d.Validated && v != nil {
			if err := s.validateBuild(&next, v.(string)); err != nil {
				return err
			}
		}

		s.logger.Debug("setting option", "option", a.name, "value", v, "origin", origin.String())
		fieldTable[a.name].set(&next, v)
		if v == nil {
			delete(origins, a.name)
		} else {
			origins[a.name] = origin
		}
	}

	s.fields = next
	s.origins = origins
	return nil
}

// assignmentOrder returns batch with validated options moved to the end,
// otherwise preserving order.
func assignmentOrder(batch []assignment) []assignment {
	out := make([]assignment, len(batch))
	copy(out, batch)
	sort.SliceStable(out, func(i, j int) bool {
		di, _ := option.Lookup(out[i].name)
		dj, _ := option.Lookup(out[j].name)
		return !di.Validated && dj.Validated
	})
	return out
}

// LoadOverrides applies command-line values. Options with a nil value were
// not given and are skipped. Applied options never count as defaults.
func (s *Store) LoadOverrides(values map[string]any) error {
	names := make([]string, 0, len(values))
	for name, v := range values {
		if v != nil {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	batch := make([]assignment, len(names))
	for i, name := range names {
		batch[i] = assignment{name: name, value: values[name]}
	}
	s.logger.Debug("loading from args", "count", len(batch))
	return s.apply(batch, OriginCLI)
}

// Set assigns a single option outside of any file or command-line layer.
// A nil value clears the option.
func (s *Store) Set(name string, value any) error {
	return s.apply([]assignment{{name: name, value: value}}, OriginExplicit)
}
