// Copyright 2026 The Bugconf Authors
// SPDX-License-Identifier: MIT

package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/davetashner/bugconf/internal/option"
)

// decodeDocument parses a key/value document into assignments, keeping the
// order in which keys appear. bugconf writes JSON, which is decoded as such
// (hand edits may add // comments and trailing commas); anything else is read
// as YAML.
func decodeDocument(data []byte) ([]assignment, error) {
	if stripped := bytes.TrimLeft(jsonc.ToJSON(data), " \t\r\n"); len(stripped) > 0 && stripped[0] == '{' {
		return decodeJSON(stripped)
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return nil, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: expected a mapping of option names to values", root.Line)
	}

	batch := make([]assignment, 0, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, val := root.Content[i], root.Content[i+1]
		var v any
		if err := val.Decode(&v); err != nil {
			return nil, fmt.Errorf("line %d: %s: %w", val.Line, key.Value, err)
		}
		batch = append(batch, assignment{name: key.Value, value: v})
	}
	return batch, nil
}

// decodeJSON walks a JSON object token by token so keys keep document order.
// Numbers stay json.Number until coerce sees the option kind.
func decodeJSON(data []byte) ([]assignment, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	var batch []assignment
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("offset %d: expected an option name, got %v", dec.InputOffset(), tok)
		}
		var v any
		if err := dec.Decode(&v); err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		batch = append(batch, assignment{name: key, value: v})
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("offset %d: unexpected data after the top-level object", dec.InputOffset())
	}
	return batch, nil
}

// Load reads a document from r and applies it as one layer. source names
// the document in log records and errors. Loading with OriginDefaults marks
// every key as inherited; any other origin clears that mark.
func (s *Store) Load(r io.Reader, source string, origin Origin) error {
	if origin == OriginDefaults {
		s.logger.Debug("loading defaults", "path", source)
	} else {
		s.logger.Debug("loading config", "path", source)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("reading %s: %w", source, err)
	}
	batch, err := decodeDocument(data)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", source, err)
	}
	if err := s.apply(batch, origin); err != nil {
		return fmt.Errorf("%s: %w", source, err)
	}
	return nil
}

// LoadFile loads the document at path. A missing file is reported as an
// error wrapping fs.ErrNotExist; callers decide whether that is fatal.
func (s *Store) LoadFile(path string, origin Origin) error {
	data, err := s.fs.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	return s.Load(bytes.NewReader(data), path, origin)
}

// Dump writes every option that holds a value and was not inherited from
// the user defaults, as a JSON object with sorted keys. Path options are
// written as assigned (unexpanded) so the file stays portable.
func (s *Store) Dump(w io.Writer) error {
	out := make(map[string]any)
	for _, name := range option.Names() {
		v := fieldTable[name].get(&s.fields)
		if v == nil || s.IsDefault(name) {
			continue
		}
		out[name] = v
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", " ")
	return enc.Encode(out)
}

// DumpFile writes Dump's output to path, replacing the file.
func (s *Store) DumpFile(path string) error {
	var buf bytes.Buffer
	if err := s.Dump(&buf); err != nil {
		return err
	}
	s.logger.Debug("writing config", "path", path)
	if err := s.fs.WriteFile(path, buf.Bytes(), 0o644); err != nil { //nolint:gosec // project config is not secret
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
