// SPDX-License-Identifier: MIT
// Package: bandit/config
//
// config.go - reading test definitions from YAML or JSON files.
//
// Accepted layouts:
//   • a document with a top-level "tests" list;
//   • a bare list of definitions.
//
// JSON is read through the YAML decoder. Unknown keys are rejected so a
// misspelled "dependsOn" does not silently produce a plain test.

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/bandit/coin"
)

// ErrLoad wraps every failure to read or decode a definitions file.
var ErrLoad = errors.New("config: load failed")

// File is the document form of a definitions file.
type File struct {
	Tests []coin.Definition `yaml:"tests" json:"tests"`
}

// Load reads the definitions stored at path.
func Load(path string) ([]coin.Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}

	defs, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLoad, path, err)
	}

	return defs, nil
}

// Parse decodes definitions from data. An empty document yields no
// definitions.
func Parse(data []byte) ([]coin.Definition, error) {
	defs, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}

	return defs, nil
}

func parse(data []byte) ([]coin.Definition, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	if root.Kind == 0 || len(root.Content) == 0 {
		return nil, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	switch root.Content[0].Kind {
	case yaml.SequenceNode:
		var defs []coin.Definition
		if err := decode(dec, &defs); err != nil {
			return nil, err
		}
		return defs, nil
	case yaml.MappingNode:
		var f File
		if err := decode(dec, &f); err != nil {
			return nil, err
		}
		return f.Tests, nil
	default:
		return nil, fmt.Errorf("expected a list of tests or a mapping with a tests key (line %d)",
			root.Content[0].Line)
	}
}

func decode(dec *yaml.Decoder, out any) error {
	if err := dec.Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return err
	}

	return nil
}
