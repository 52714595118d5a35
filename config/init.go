// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/winpath

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const configHeader = `# winpath configuration file
#
# Every key can be overridden with a WINPATH_* environment variable,
# for example WINPATH_PATTERN_RANGE_CHECK=strict.
#
# backend.options for "native":   long_paths: true
# backend.options for "portable": case_sensitive: true

`

// ErrConfigExists is returned by WriteDefault when the target exists and
// force is false.
var ErrConfigExists = errors.New("config file already exists")

// WriteDefault writes the default configuration as YAML to path, or to the
// default location when path is empty, and returns the path written.
func WriteDefault(path string, force bool) (string, error) {
	if path == "" {
		path = GetDefaultConfigPath()
	}

	if !force {
		if _, err := os.Stat(path); err == nil {
			return "", fmt.Errorf("%w: %s", ErrConfigExists, path)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("failed to stat %s: %w", path, err)
		}
	}

	data, err := MarshalYAML(GetDefaultConfig())
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}

	return path, nil
}

// MarshalYAML renders cfg with the explanatory file header.
func MarshalYAML(cfg *Config) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(configHeader)

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}

	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}

	return buf.Bytes(), nil
}
