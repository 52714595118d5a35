// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/winpath

package config

import (
	"runtime"
	"strings"
)

// ApplyDefaults fills unset fields and normalizes enumerations.
func ApplyDefaults(cfg *Config) {
	cfg.Pattern.RangeCheck = strings.ToLower(strings.TrimSpace(cfg.Pattern.RangeCheck))
	if cfg.Pattern.RangeCheck == "" {
		cfg.Pattern.RangeCheck = "lenient"
	}

	cfg.Backend.Type = strings.ToLower(strings.TrimSpace(cfg.Backend.Type))
	if cfg.Backend.Type == "" {
		cfg.Backend.Type = defaultBackendType()
	}

	if cfg.Backend.Options == nil {
		cfg.Backend.Options = map[string]any{}
	}
}

// GetDefaultConfig returns a configuration with every default applied.
func GetDefaultConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// defaultBackendType is native on Windows and portable elsewhere.
func defaultBackendType() string {
	if runtime.GOOS == "windows" {
		return "native"
	}

	return "portable"
}
