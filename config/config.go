// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/winpath

// Package config loads winpath engine settings from a YAML file and
// WINPATH_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. WINPATH_WALK_MAX_DEPTH=3.
const EnvPrefix = "WINPATH"

// Config is the complete engine configuration.
//
// Sources in order of precedence:
//  1. Environment variables (WINPATH_*)
//  2. Configuration file (YAML)
//  3. Default values
type Config struct {
	// Logging controls glog verbosity.
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`

	// Pattern controls glob compilation.
	Pattern PatternConfig `mapstructure:"pattern" yaml:"pattern"`

	// Backend selects the host backend and its options.
	Backend BackendConfig `mapstructure:"backend" yaml:"backend"`

	// Walk holds defaults for every walk.
	Walk WalkConfig `mapstructure:"walk" yaml:"walk"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	// Verbosity is the glog -v level, 0 to 5.
	Verbosity int `mapstructure:"verbosity" yaml:"verbosity" validate:"gte=0,lte=5"`
}

// PatternConfig controls pattern compilation.
type PatternConfig struct {
	// RangeCheck is "lenient" or "strict".
	RangeCheck string `mapstructure:"range_check" yaml:"range_check" validate:"required,oneof=lenient strict"`

	// IgnoreCase makes Match and Glob case-insensitive.
	IgnoreCase bool `mapstructure:"ignore_case" yaml:"ignore_case"`
}

// BackendConfig selects the backend.
//
// Options is decoded into the options type of the selected backend:
// long_paths for native, case_sensitive for portable.
type BackendConfig struct {
	// Type is "native" or "portable".
	Type string `mapstructure:"type" yaml:"type" validate:"required,oneof=native portable"`

	// Options holds backend-specific settings.
	Options map[string]any `mapstructure:"options" yaml:"options,omitempty"`
}

// WalkConfig holds walk defaults.
type WalkConfig struct {
	// RulesFile names a per-directory rules file, empty to disable.
	RulesFile string `mapstructure:"rules_file" yaml:"rules_file,omitempty" validate:"omitempty,excludesall=/\\"`

	// MaxDepth limits recursion, 0 for unlimited.
	MaxDepth int `mapstructure:"max_depth" yaml:"max_depth" validate:"gte=0"`

	// ReportSubtreeErrors yields enumeration errors instead of skipping.
	ReportSubtreeErrors bool `mapstructure:"report_subtree_errors" yaml:"report_subtree_errors"`
}

// Load loads configuration from file, environment and defaults, then
// validates it. An empty configPath searches the default location; a
// missing file is not an error.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setupViper(v, configPath)

	if err := readConfigFile(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// setupViper registers env overrides, the config file and default keys.
func setupViper(v *viper.Viper, configPath string) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Keys must be known to viper for AutomaticEnv to reach Unmarshal.
	d := GetDefaultConfig()
	v.SetDefault("logging.verbosity", d.Logging.Verbosity)
	v.SetDefault("pattern.range_check", d.Pattern.RangeCheck)
	v.SetDefault("pattern.ignore_case", d.Pattern.IgnoreCase)
	v.SetDefault("backend.type", d.Backend.Type)
	v.SetDefault("walk.rules_file", d.Walk.RulesFile)
	v.SetDefault("walk.max_depth", d.Walk.MaxDepth)
	v.SetDefault("walk.report_subtree_errors", d.Walk.ReportSubtreeErrors)

	if configPath != "" {
		v.SetConfigFile(configPath)
		return
	}

	v.AddConfigPath(GetConfigDir())
	v.SetConfigName("config")
	v.SetConfigType("yaml")
}

// readConfigFile reads the configuration file if it exists.
func readConfigFile(v *viper.Viper) error {
	err := v.ReadInConfig()
	if err == nil {
		return nil
	}

	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return fmt.Errorf("failed to read config file: %w", err)
}

// GetConfigDir returns $XDG_CONFIG_HOME/winpath, ~/.config/winpath, or "."
// when no home directory is known.
func GetConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "winpath")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}

	return filepath.Join(home, ".config", "winpath")
}

// GetDefaultConfigPath returns the default configuration file path.
func GetDefaultConfigPath() string {
	return filepath.Join(GetConfigDir(), "config.yaml")
}
