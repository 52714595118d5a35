// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/winpath

package config

import (
	"flag"
	"fmt"
	"strconv"

	"github.com/golang/glog"
	"github.com/mitchellh/mapstructure"
	"github.com/woozymasta/winpath"
)

// CreateBackend builds the backend selected by cfg.Type.
func CreateBackend(cfg *BackendConfig) (winpath.Backend, error) {
	opts, err := decodeBackendOptions(cfg)
	if err != nil {
		return nil, err
	}

	switch o := opts.(type) {
	case winpath.NativeOptions:
		return winpath.NewNativeBackend(o)
	case winpath.PortableOptions:
		return winpath.NewPortableBackend(o), nil
	}

	return nil, fmt.Errorf("unknown backend type: %q", cfg.Type)
}

// decodeBackendOptions decodes cfg.Options into the options type of cfg.Type.
// Unknown keys are rejected.
func decodeBackendOptions(cfg *BackendConfig) (any, error) {
	switch cfg.Type {
	case "native":
		var o winpath.NativeOptions
		if err := decodeStrict(cfg.Options, &o); err != nil {
			return nil, err
		}

		return o, nil
	case "portable":
		var o winpath.PortableOptions
		if err := decodeStrict(cfg.Options, &o); err != nil {
			return nil, err
		}

		return o, nil
	}

	return nil, fmt.Errorf("unknown backend type: %q", cfg.Type)
}

// decodeStrict runs mapstructure with weak typing, so "true" from an
// environment variable still decodes into a bool.
func decodeStrict(input map[string]any, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return fmt.Errorf("failed to create decoder: %w", err)
	}

	if err := decoder.Decode(input); err != nil {
		return fmt.Errorf("failed to decode options: %w", err)
	}

	return nil
}

// EngineOptions converts the configuration into winpath engine options.
func (c *Config) EngineOptions() (winpath.Options, error) {
	check, err := winpath.ParseRangeCheck(c.Pattern.RangeCheck)
	if err != nil {
		return winpath.Options{}, fmt.Errorf("pattern.range_check: %w", err)
	}

	return winpath.Options{
		Compile: winpath.CompileOptions{
			RangeCheck: check,
			IgnoreCase: c.Pattern.IgnoreCase,
		},
		Walk: winpath.WalkOptions{
			RulesFileName:       c.Walk.RulesFile,
			MaxDepth:            c.Walk.MaxDepth,
			ReportSubtreeErrors: c.Walk.ReportSubtreeErrors,
			RuleOptions: winpath.FilterOptions{
				DefaultAction:   winpath.ActionInclude,
				RangeCheck:      check,
				CaseInsensitive: c.Pattern.IgnoreCase,
			},
		},
	}, nil
}

// NewFilepath builds the engine described by cfg.
func NewFilepath(cfg *Config) (*winpath.Filepath, error) {
	backend, err := CreateBackend(&cfg.Backend)
	if err != nil {
		return nil, err
	}

	opts, err := cfg.EngineOptions()
	if err != nil {
		return nil, err
	}

	glog.V(1).Infof("config.engine: backend=%s, range_check=%s, rules_file=%q, max_depth=%d",
		cfg.Backend.Type, opts.Compile.RangeCheck, opts.Walk.RulesFileName, opts.Walk.MaxDepth)

	return winpath.New(backend, opts), nil
}

// ApplyLogging sets the glog -v level from cfg.
func ApplyLogging(cfg *LoggingConfig) error {
	if err := flag.Set("v", strconv.Itoa(cfg.Verbosity)); err != nil {
		return fmt.Errorf("logging.verbosity: %w", err)
	}

	return nil
}
