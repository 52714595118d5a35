// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/winpath

package config

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// validate is the singleton validator instance.
var validate = validator.New()

// Validate checks struct tags, then the rules tags cannot express.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return formatValidationError(err)
	}

	return validateCustomRules(cfg)
}

// validateCustomRules checks that backend options decode for the selected type.
func validateCustomRules(cfg *Config) error {
	if _, err := decodeBackendOptions(&cfg.Backend); err != nil {
		return fmt.Errorf("backend.options: %w", err)
	}

	if cfg.Walk.RulesFile == "." || cfg.Walk.RulesFile == ".." {
		return fmt.Errorf("walk.rules_file: %q is not a file name", cfg.Walk.RulesFile)
	}

	return nil
}

// formatValidationError reports the first failed field.
func formatValidationError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		e := verrs[0]
		return fmt.Errorf("%s: validation failed on '%s' tag (value: %v)", e.Namespace(), e.Tag(), e.Value())
	}

	return err
}
