// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/winpath

package winpath

import "fmt"

// LoadRulesFile reads and parses a rules file through the portable backend.
func LoadRulesFile(path string) ([]Rule, error) {
	return ReadRulesFile(NewPortableBackend(PortableOptions{}), path)
}

// LoadRulesFiles reads and merges rules files in the given order.
//
// Returned rules preserve file order and rule order inside each file.
func LoadRulesFiles(paths ...string) ([]Rule, error) {
	sets := make([][]Rule, 0, len(paths))
	for _, path := range paths {
		rules, err := LoadRulesFile(path)
		if err != nil {
			return nil, err
		}

		sets = append(sets, rules)
	}

	return MergeRules(sets...), nil
}

// ReadRulesFile reads and parses a rules file through b.
func ReadRulesFile(b Backend, path string) ([]Rule, error) {
	rc, err := b.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open rules file: %w", err)
	}
	defer func() { _ = rc.Close() }()

	rules, err := ParseRules(rc)
	if err != nil {
		return nil, fmt.Errorf("parse rules file %s: %w", path, err)
	}

	return rules, nil
}
