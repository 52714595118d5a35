// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/winpath

package winpath

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
)

// ruleScope is one level of the rule chain active during a walk: the rules
// of one directory and the scopes of its ancestors.
type ruleScope struct {
	parent *ruleScope
	filter *Filter
	// dir is the full path the rules are relative to.
	dir string
}

// decide evaluates the chain root-first; the last matched rule wins.
func (s *ruleScope) decide(full string, isDir bool) MatchResult {
	chain := make([]*ruleScope, 0, 4)
	for c := s; c != nil; c = c.parent {
		chain = append(chain, c)
	}

	res := MatchResult{
		Included:  chain[len(chain)-1].filter.defaultAction == ActionInclude,
		RuleIndex: -1,
	}

	for i := len(chain) - 1; i >= 0; i-- {
		c := chain[i]
		r := c.filter.Decide(descendantPath(c.dir, full), isDir)
		if r.Matched {
			res = r
		}
	}

	return res
}

// included reports whether the chain keeps full.
func (s *ruleScope) included(full string, isDir bool) bool {
	return s.decide(full, isDir).Included
}

// loadRules pushes the rules file of dir, if present, onto scope.
func (w *walker) loadRules(dir string, scope *ruleScope) (*ruleScope, error) {
	if w.rulesFileName == "" {
		return scope, nil
	}

	path := combine(dir, w.rulesFileName)
	rules, err := ReadRulesFile(w.backend, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return scope, nil
		}

		return scope, err
	}

	if len(rules) == 0 {
		return scope, nil
	}

	filter, err := NewFilter(rules, w.ruleOptions)
	if err != nil {
		return scope, fmt.Errorf("compile %s: %w", path, err)
	}

	return &ruleScope{parent: scope, dir: dir, filter: filter}, nil
}

// descendantPath returns full relative to its ancestor dir.
func descendantPath(dir, full string) string {
	if len(full) <= len(dir) || !strings.EqualFold(full[:len(dir)], dir) {
		return full
	}

	return strings.TrimLeft(full[len(dir):], `\`)
}
