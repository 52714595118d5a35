// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/winpath

package winpath

import (
	"fmt"
	"strings"
)

// Filter evaluates include/exclude decisions against ordered rules.
type Filter struct {
	compiled      []compiledRule
	defaultAction Action
}

// compiledRule is one rule with its compiled pattern.
type compiledRule struct {
	pattern *Pattern
	source  Rule
	// anchored rules match the whole relative path instead of the name.
	anchored bool
	dirOnly  bool
}

// NewFilter compiles ordered rules.
func NewFilter(rules []Rule, opts FilterOptions) (*Filter, error) {
	opts.applyDefaults()

	compiled := make([]compiledRule, 0, len(rules))
	for i, rule := range rules {
		cr, err := compileRule(rule, CompileOptions{
			RangeCheck: opts.RangeCheck,
			IgnoreCase: opts.CaseInsensitive,
		})
		if err != nil {
			return nil, fmt.Errorf("rule %d (%q): %w", i, rule.Pattern, err)
		}

		compiled = append(compiled, cr)
	}

	return &Filter{
		compiled:      compiled,
		defaultAction: opts.DefaultAction,
	}, nil
}

// compileRule strips the directory marker and anchor, then compiles.
func compileRule(rule Rule, opts CompileOptions) (compiledRule, error) {
	if !rule.Action.valid() {
		return compiledRule{}, fmt.Errorf("%w: action %d", ErrInvalidArgument, rule.Action)
	}

	pat := rule.Pattern
	cr := compiledRule{source: rule}

	for {
		trimmed, ok := trimSeparatorSuffix(pat)
		if !ok {
			break
		}

		pat = trimmed
		cr.dirOnly = true
	}

	switch {
	case strings.HasPrefix(pat, "/"):
		pat = pat[1:]
		cr.anchored = true
	case strings.HasPrefix(pat, `\\`):
		pat = pat[2:]
		cr.anchored = true
	}

	if pat == "" {
		return compiledRule{}, fmt.Errorf("%w: empty rule pattern", ErrInvalidArgument)
	}

	p, err := Compile(pat, opts)
	if err != nil {
		return compiledRule{}, err
	}

	for _, tok := range p.tokens {
		if tok.Kind == TokenSeparator {
			cr.anchored = true
			break
		}
	}

	cr.pattern = p
	return cr, nil
}

// trimSeparatorSuffix removes one trailing `/` or `\\` separator unit.
func trimSeparatorSuffix(pat string) (string, bool) {
	switch {
	case strings.HasSuffix(pat, "/"):
		return pat[:len(pat)-1], true
	case strings.HasSuffix(pat, `\\`):
		return pat[:len(pat)-2], true
	}

	return pat, false
}

// matches reports whether rel (backslash-separated, relative) or one of
// its parent directories matches.
func (r *compiledRule) matches(rel string, isDir bool) bool {
	if (!r.dirOnly || isDir) && r.matchesOne(rel) {
		return true
	}

	for i := 0; i < len(rel); i++ {
		if rel[i] == '\\' && r.matchesOne(rel[:i]) {
			return true
		}
	}

	return false
}

// matchesOne matches a single path against the rule.
func (r *compiledRule) matchesOne(rel string) bool {
	if r.anchored {
		return r.pattern.MatchString(rel)
	}

	return r.pattern.MatchString(fileName(rel))
}

// Decide returns deterministic include/exclude decision for one path.
//
// Decision policy:
// - last matched rule wins
// - if no rule matched, default action is used
func (f *Filter) Decide(path string, isDir bool) MatchResult {
	candidate := strings.Trim(toBackslash(path), `\`)

	res := MatchResult{
		Included:  f.defaultAction == ActionInclude,
		Matched:   false,
		RuleIndex: -1,
	}

	for i := range f.compiled {
		if !f.compiled[i].matches(candidate, isDir) {
			continue
		}

		res.Matched = true
		res.RuleIndex = i
		res.Included = f.compiled[i].source.Action == ActionInclude
	}

	return res
}

// Included reports whether path is included by decision policy.
func (f *Filter) Included(path string, isDir bool) bool {
	return f.Decide(path, isDir).Included
}

// Excluded reports whether path is excluded by decision policy.
func (f *Filter) Excluded(path string, isDir bool) bool {
	return !f.Decide(path, isDir).Included
}

// MergeRules concatenates rule slices preserving input order.
func MergeRules(ruleSets ...[]Rule) []Rule {
	total := 0
	for _, set := range ruleSets {
		total += len(set)
	}

	out := make([]Rule, 0, total)
	for _, set := range ruleSets {
		out = append(out, set...)
	}

	return out
}

// ParseExtensions converts an extension list to include rules.
//
// Accepted forms are "txt", ".txt" and "*.txt". Empty values are skipped.
// Combine with FilterOptions.CaseInsensitive to match any letter case.
func ParseExtensions(exts []string) []Rule {
	rules := make([]Rule, 0, len(exts))
	for _, ext := range exts {
		ext = strings.TrimSpace(ext)
		ext = strings.TrimPrefix(ext, "*.")
		ext = strings.TrimLeft(ext, ".")
		if ext == "" {
			continue
		}

		rules = append(rules, Rule{
			Action:  ActionInclude,
			Pattern: "*." + ext,
		})
	}

	return rules
}
