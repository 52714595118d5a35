// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/winpath

package winpath

// Action is the decision a rule applies to the paths it matches.
type Action uint8

const (
	// ActionUnknown is unset/invalid action placeholder.
	ActionUnknown Action = iota
	// ActionExclude means matching path should be excluded.
	ActionExclude
	// ActionInclude means matching path should be included.
	ActionInclude
)

// String returns "include", "exclude" or "unknown".
func (a Action) String() string {
	switch a {
	case ActionExclude:
		return "exclude"
	case ActionInclude:
		return "include"
	}

	return "unknown"
}

// Rule is one include/exclude rule over glob patterns.
type Rule struct {
	// Pattern uses the Compile grammar. Without a separator it matches the
	// entry name; with one it matches the path relative to the directory
	// the rule belongs to. A trailing separator limits it to directories.
	Pattern string `json:"pattern" yaml:"pattern"`
	// Action is a decision action applied when the rule matches.
	Action Action `json:"action" yaml:"action"`
}

// FilterOptions controls Filter behavior.
type FilterOptions struct {
	// DefaultAction is applied when no rule matched.
	DefaultAction Action `json:"default_action,omitempty" yaml:"default_action,omitempty"`
	// RangeCheck is used to compile rule patterns.
	RangeCheck RangeCheck `json:"range_check,omitempty" yaml:"range_check,omitempty"`
	// CaseInsensitive compiles rule patterns ignoring letter case.
	CaseInsensitive bool `json:"case_insensitive,omitempty" yaml:"case_insensitive,omitempty"`
}

// MatchResult is a deterministic decision produced by a Filter.
type MatchResult struct {
	// Included reports final include decision.
	Included bool `json:"included" yaml:"included"`
	// Matched reports whether at least one rule matched.
	Matched bool `json:"matched" yaml:"matched"`
	// RuleIndex is the matched rule index in input order, -1 when no match.
	RuleIndex int `json:"rule_index" yaml:"rule_index"`
}

// applyDefaults fills zero-valued options with defaults.
func (opts *FilterOptions) applyDefaults() {
	if !opts.DefaultAction.valid() {
		opts.DefaultAction = ActionInclude
	}
}

// valid reports whether action value is supported.
func (a Action) valid() bool {
	return a == ActionExclude || a == ActionInclude
}
