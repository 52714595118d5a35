// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/winpath

package winpath

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// ParseRules parses rules, one per line.
//
// Semantics:
// - blank lines and lines starting with "#" are ignored
// - "!" creates an include rule, plain lines create exclude rules
// - "\#" and "\!" escape a leading comment or negation marker
// - trailing spaces are dropped unless the last one is escaped as `\ `
func ParseRules(r io.Reader) ([]Rule, error) {
	s := bufio.NewScanner(r)
	rules := make([]Rule, 0, 16)

	for s.Scan() {
		rule, ok := parseRuleLine(s.Text())
		if !ok || rule.Pattern == "" {
			continue
		}

		rules = append(rules, rule)
	}

	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("scan rules: %w", err)
	}

	return rules, nil
}

// ParseRulesString parses rules from string input.
func ParseRulesString(src string) ([]Rule, error) {
	return ParseRules(strings.NewReader(src))
}

// parseRuleLine parses one line; ok is false for blank and comment lines.
func parseRuleLine(line string) (Rule, bool) {
	line = trimTrailingSpaces(strings.TrimRight(line, "\r"))
	if line == "" || line[0] == '#' {
		return Rule{}, false
	}

	rule := Rule{Action: ActionExclude}
	switch {
	case strings.HasPrefix(line, `\#`), strings.HasPrefix(line, `\!`):
		line = line[1:]
	case line[0] == '!':
		rule.Action = ActionInclude
		line = line[1:]
	}

	rule.Pattern = line
	return rule, true
}

// trimTrailingSpaces removes trailing spaces and tabs, stopping at `\ `,
// which is an escaped space in the pattern grammar.
func trimTrailingSpaces(s string) string {
	for len(s) > 0 && (s[len(s)-1] == ' ' || s[len(s)-1] == '\t') {
		if len(s) >= 2 && s[len(s)-2] == '\\' {
			break
		}

		s = s[:len(s)-1]
	}

	return s
}
