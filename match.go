// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/winpath

package winpath

import (
	"fmt"
	"slices"
	"strings"

	"github.com/golang/glog"
)

// Match reports whether name matches pattern, with lenient range checks.
//
// An absent or empty name matches only an absent or empty pattern. Syntax
// errors are returned as *PatternError.
func Match(pattern, name Text) (bool, error) {
	return match(pattern, name, CompileOptions{})
}

func match(pattern, name Text, opts CompileOptions) (bool, error) {
	if pattern.IsEmpty() && name.IsEmpty() {
		return true, nil
	}

	p, err := Compile(pattern.String(), opts)
	if err != nil {
		return false, err
	}

	if name.IsNull() {
		return false, nil
	}

	return p.MatchString(name.String()), nil
}

// Glob returns the names of all entries matching pattern, sorted by byte
// order.
//
// Relative patterns are matched against paths relative to the current
// directory, and "." is always a candidate. Absolute patterns are matched
// against full paths. The literal directory head of the pattern, if any,
// is where enumeration starts. An absent or empty pattern yields nil.
func (f *Filepath) Glob(pattern Text) ([]string, error) {
	src := pattern.String()
	if src == "" {
		return nil, nil
	}

	p, err := Compile(src, f.opts.Compile)
	if err != nil {
		return nil, err
	}

	cwd, err := f.backend.Getwd()
	if err != nil {
		return nil, fmt.Errorf("glob: %w", err)
	}

	plan := planGlob(p)
	matches := make([]string, 0, 8)

	start := cwd
	if plan.base != "" {
		start, err = fullPath(normalizePrefix(plan.base), cwd)
		if err != nil {
			return nil, fmt.Errorf("glob %q: %w", src, err)
		}
	}

	absolute := plan.base != "" && IsAbs(Of(plan.base))
	if !absolute && p.MatchString(".") {
		matches = append(matches, ".")
	}

	if st, err := f.backend.Stat(start); err != nil || !st.IsDir() {
		glog.V(3).Infof("glob.start.missing: pattern=%q, start=%s", src, start)
		return matches, nil
	}

	w := &walker{
		backend:  f.backend,
		cwd:      cwd,
		base:     start,
		root:     start,
		maxDepth: plan.depth,
	}
	// Native filters compare with the backend's case rules, which can be
	// stricter than a case-insensitive pattern.
	if plan.depth == 1 && !f.opts.Compile.IgnoreCase {
		w.nameFilter = plan.filter
	}

	candidates := 0
	w.visit(start, 1, nil, func(e *DirEntry, err error) bool {
		if err != nil {
			return true
		}

		candidates++
		name := e.RelativePath
		if plan.base != "" {
			name = combine(plan.base, name)
		}

		if p.MatchString(name) {
			matches = append(matches, name)
		}

		return true
	})

	glog.V(3).Infof("glob.done: pattern=%q, start=%s, candidates=%d, matches=%d", src, start, candidates, len(matches))

	slices.Sort(matches)
	return matches, nil
}

// globPlan is where and how deep Glob enumerates.
type globPlan struct {
	// base is the literal directory head of the pattern, "" for none.
	base string
	// filter is the native filter of the last pattern element.
	filter string
	// depth is the number of path elements below base, 0 for unbounded.
	depth int
}

// planGlob splits the pattern into a literal directory head and a tail.
//
// Wildcards never match a separator, so the tail fixes the enumeration
// depth unless a range could match one.
func planGlob(p *Pattern) globPlan {
	var head strings.Builder
	headEnd := -1
	wild := false
	tailSeps := 0
	unbounded := false

	for i, tok := range p.tokens {
		switch tok.Kind {
		case TokenStar, TokenQuestion:
			wild = true
		case TokenRange:
			wild = true
			if tok.Negated || rangeHasSeparator(tok.Low, tok.High) {
				unbounded = true
			}
		case TokenSeparator:
			if wild {
				tailSeps++
				continue
			}

			head.WriteByte('\\')
			headEnd = i
		case TokenEscaped:
			if !wild {
				head.WriteRune(tok.Char)
			}
		case TokenLiteral:
			if !wild {
				head.WriteString(tok.Text)
			}
		}
	}

	plan := globPlan{filter: p.filter}
	if i := strings.LastIndexByte(plan.filter, '\\'); i >= 0 {
		plan.filter = plan.filter[i+1:]
	}

	if headEnd >= 0 {
		base := head.String()
		base = base[:strings.LastIndexByte(base, '\\')+1]
		if len(base) > 1 && rootLength(base) < len(base) {
			base = strings.TrimRight(base, `\`)
		}

		plan.base = base
		tailSeps = 0
		for _, tok := range p.tokens[headEnd+1:] {
			if tok.Kind == TokenSeparator {
				tailSeps++
			}
		}
	}

	if !unbounded {
		plan.depth = tailSeps + 1
	}

	return plan
}

func rangeHasSeparator(lo, hi rune) bool {
	return (lo <= '/' && '/' <= hi) || (lo <= '\\' && '\\' <= hi)
}
