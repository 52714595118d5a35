// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/winpath

package winpath

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"time"

	"github.com/golang/glog"
)

// WalkOptions controls Walk.
type WalkOptions struct {
	// Base is the directory relative paths are computed against. Empty means
	// the current directory at the time Walk is called.
	Base string `json:"base,omitempty" yaml:"base,omitempty"`
	// RulesFileName, when set, names a rules file loaded from every visited
	// directory. Its rules apply to that directory's subtree and override
	// rules from parent directories.
	RulesFileName string `json:"rules_file_name,omitempty" yaml:"rules_file_name,omitempty"`
	// Rules are evaluated against paths relative to the walk root before any
	// rules file. Excluded directories are not descended into.
	Rules []Rule `json:"rules,omitempty" yaml:"rules,omitempty"`
	// RuleOptions controls compilation and the default decision of rules.
	RuleOptions FilterOptions `json:"rule_options" yaml:"rule_options"`
	// MaxDepth limits recursion below the root; 0 means unlimited and 1
	// yields only the root and its children.
	MaxDepth int `json:"max_depth,omitempty" yaml:"max_depth,omitempty"`
	// ReportSubtreeErrors yields (nil, err) for a directory that cannot be
	// enumerated. By default such subtrees are skipped and only logged.
	ReportSubtreeErrors bool `json:"report_subtree_errors,omitempty" yaml:"report_subtree_errors,omitempty"`
}

// merge fills unset fields of o from defaults.
func (o WalkOptions) merge(defaults WalkOptions) WalkOptions {
	if o.Base == "" {
		o.Base = defaults.Base
	}

	if o.RulesFileName == "" {
		o.RulesFileName = defaults.RulesFileName
	}

	if len(defaults.Rules) > 0 {
		o.Rules = MergeRules(defaults.Rules, o.Rules)
	}

	if o.RuleOptions == (FilterOptions{}) {
		o.RuleOptions = defaults.RuleOptions
	}

	if o.MaxDepth == 0 {
		o.MaxDepth = defaults.MaxDepth
	}

	o.ReportSubtreeErrors = o.ReportSubtreeErrors || defaults.ReportSubtreeErrors
	return o
}

// DirEntry is one entry produced by Walk.
type DirEntry struct {
	// ModTime is the last write time.
	ModTime time.Time `json:"mod_time"`
	// Sys is the raw native record.
	Sys any `json:"-"`
	// RelativePath is the entry path relative to the walk base.
	RelativePath string `json:"relative_path"`
	// Path is the full path of the entry.
	Path string `json:"path"`
	// Name is the last element of Path.
	Name string `json:"name"`
	// Size is the file size in bytes.
	Size uint64 `json:"size"`
	// Attributes holds FileAttribute* bits.
	Attributes uint32 `json:"attributes"`
	// IsDir reports a directory.
	IsDir bool `json:"is_dir"`
}

// Walk returns a lazy pre-order traversal of the tree rooted at root.
//
// The first element is root itself, then every child of a directory is
// yielded before its own children. Sibling order is the native enumeration
// order. Each range over the sequence opens fresh enumeration handles and
// closes them when the loop ends, including on break.
//
// The error result is the fatal slot: it is set when root is not an
// existing directory, in which case the sequence yields nothing.
func (f *Filepath) Walk(root string, opts WalkOptions) (iter.Seq2[*DirEntry, error], error) {
	opts = opts.merge(f.opts.Walk)
	empty := func(func(*DirEntry, error) bool) {}

	cwd, err := f.backend.Getwd()
	if err != nil {
		return empty, fmt.Errorf("walk: %w", err)
	}

	rootFull, err := fullPath(normalizePrefix(root), cwd)
	if err != nil {
		return empty, fmt.Errorf("walk %q: directory not found: %w", root, ErrPathNotFound)
	}

	st, err := f.backend.Stat(rootFull)
	if err != nil {
		return empty, fmt.Errorf("walk %q: directory not found: %w", root, err)
	}

	if !st.IsDir() {
		return empty, fmt.Errorf("walk %q: directory not found: %w", root, ERROR_DIRECTORY)
	}

	base := cwd
	if opts.Base != "" {
		if base, err = fullPath(normalizePrefix(opts.Base), cwd); err != nil {
			return empty, fmt.Errorf("walk base %q: %w", opts.Base, err)
		}
	}

	rules, err := NewFilter(opts.Rules, opts.RuleOptions)
	if err != nil {
		return empty, fmt.Errorf("walk rules: %w", err)
	}

	w := &walker{
		backend:       f.backend,
		cwd:           cwd,
		base:          base,
		root:          rootFull,
		rootStat:      st,
		rules:         rules,
		rulesFileName: opts.RulesFileName,
		ruleOptions:   opts.RuleOptions,
		maxDepth:      opts.MaxDepth,
		reportErrors:  opts.ReportSubtreeErrors,
	}

	return w.all, nil
}

// walker holds the immutable parameters of one Walk.
type walker struct {
	backend       Backend
	rules         *Filter
	rootStat      Entry
	cwd           string
	base          string
	root          string
	rulesFileName string
	nameFilter    string
	ruleOptions   FilterOptions
	maxDepth      int
	reportErrors  bool
}

// all is the iter.Seq2 returned by Walk.
func (w *walker) all(yield func(*DirEntry, error) bool) {
	rootEntry, err := w.entry(w.root, w.rootStat)
	if err != nil {
		glog.V(2).Infof("walk.rel.failed: path=%s, base=%s, err=%v", w.root, w.base, err)
		if w.reportErrors {
			yield(nil, err)
		}

		return
	}

	if !yield(rootEntry, nil) {
		return
	}

	var scope *ruleScope
	if w.rules != nil && len(w.rules.compiled) > 0 {
		scope = &ruleScope{dir: w.root, filter: w.rules}
	}

	w.visit(w.root, 1, scope, yield)
}

// visit yields the subtree below dir and reports whether to continue.
func (w *walker) visit(dir string, depth int, scope *ruleScope, yield func(*DirEntry, error) bool) bool {
	if w.maxDepth > 0 && depth > w.maxDepth {
		return true
	}

	scope, err := w.loadRules(dir, scope)
	if err != nil {
		glog.V(1).Infof("walk.rules.failed: path=%s, err=%v", dir, err)
		if w.reportErrors && !yield(nil, err) {
			return false
		}
	}

	filter := "*"
	if depth == w.maxDepth && w.nameFilter != "" {
		filter = w.nameFilter
	}

	it, err := w.backend.ReadDir(dir, filter)
	if err != nil {
		glog.V(1).Infof("walk.readdir.failed: path=%s, err=%v", dir, err)
		if w.reportErrors {
			return yield(nil, err)
		}

		return true
	}
	defer func() { _ = it.Close() }()

	for {
		e, err := it.Next()
		if errors.Is(err, io.EOF) {
			return true
		}

		if err != nil {
			glog.V(1).Infof("walk.readdir.failed: path=%s, err=%v", dir, err)
			if w.reportErrors {
				return yield(nil, err)
			}

			return true
		}

		if e.Name == "." || e.Name == ".." {
			continue
		}

		full := combine(dir, e.Name)
		if scope != nil && !scope.included(full, e.IsDir()) {
			continue
		}

		de, err := w.entry(full, e)
		if err != nil {
			glog.V(2).Infof("walk.rel.failed: path=%s, base=%s, err=%v", full, w.base, err)
			if w.reportErrors && !yield(nil, err) {
				return false
			}

			continue
		}

		if !yield(de, nil) {
			return false
		}

		if e.IsDir() && e.Attributes&FileAttributeReparsePoint == 0 {
			if !w.visit(full, depth+1, scope, yield) {
				return false
			}
		}
	}
}

// entry builds the DirEntry of one native record.
func (w *walker) entry(full string, e Entry) (*DirEntry, error) {
	rel, err := relPath(w.base, full, w.cwd)
	if err != nil {
		return nil, err
	}

	name := e.Name
	if full == w.root {
		name = fileName(trimTrailingSeparators(full))
	}

	return &DirEntry{
		RelativePath: rel,
		Path:         full,
		Name:         name,
		Size:         e.Size,
		ModTime:      e.ModTime,
		IsDir:        e.IsDir(),
		Attributes:   e.Attributes,
		Sys:          e.Sys,
	}, nil
}
