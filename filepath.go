// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/winpath

package winpath

import (
	"errors"
	"fmt"
	"io/fs"
)

// Options configures a Filepath engine.
type Options struct {
	// Compile is applied to every pattern compiled by Match and Glob.
	Compile CompileOptions `json:"compile" yaml:"compile"`
	// Walk holds defaults merged into the options of every Walk call.
	Walk WalkOptions `json:"walk" yaml:"walk"`
}

// Filepath runs the operations that depend on ambient host state: the
// current directory and the filesystem, both reached through a Backend.
//
// A Filepath holds no mutable state of its own and may be shared.
type Filepath struct {
	backend Backend
	opts    Options
}

// New returns an engine over backend. A nil backend selects the portable one.
func New(backend Backend, opts Options) *Filepath {
	if backend == nil {
		backend = NewPortableBackend(PortableOptions{})
	}

	return &Filepath{backend: backend, opts: opts}
}

// Backend returns the engine backend.
func (f *Filepath) Backend() Backend {
	return f.backend
}

// Getwd returns the current directory.
func (f *Filepath) Getwd() (Text, error) {
	wd, err := f.backend.Getwd()
	if err != nil {
		return Null, err
	}

	return Of(wd), nil
}

// Chdir changes the current directory.
func (f *Filepath) Chdir(dir Text) error {
	s := dir.String()
	if s == "" {
		return fmt.Errorf("chdir: %w", ErrInvalidArgument)
	}

	return f.backend.Chdir(s)
}

// Abs returns an absolute, cleaned form of path.
//
// Relative, rooted (`\x`) and drive-relative (`C:x`) paths are resolved
// against the current directory. Absent or empty input is ErrInvalidArgument.
func (f *Filepath) Abs(path Text) (Text, error) {
	s := path.String()
	if s == "" {
		return Null, fmt.Errorf("abs: %w", ErrInvalidArgument)
	}

	if IsAbs(path) {
		return Clean(path), nil
	}

	cwd, err := f.backend.Getwd()
	if err != nil {
		return Null, fmt.Errorf("abs %q: %w", s, err)
	}

	full, err := fullPath(s, cwd)
	if err != nil {
		return Null, fmt.Errorf("abs %q: %w", s, err)
	}

	return Clean(Of(full)), nil
}

// Rel returns targ expressed relative to base.
//
// An absent or empty targ yields absent with no error. Operands on different
// roots, such as two drives, fail with ErrNoRelativePath, which also matches
// ErrInvalidArgument.
func (f *Filepath) Rel(base, targ Text) (Text, error) {
	t := targ.String()
	if t == "" {
		return Null, nil
	}

	b := base.String()
	if b == "" {
		return Null, fmt.Errorf("rel: base: %w", ErrInvalidArgument)
	}

	cwd, err := f.backend.Getwd()
	if err != nil {
		return Null, fmt.Errorf("rel: %w", err)
	}

	rel, err := relPath(b, t, cwd)
	if err != nil {
		return Null, err
	}

	return Of(rel), nil
}

// relPath is Rel on plain strings.
func relPath(base, targ, cwd string) (string, error) {
	rel, err := relativePath(normalizePrefix(base), normalizePrefix(targ), cwd)
	if errors.Is(err, ErrNoRelativePath) {
		return "", fmt.Errorf("rel: can't make %s relative to %s: %w (%w)", targ, base, ErrNoRelativePath, ErrInvalidArgument)
	}

	if err != nil {
		return "", fmt.Errorf("rel: %w", err)
	}

	return rel, nil
}

// Match reports whether name matches pattern using the engine options.
func (f *Filepath) Match(pattern, name Text) (bool, error) {
	return match(pattern, name, f.opts.Compile)
}

// EvalSymlinks probes that path exists and returns it cleaned.
//
// When the plain form is missing, the extended-length form (`\\?\` or
// `\\?\UNC\`) is probed and returned if it exists. Links are not resolved.
func (f *Filepath) EvalSymlinks(path Text) (Text, error) {
	s := path.String()
	if s == "" {
		return Null, nil
	}

	cleaned := Clean(path).String()
	_, err := f.backend.Stat(cleaned)
	if err == nil {
		return Of(cleaned), nil
	}

	if !errors.Is(err, fs.ErrNotExist) {
		return Null, err
	}

	if ParsePrefix(cleaned).Kind == PrefixNone {
		full, absErr := f.Abs(Of(cleaned))
		if absErr == nil {
			ext := extendedLengthPath(full.String())
			if ext != full.String() {
				if _, err := f.backend.Stat(ext); err == nil {
					return Of(ext), nil
				}
			}
		}
	}

	return Null, &fs.PathError{Op: "evalsymlinks", Path: s, Err: ERROR_PATH_NOT_FOUND}
}
