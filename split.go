// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/winpath

package winpath

import "strings"

const (
	// Separator is the canonical path separator.
	Separator = '\\'
	// ListSeparator separates entries of a path list such as PATH.
	ListSeparator = ';'
)

// decompose returns the prefix-normalized form of s and its original prefix.
func decompose(s string) (norm, prefix string) {
	prefix, rest := splitPrefix(s)
	if prefix == "" {
		return s, ""
	}

	return normalizedPrefixText(prefix) + rest, prefix
}

// Dir returns all but the last element of path.
//
// A path without a parent (for example `C:\`) yields its root. Absent,
// empty and single-element relative input yield absent.
func Dir(path Text) Text {
	s := path.String()
	if s == "" {
		return Null
	}

	norm, prefix := decompose(s)
	d, ok := directoryName(norm)
	if !ok {
		d = normalizeSeparators(norm[:rootLength(norm)])
	}

	if prefix != "" {
		d = restorePrefix(d, prefix)
	}

	return nonEmpty(d)
}

// Base returns the last element of path.
//
// Trailing separators are removed first. When nothing but a root remains the
// result is `\`, or absent for paths with a special prefix.
func Base(path Text) Text {
	s := path.String()
	if s == "" {
		return Null
	}

	norm, prefix := decompose(s)
	name := fileName(trimTrailingSeparators(norm))
	if name != "" {
		return Of(name)
	}

	if prefix != "" {
		return Null
	}

	return Of(string(Separator))
}

// Split splits path immediately after its parent directory.
//
// A path ending in a separator is returned whole with an empty file part.
// Otherwise dir is the parent computed as Dir does, with "" for a single
// relative element. Absent or empty input yields two absent values.
func Split(path Text) (dir, file Text) {
	s := path.String()
	if s == "" {
		return Null, Null
	}

	if isSep(s[len(s)-1]) {
		return Of(s), Of("")
	}

	norm, prefix := decompose(s)
	d, ok := directoryName(norm)
	if !ok {
		d = normalizeSeparators(norm[:rootLength(norm)])
	}

	if prefix != "" {
		d = restorePrefix(d, prefix)
	}

	return Of(d), Of(fileName(norm))
}

// Ext returns the extension of the last element, including the dot.
func Ext(path Text) Text {
	s := path.String()
	if s == "" {
		return Null
	}

	norm, _ := decompose(s)
	return nonEmpty(extension(norm))
}

// VolumeName returns the root of path: a drive (`C:\`), a UNC share
// (`\\server\share`) or a device root (`\\?\Volume{...}\`).
func VolumeName(path Text) Text {
	s := path.String()
	if s == "" {
		return Null
	}

	norm, prefix := decompose(s)
	root, ok := pathRoot(norm)
	if !ok {
		return Null
	}

	if prefix != "" {
		root = restorePrefix(root, prefix)
	}

	return nonEmpty(root)
}

// IsAbs reports whether path is fully qualified: a drive with a root, a UNC
// share, or any path with a special prefix.
func IsAbs(path Text) bool {
	s := path.String()
	if s == "" {
		return false
	}

	return !isPartiallyQualified(normalizePrefix(s))
}

// FromSlash replaces each slash with a backslash.
func FromSlash(path Text) Text {
	s := path.String()
	if s == "" {
		return Null
	}

	return Of(strings.ReplaceAll(s, "/", `\`))
}

// ToSlash replaces each backslash with a slash.
func ToSlash(path Text) Text {
	s := path.String()
	if s == "" {
		return Null
	}

	return Of(strings.ReplaceAll(s, `\`, "/"))
}

// SplitList splits a ListSeparator-joined list. Absent or empty input
// yields an empty, non-nil slice.
func SplitList(list Text) []string {
	s := list.String()
	if s == "" {
		return []string{}
	}

	return strings.Split(s, string(ListSeparator))
}
