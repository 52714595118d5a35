// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/winpath

package winpath

import (
	"io"
	"strings"
	"time"
	"unicode"
)

// File attribute bits reported in Entry.Attributes.
const (
	FileAttributeReadonly     uint32 = 0x1
	FileAttributeHidden       uint32 = 0x2
	FileAttributeDirectory    uint32 = 0x10
	FileAttributeNormal       uint32 = 0x80
	FileAttributeReparsePoint uint32 = 0x400
)

// Backend is the host capability used by every operation that touches the
// filesystem or the process working directory.
//
// Paths passed in and returned use backslashes.
type Backend interface {
	// Getwd returns the current working directory.
	Getwd() (string, error)
	// Chdir changes the current working directory.
	Chdir(dir string) error
	// Stat probes one path.
	Stat(path string) (Entry, error)
	// ReadDir opens an enumeration of the children of dir whose names match
	// the native filter ("*" matches all).
	ReadDir(dir, filter string) (DirIterator, error)
	// Open opens a file for reading.
	Open(path string) (io.ReadCloser, error)
}

// DirIterator enumerates one directory one name at a time.
type DirIterator interface {
	// Next returns the next entry, or io.EOF when the directory is exhausted.
	Next() (Entry, error)
	// Close releases the enumeration handle.
	Close() error
}

// Entry is one native directory record.
type Entry struct {
	// ModTime is the last write time.
	ModTime time.Time `json:"mod_time"`
	// Sys is the raw native record, if any.
	Sys any `json:"-"`
	// Name is the entry name without directory.
	Name string `json:"name"`
	// Size is the file size in bytes.
	Size uint64 `json:"size"`
	// Attributes holds FileAttribute* bits.
	Attributes uint32 `json:"attributes"`
}

// IsDir reports whether the directory attribute is set.
func (e Entry) IsDir() bool {
	return e.Attributes&FileAttributeDirectory != 0
}

// matchNativeFilter matches name against a native wildcard filter where `*`
// matches any run and `?` one character.
func matchNativeFilter(filter, name string, caseSensitive bool) bool {
	if filter == "" || filter == "*" {
		return true
	}

	p := []rune(filter)
	s := []rune(name)
	pIdx, sIdx := 0, 0
	starPattern, starInput := -1, 0

	for sIdx < len(s) {
		if pIdx < len(p) && (p[pIdx] == '?' || sameRune(p[pIdx], s[sIdx], caseSensitive)) {
			pIdx++
			sIdx++
			continue
		}

		if pIdx < len(p) && p[pIdx] == '*' {
			starPattern = pIdx
			pIdx++
			starInput = sIdx
			continue
		}

		if starPattern >= 0 {
			pIdx = starPattern + 1
			starInput++
			sIdx = starInput
			continue
		}

		return false
	}

	for pIdx < len(p) && p[pIdx] == '*' {
		pIdx++
	}

	return pIdx == len(p)
}

func sameRune(a, b rune, caseSensitive bool) bool {
	if a == b {
		return true
	}

	return !caseSensitive && unicode.ToUpper(a) == unicode.ToUpper(b)
}

// NativeOptions configures the Win32 backend.
type NativeOptions struct {
	// LongPaths routes fully qualified paths through the `\\?\` form so
	// names beyond MAX_PATH can be enumerated.
	LongPaths bool `mapstructure:"long_paths" json:"long_paths,omitempty" yaml:"long_paths,omitempty"`
}

// extendedLengthPath returns the `\\?\` (or `\\?\UNC\`) spelling of a fully
// qualified path, and p unchanged when that is not possible.
func extendedLengthPath(p string) string {
	if ParsePrefix(p).Kind != PrefixNone || isPartiallyQualified(p) {
		return p
	}

	p = toBackslash(p)
	if strings.HasPrefix(p, `\\`) {
		return `\\?\UNC\` + p[2:]
	}

	return `\\?\` + p
}
