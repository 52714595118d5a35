// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/winpath

package winpath

import "strings"

// PrefixKind classifies the namespace marker at the head of a path.
type PrefixKind uint8

const (
	// PrefixNone means the path has no special prefix.
	PrefixNone PrefixKind = iota
	// PrefixDeviceRelative is the `\\.\` device namespace.
	PrefixDeviceRelative
	// PrefixNtObject is the `\??\` object manager namespace.
	PrefixNtObject
	// PrefixExtendedLength is the `\\?\` extended-length namespace.
	PrefixExtendedLength
	// PrefixExtendedUnc is the `\\?\UNC\` extended-length share namespace.
	PrefixExtendedUnc
)

var prefixKindNames = [...]string{
	PrefixNone:           "none",
	PrefixDeviceRelative: "device",
	PrefixNtObject:       "ntobject",
	PrefixExtendedLength: "extended",
	PrefixExtendedUnc:    "extended-unc",
}

// String returns a short lower-case kind name.
func (k PrefixKind) String() string {
	if int(k) < len(prefixKindNames) {
		return prefixKindNames[k]
	}

	return "unknown"
}

// PrefixInfo describes a recognized path prefix.
type PrefixInfo struct {
	// Kind is the prefix namespace.
	Kind PrefixKind `json:"kind" yaml:"kind"`
	// Length is the number of leading bytes that belong to the prefix.
	Length int `json:"length" yaml:"length"`
}

// ParsePrefix classifies the head of path.
//
// Characters inside a recognized prefix are never subject to separator or
// dot collapsing by the other operations of this package.
func ParsePrefix(path string) PrefixInfo {
	if len(path) < 4 || !isSep(path[0]) || !isSep(path[3]) {
		return PrefixInfo{}
	}

	if path[2] == '.' && isSep(path[1]) {
		return PrefixInfo{Kind: PrefixDeviceRelative, Length: 4}
	}

	if path[2] != '?' {
		return PrefixInfo{}
	}

	if !isSep(path[1]) && path[1] != '?' {
		return PrefixInfo{}
	}

	if len(path) >= 8 && isSep(path[7]) && strings.EqualFold(path[4:7], "unc") {
		return PrefixInfo{Kind: PrefixExtendedUnc, Length: 8}
	}

	if path[1] == '?' {
		return PrefixInfo{Kind: PrefixNtObject, Length: 4}
	}

	return PrefixInfo{Kind: PrefixExtendedLength, Length: 4}
}

// splitPrefix returns the verbatim prefix text and the remainder.
func splitPrefix(path string) (prefix, rest string) {
	n := ParsePrefix(path).Length
	return path[:n], path[n:]
}

// normalizePrefix returns path with its prefix upper-cased and using
// backslashes, so host primitives recognize it. The remainder is unchanged.
func normalizePrefix(path string) string {
	prefix, rest := splitPrefix(path)
	if prefix == "" {
		return path
	}

	return normalizedPrefixText(prefix) + rest
}

func normalizedPrefixText(prefix string) string {
	return toBackslash(strings.ToUpper(prefix))
}

// isSep reports whether c is a Windows directory separator.
func isSep(c byte) bool {
	return c == '\\' || c == '/'
}

// toBackslash converts alternate separators to the canonical separator.
func toBackslash(s string) string {
	if strings.IndexByte(s, '/') < 0 {
		return s
	}

	return strings.ReplaceAll(s, "/", `\`)
}
