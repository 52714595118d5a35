// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/winpath

package winpath

import "strings"

// maxCleanPasses bounds the fixed-point loop in cleanPlain.
const maxCleanPasses = 4

// Clean returns the shortest lexically equivalent form of path.
//
// Absent and empty input yield absent. A path with a recognized prefix keeps
// the prefix verbatim and only has its remainder separator-normalized; device
// namespaces are opaque, so no dot collapsing happens there. Other paths have
// repeated separators, `.` and resolvable `..` elements removed; `..` never
// crosses a drive root or UNC share. A path that reduces to nothing is ".".
func Clean(path Text) Text {
	s := path.String()
	if s == "" {
		return Null
	}

	prefix, rest := splitPrefix(s)
	if prefix != "" {
		return Of(prefix + toBackslash(rest))
	}

	return Of(cleanPlain(s))
}

// cleanPlain cleans a non-empty path without a special prefix.
func cleanPlain(s string) string {
	cur := toBackslash(s)
	for range maxCleanPasses {
		next := cleanOnce(cur)
		if next == cur {
			break
		}

		cur = next
	}

	return cur
}

// cleanOnce performs one segment pass over a backslash-only path.
func cleanOnce(s string) string {
	rl := rootLength(s)
	root := normalizeSeparators(s[:rl])
	unc := strings.HasPrefix(root, `\\`)
	rooted := unc || strings.HasSuffix(root, `\`)

	segs := make([]string, 0, strings.Count(s[rl:], `\`)+1)
	for _, seg := range strings.Split(s[rl:], `\`) {
		switch seg {
		case "", ".":
		case "..":
			switch {
			case len(segs) > 0 && segs[len(segs)-1] != "..":
				segs = segs[:len(segs)-1]
			case rooted:
			default:
				segs = append(segs, seg)
			}
		default:
			segs = append(segs, seg)
		}
	}

	body := strings.Join(segs, `\`)
	switch {
	case root == "":
		if body == "" {
			return "."
		}

		return body
	case body == "":
		return root
	case unc && !strings.HasSuffix(root, `\`):
		return root + `\` + body
	default:
		return root + body
	}
}

// Join joins any number of path elements into a single cleaned path.
//
// Empty and absent elements are ignored. A rooted element discards the
// elements before it, as drive switching does on the host; when that element
// carries a special prefix its original spelling is kept. All-empty input
// yields absent.
func Join(elem ...Text) Text {
	parts := make([]string, 0, len(elem))
	for _, e := range elem {
		if s := e.String(); s != "" {
			parts = append(parts, s)
		}
	}

	if len(parts) == 0 {
		return Null
	}

	lead := 0
	normalized := make([]string, len(parts))
	for i, p := range parts {
		normalized[i] = normalizePrefix(p)
		if isRooted(normalized[i]) {
			lead = i
		}
	}

	joined := combine(normalized...)
	joined = restorePrefix(joined, parts[lead])

	return Clean(Of(joined))
}

// restorePrefix swaps the normalized prefix at the head of s back to the
// spelling used in orig.
func restorePrefix(s, orig string) string {
	prefix, _ := splitPrefix(orig)
	if prefix == "" {
		return s
	}

	norm := normalizedPrefixText(prefix)
	if !strings.HasPrefix(s, norm) {
		return s
	}

	return prefix + s[len(norm):]
}
