// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/winpath

package winpath

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// The functions in this file reproduce the Win32 path primitives
// (root length, full path, relative path, combine) in pure Go, so the
// algebra behaves the same on every host.

// isDevicePath reports `\\.\`, `\\?\` and `\??\` forms, either separator.
func isDevicePath(p string) bool {
	return isExtendedPath(p) ||
		(len(p) >= 4 && isSep(p[0]) && isSep(p[1]) && (p[2] == '.' || p[2] == '?') && isSep(p[3]))
}

// isExtendedPath reports `\\?\` and `\??\` spelled with backslashes.
func isExtendedPath(p string) bool {
	return len(p) >= 4 && p[0] == '\\' && (p[1] == '\\' || p[1] == '?') && p[2] == '?' && p[3] == '\\'
}

// isDeviceUNC reports device paths of the `\\?\UNC\` form.
func isDeviceUNC(p string) bool {
	return len(p) >= 8 && isDevicePath(p) && isSep(p[7]) && p[4] == 'U' && p[5] == 'N' && p[6] == 'C'
}

func isDriveLetter(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

// rootLength returns the length of the root portion of p.
func rootLength(p string) int {
	n := len(p)
	i := 0
	device := isDevicePath(p)
	deviceUNC := device && isDeviceUNC(p)

	switch {
	case (!device || deviceUNC) && n > 0 && isSep(p[0]):
		if deviceUNC || (n > 1 && isSep(p[1])) {
			// Server and share, two separators at most.
			i = 2
			if deviceUNC {
				i = 8
			}

			seps := 2
			for i < n {
				if isSep(p[i]) {
					seps--
					if seps == 0 {
						break
					}
				}

				i++
			}
		} else {
			i = 1
		}

	case device:
		i = 4
		for i < n && !isSep(p[i]) {
			i++
		}

		if i < n && i > 4 && isSep(p[i]) {
			i++
		}

	case n >= 2 && p[1] == ':' && isDriveLetter(p[0]):
		i = 2
		if n > 2 && isSep(p[2]) {
			i++
		}
	}

	return i
}

// isPartiallyQualified reports whether p depends on the current drive or directory.
func isPartiallyQualified(p string) bool {
	if len(p) < 2 {
		return true
	}

	if isSep(p[0]) {
		return !(p[1] == '?' || isSep(p[1]))
	}

	return !(len(p) >= 3 && p[1] == ':' && isSep(p[2]) && isDriveLetter(p[0]))
}

// isRooted reports whether p starts with a separator or a drive.
func isRooted(p string) bool {
	return (len(p) >= 1 && isSep(p[0])) || (len(p) >= 2 && p[1] == ':' && isDriveLetter(p[0]))
}

// isEffectivelyEmpty reports an empty or all-space path.
func isEffectivelyEmpty(p string) bool {
	return strings.TrimLeft(p, " ") == ""
}

// pathRoot returns the separator-normalized root of p and false when p is effectively empty.
func pathRoot(p string) (string, bool) {
	if isEffectivelyEmpty(p) {
		return "", false
	}

	return normalizeSeparators(p[:rootLength(p)]), true
}

// normalizeSeparators converts separators to backslashes and collapses
// repeats, keeping a leading pair for UNC and device forms.
func normalizeSeparators(p string) string {
	if p == "" {
		return p
	}

	clean := true
	for i := 0; i < len(p); i++ {
		if isSep(p[i]) && (p[i] != '\\' || (i > 0 && i+1 < len(p) && isSep(p[i+1]))) {
			clean = false
			break
		}
	}

	if clean {
		return p
	}

	var b strings.Builder
	b.Grow(len(p))
	start := 0
	if isSep(p[0]) {
		start++
		b.WriteByte('\\')
	}

	for i := start; i < len(p); i++ {
		c := p[i]
		if isSep(c) {
			if i+1 < len(p) && isSep(p[i+1]) {
				continue
			}

			c = '\\'
		}

		b.WriteByte(c)
	}

	return b.String()
}

// fileName returns the part of p after the last separator beyond the root.
func fileName(p string) string {
	root := rootLength(p)
	for i := len(p) - 1; i >= 0; i-- {
		if i < root || isSep(p[i]) {
			return p[i+1:]
		}
	}

	return p
}

// trimTrailingSeparators drops separators after the last element of p,
// never cutting into its root.
func trimTrailingSeparators(p string) string {
	root := rootLength(p)
	for len(p) > root && isSep(p[len(p)-1]) {
		p = p[:len(p)-1]
	}

	return p
}

// directoryName returns the parent of p and false when p has none.
func directoryName(p string) (string, bool) {
	if isEffectivelyEmpty(p) {
		return "", false
	}

	root := rootLength(p)
	end := len(p)
	if end <= root {
		return "", false
	}

	for end > root {
		end--
		if isSep(p[end]) {
			break
		}
	}

	for end > root && isSep(p[end-1]) {
		end--
	}

	return normalizeSeparators(p[:end]), true
}

// extension returns the extension of the last element, including the dot.
func extension(p string) string {
	for i := len(p) - 1; i >= 0; i-- {
		c := p[i]
		if c == '.' {
			if i != len(p)-1 {
				return p[i:]
			}

			return ""
		}

		if isSep(c) {
			break
		}
	}

	return ""
}

// combine concatenates elements; a rooted element discards everything before it.
func combine(elems ...string) string {
	first := 0
	for i, e := range elems {
		if e != "" && isRooted(e) {
			first = i
		}
	}

	var b strings.Builder
	for _, e := range elems[first:] {
		if e == "" {
			continue
		}

		if b.Len() > 0 {
			s := b.String()
			if !isSep(s[len(s)-1]) {
				b.WriteByte('\\')
			}
		}

		b.WriteString(e)
	}

	return b.String()
}

// fullPath resolves p against cwd the way GetFullPathName does.
//
// Extended `\\?\` paths are returned unchanged. Dot segments are resolved
// without crossing the root, and trailing dots and spaces are removed from
// the final element.
func fullPath(p, cwd string) (string, error) {
	if p == "" || strings.IndexByte(p, 0) >= 0 {
		return "", ErrInvalidArgument
	}

	if isExtendedPath(p) {
		return p, nil
	}

	p = toBackslash(p)
	switch {
	case isDevicePath(p), len(p) >= 2 && p[0] == '\\' && p[1] == '\\':
	case len(p) >= 3 && p[1] == ':' && p[2] == '\\' && isDriveLetter(p[0]):
	case len(p) >= 2 && p[1] == ':' && isDriveLetter(p[0]):
		if len(cwd) >= 2 && cwd[1] == ':' && strings.EqualFold(cwd[:1], p[:1]) {
			p = combine(cwd, p[2:])
		} else {
			p = p[:2] + `\` + p[2:]
		}
	case p[0] == '\\':
		p = strings.TrimRight(cwd[:rootLength(cwd)], `\`) + p
	default:
		p = combine(cwd, p)
	}

	p = toBackslash(p)
	if isPartiallyQualified(p) && !(len(p) > 0 && p[0] == '\\') {
		return "", ErrInvalidArgument
	}

	return resolveDots(p), nil
}

// resolveDots collapses `.`, `..` and repeated separators after the root.
func resolveDots(p string) string {
	root := rootLength(p)
	head := normalizeSeparators(p[:root])
	rest := p[root:]
	trailing := rest != "" && isSep(rest[len(rest)-1])

	segs := make([]string, 0, strings.Count(rest, `\`)+1)
	for _, seg := range strings.Split(rest, `\`) {
		switch seg {
		case "", ".":
		case "..":
			if len(segs) > 0 {
				segs = segs[:len(segs)-1]
			}
		default:
			segs = append(segs, seg)
		}
	}

	if n := len(segs); n > 0 && !trailing {
		last := strings.TrimRight(segs[n-1], ". ")
		if last == "" {
			segs = segs[:n-1]
		} else {
			segs[n-1] = last
		}
	}

	if len(segs) == 0 {
		if trailing && !strings.HasSuffix(head, `\`) {
			return head + `\`
		}

		return head
	}

	var b strings.Builder
	b.Grow(len(p))
	b.WriteString(head)
	for i, seg := range segs {
		if i > 0 || (head != "" && !strings.HasSuffix(head, `\`)) {
			b.WriteByte('\\')
		}

		b.WriteString(seg)
	}

	if trailing {
		b.WriteByte('\\')
	}

	return b.String()
}

// sameRoot compares the roots of two full paths ignoring case.
func sameRoot(a, b string) bool {
	ra, rb := rootLength(a), rootLength(b)
	return ra == rb && equalFoldPrefix(a, b) >= ra
}

// equalFoldPrefix counts leading bytes shared by a and b, ignoring case.
func equalFoldPrefix(a, b string) int {
	i := 0
	for i < len(a) && i < len(b) {
		ra, na := utf8.DecodeRuneInString(a[i:])
		rb, nb := utf8.DecodeRuneInString(b[i:])
		if na != nb {
			break
		}

		if ra != rb && unicode.ToUpper(ra) != unicode.ToUpper(rb) {
			break
		}

		i += na
	}

	return i
}

// commonPathLength returns the length of the common leading path of a and b,
// ending at a separator boundary.
func commonPathLength(a, b string) int {
	n := equalFoldPrefix(a, b)
	if n == 0 {
		return 0
	}

	if n == len(a) && (n == len(b) || isSep(b[n])) {
		return n
	}

	if n == len(b) && isSep(a[n]) {
		return n
	}

	for n > 0 && !isSep(a[n-1]) {
		n--
	}

	return n
}

// relativePath returns target relative to base, both resolved against cwd.
func relativePath(base, target, cwd string) (string, error) {
	base, err := fullPath(base, cwd)
	if err != nil {
		return "", err
	}

	target, err = fullPath(target, cwd)
	if err != nil {
		return "", err
	}

	common := 0
	if sameRoot(base, target) {
		common = commonPathLength(base, target)
	}

	if common == 0 {
		return "", ErrNoRelativePath
	}

	baseLen := len(base)
	if isSep(base[baseLen-1]) {
		baseLen--
	}

	targetLen := len(target)
	targetTrailing := isSep(target[targetLen-1])
	if targetTrailing {
		targetLen--
	}

	if baseLen == targetLen && common >= baseLen {
		return ".", nil
	}

	var b strings.Builder
	if common < baseLen {
		b.WriteString("..")
		for i := common + 1; i < baseLen; i++ {
			if isSep(base[i]) {
				b.WriteString(`\..`)
			}
		}
	} else if isSep(target[common]) {
		common++
	}

	diff := targetLen - common
	if targetTrailing {
		diff++
	}

	if diff > 0 {
		if b.Len() > 0 {
			b.WriteByte('\\')
		}

		b.WriteString(target[common : common+diff])
	}

	return b.String(), nil
}
