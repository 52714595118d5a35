// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/winpath

package winpath

import (
	"fmt"
	"strconv"
	"strings"
)

// PatternStatus classifies a pattern syntax error.
type PatternStatus uint8

const (
	// PatternNoMatch means no grammar unit starts at the offset.
	PatternNoMatch PatternStatus = iota + 1
	// PatternInvalidEscape means a character that must not be escaped was.
	PatternInvalidEscape
	// PatternInvalidFileNameChar means a character that cannot occur in a file name.
	PatternInvalidFileNameChar
	// PatternInvalidRange means a range bound could not be decoded.
	PatternInvalidRange
	// PatternInvalidRangeCharacter means a range covers an invalid file name character.
	PatternInvalidRangeCharacter
	// PatternInvalidReverseRange means the low bound sorts after the high bound.
	PatternInvalidReverseRange
	// PatternInvalidRangeCoverage means a range covers only invalid characters.
	PatternInvalidRangeCoverage
)

var patternStatusNames = map[PatternStatus]string{
	PatternNoMatch:               "NoMatch",
	PatternInvalidEscape:         "InvalidEscape",
	PatternInvalidFileNameChar:   "InvalidFileNameChar",
	PatternInvalidRange:          "InvalidRange",
	PatternInvalidRangeCharacter: "InvalidRangeCharacter",
	PatternInvalidReverseRange:   "InvalidReverseRange",
	PatternInvalidRangeCoverage:  "InvalidRangeCoverage",
}

var patternStatusText = map[PatternStatus]string{
	PatternNoMatch:               "unexpected character",
	PatternInvalidEscape:         "invalid escape of",
	PatternInvalidFileNameChar:   "invalid file name character",
	PatternInvalidRange:          "undecodable range bound",
	PatternInvalidRangeCharacter: "range covers invalid file name character",
	PatternInvalidReverseRange:   "range out of order, high bound",
	PatternInvalidRangeCoverage:  "range covers only invalid file name characters from",
}

// String returns the status name.
func (s PatternStatus) String() string {
	if name, ok := patternStatusNames[s]; ok {
		return name
	}

	return "PatternStatus(" + strconv.Itoa(int(s)) + ")"
}

// PatternError is a structured glob syntax error.
type PatternError struct {
	// Pattern is the source pattern.
	Pattern string `json:"pattern"`
	// Match is the text of the unit that failed, empty for PatternNoMatch.
	Match string `json:"match"`
	// Group names the grammar unit that produced Match, for example
	// "range", "lo", "char", "unicode" or "text".
	Group string `json:"group"`
	// Offset is the byte offset the failure is reported at.
	Offset int `json:"offset"`
	// Char is the offending character.
	Char rune `json:"char"`
	// Status is the failure kind.
	Status PatternStatus `json:"status"`
}

// Error implements error.
func (e *PatternError) Error() string {
	return fmt.Sprintf("syntax error in pattern %q at offset %d: %s %s",
		e.Pattern, e.Offset, patternStatusText[e.Status], displayChar(e.Char))
}

// Unwrap returns ErrBadPattern.
func (e *PatternError) Unwrap() error {
	return ErrBadPattern
}

// displayChar renders a character with its code point, e.g. `U+0009 '\t'`.
func displayChar(r rune) string {
	return fmt.Sprintf("U+%04X %s", r, strconv.QuoteRune(r))
}

// regexSpecial lists ASCII characters that may be escaped in a pattern
// because they carry meaning in regular expression syntax.
const regexSpecial = "\x00\a\b\t\n\v\f\r #$()*+.?[\\^{|"

// isInvalidPathChar reports characters that cannot occur anywhere in a path.
func isInvalidPathChar(r rune) bool {
	return r < 0x20 || r == '|'
}

// invalidFileNameChars lists, sorted, the characters that cannot occur in a
// file name, beyond the control characters.
const invalidFileNameChars = "\"*/:<>?\\|"

// isInvalidFileNameChar reports characters that cannot occur in a file name.
func isInvalidFileNameChar(r rune) bool {
	return r < 0x20 || (r < 0x80 && strings.ContainsRune(invalidFileNameChars, r))
}

// firstInvalidInRange returns the lowest invalid file name character in lo..hi.
func firstInvalidInRange(lo, hi rune) (rune, bool) {
	if lo < 0x20 {
		return lo, true
	}

	for _, r := range invalidFileNameChars {
		if r >= lo && r <= hi {
			return r, true
		}
	}

	return 0, false
}

// invalidRangeCoverage reports a range that can only match invalid file name
// characters: a single invalid character, or two adjacent ones.
func invalidRangeCoverage(lo, hi rune) bool {
	if hi-lo > 1 {
		return false
	}

	return isInvalidFileNameChar(lo) && isInvalidFileNameChar(hi)
}

// validateSingle checks an unescaped character.
func validateSingle(r rune) PatternStatus {
	if isInvalidFileNameChar(r) {
		return PatternInvalidFileNameChar
	}

	return 0
}

// validateEscape checks the character of `\c` or `\uXXXX`. Inside a range
// `\]` and `\-` are also accepted.
func validateEscape(r rune, inRange bool) PatternStatus {
	switch r {
	case '?', '*', '/':
		return PatternInvalidEscape
	}

	if inRange && (r == ']' || r == '-') {
		return 0
	}

	if isInvalidFileNameChar(r) {
		return PatternInvalidFileNameChar
	}

	if r < 0x80 && !strings.ContainsRune(regexSpecial, r) {
		return PatternInvalidEscape
	}

	return 0
}
