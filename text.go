// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/winpath

package winpath

import (
	"bytes"
	"encoding/json"
)

// Text is a path string that may be absent.
//
// The zero value is absent (null). Of("") is present and empty. Every
// operation in this package keeps the two apart: functions that may return
// absent never return an empty present value instead.
type Text struct {
	s     string
	valid bool
}

// Null is the absent Text value.
var Null Text

// Of returns a present Text holding s.
func Of(s string) Text {
	return Text{s: s, valid: true}
}

// Get returns the string and whether the value is present.
func (t Text) Get() (string, bool) {
	return t.s, t.valid
}

// String returns the held string, "" when absent.
func (t Text) String() string {
	return t.s
}

// IsNull reports whether the value is absent.
func (t Text) IsNull() bool {
	return !t.valid
}

// IsEmpty reports whether the value is absent or the empty string.
func (t Text) IsEmpty() bool {
	return t.s == ""
}

// GoString renders absent values distinctly for %#v and test output.
func (t Text) GoString() string {
	if !t.valid {
		return "winpath.Null"
	}

	return "winpath.Of(" + jsonQuote(t.s) + ")"
}

// MarshalJSON encodes absent as null.
func (t Text) MarshalJSON() ([]byte, error) {
	if !t.valid {
		return []byte("null"), nil
	}

	return json.Marshal(t.s)
}

// UnmarshalJSON decodes null as absent.
func (t *Text) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*t = Null
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	*t = Of(s)
	return nil
}

// MarshalYAML encodes absent as null.
func (t Text) MarshalYAML() (any, error) {
	if !t.valid {
		return nil, nil
	}

	return t.s, nil
}

// nonEmpty wraps s, mapping "" to absent.
func nonEmpty(s string) Text {
	if s == "" {
		return Null
	}

	return Of(s)
}

func jsonQuote(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}
