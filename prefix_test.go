// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/winpath

package winpath

import "testing"

func TestParsePrefix(t *testing.T) {
	t.Parallel()

	cases := []struct {
		path string
		want PrefixInfo
	}{
		{`\\.\unc\localhost\share`, PrefixInfo{Kind: PrefixDeviceRelative, Length: 4}},
		{`\\.\C:\`, PrefixInfo{Kind: PrefixDeviceRelative, Length: 4}},
		{`//./pipe/name`, PrefixInfo{Kind: PrefixDeviceRelative, Length: 4}},
		{`//?/unc/localhost\share`, PrefixInfo{Kind: PrefixExtendedUnc, Length: 8}},
		{`\\?\UNC\server\share`, PrefixInfo{Kind: PrefixExtendedUnc, Length: 8}},
		{`\??\unc\localhost\share`, PrefixInfo{Kind: PrefixExtendedUnc, Length: 8}},
		{`\\?\C:\`, PrefixInfo{Kind: PrefixExtendedLength, Length: 4}},
		{`\\?\UNC`, PrefixInfo{Kind: PrefixExtendedLength, Length: 4}},
		{`\\?\UNCx\`, PrefixInfo{Kind: PrefixExtendedLength, Length: 4}},
		{`\??\C:\`, PrefixInfo{Kind: PrefixNtObject, Length: 4}},
		{`\..\C:\`, PrefixInfo{}},
		{`C:\`, PrefixInfo{}},
		{`\\server\share`, PrefixInfo{}},
		{`\\?`, PrefixInfo{}},
		{"", PrefixInfo{}},
	}

	for _, tc := range cases {
		if got := ParsePrefix(tc.path); got != tc.want {
			t.Fatalf("ParsePrefix(%q)=%+v, want %+v", tc.path, got, tc.want)
		}
	}
}

func TestPrefixKindString(t *testing.T) {
	t.Parallel()

	if got := PrefixExtendedUnc.String(); got != "extended-unc" {
		t.Fatalf("PrefixExtendedUnc.String()=%q", got)
	}

	if got := PrefixKind(99).String(); got != "unknown" {
		t.Fatalf("PrefixKind(99).String()=%q", got)
	}
}

func TestNormalizePrefix(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		`//?/unc/server/share`: `\\?\UNC\server/share`,
		`\\?\c:/a`:             `\\?\c:/a`,
		`\??\x`:                `\??\x`,
		`a/b`:                  `a/b`,
	}

	for in, want := range cases {
		if got := normalizePrefix(in); got != want {
			t.Fatalf("normalizePrefix(%q)=%q, want %q", in, got, want)
		}
	}
}
