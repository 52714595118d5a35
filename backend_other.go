// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/winpath

//go:build !windows

package winpath

import "fmt"

// NewNativeBackend fails on hosts without Win32; use NewPortableBackend.
func NewNativeBackend(_ NativeOptions) (Backend, error) {
	return nil, fmt.Errorf("native backend: %w", ErrInvalidFunction)
}
