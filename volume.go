// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/winpath

package winpath

import (
	"strings"

	"github.com/google/uuid"
)

const volumePrefix = "volume{"

// VolumeGUID extracts the volume identifier from a volume-GUID path such as
// `\\?\Volume{3f2504e0-4f89-11d3-9a0c-0305e82c3301}\dir`.
func VolumeGUID(path Text) (uuid.UUID, bool) {
	s := path.String()
	info := ParsePrefix(s)
	if info.Kind != PrefixExtendedLength && info.Kind != PrefixNtObject && info.Kind != PrefixDeviceRelative {
		return uuid.Nil, false
	}

	head := s[info.Length:]
	if i := strings.IndexAny(head, `\/`); i >= 0 {
		head = head[:i]
	}

	if len(head) <= len(volumePrefix)+1 || !strings.EqualFold(head[:len(volumePrefix)], volumePrefix) || head[len(head)-1] != '}' {
		return uuid.Nil, false
	}

	id, err := uuid.Parse(head[len(volumePrefix) : len(head)-1])
	if err != nil {
		return uuid.Nil, false
	}

	return id, true
}

// IsVolumeGUIDPath reports whether path is rooted at a volume GUID.
func IsVolumeGUIDPath(path Text) bool {
	_, ok := VolumeGUID(path)
	return ok
}
