// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/winpath

//go:build windows

package winpath

import (
	"errors"
	"io"
	"io/fs"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNativeBackendReadDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, "file.txt", "other.log", "sub/inner.txt")

	for _, opts := range []NativeOptions{{}, {LongPaths: true}} {
		b, err := NewNativeBackend(opts)
		require.NoError(t, err)

		it, err := b.ReadDir(dir, "*.txt")
		require.NoError(t, err)

		var names []string
		for {
			e, err := it.Next()
			if errors.Is(err, io.EOF) {
				break
			}

			require.NoError(t, err)
			names = append(names, e.Name)
		}
		require.NoError(t, it.Close())
		require.NoError(t, it.Close())
		assert.Equal(t, []string{"file.txt"}, names)

		it, err = b.ReadDir(dir, "*.none")
		require.NoError(t, err)
		_, err = it.Next()
		assert.ErrorIs(t, err, io.EOF)
		require.NoError(t, it.Close())

		_, err = b.ReadDir(dir+`\missing`, "*")
		assert.ErrorIs(t, err, fs.ErrNotExist)

		st, err := b.Stat(dir + `\file.txt`)
		require.NoError(t, err)
		assert.Equal(t, uint64(len("file.txt")), st.Size)
		assert.False(t, st.IsDir())
	}
}

func TestNativeBackendWalkMatchesPortable(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, "a/x.txt", "a/y/z.txt", "b.txt")

	native, err := NewNativeBackend(NativeOptions{})
	require.NoError(t, err)

	walk := func(b Backend) []string {
		seq, err := New(b, Options{}).Walk(dir, WalkOptions{Base: dir})
		require.NoError(t, err)

		var out []string
		for e, err := range seq {
			require.NoError(t, err)
			out = append(out, e.RelativePath)
		}

		return out
	}

	got := walk(native)
	want := walk(NewPortableBackend(PortableOptions{}))
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("native walk mismatch (-portable +native):\n%s", diff)
	}
}
