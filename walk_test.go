// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/winpath

package winpath

import (
	"errors"
	"io/fs"
	"path/filepath"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memTree builds:
//
//	C:\root
//	  a\
//	    x.txt
//	  b.txt
func memTree() *memBackend {
	b := newMemBackend(`C:\root`)
	b.addDir(`C:\root\a`)
	b.addFile(`C:\root\a\x.txt`, "x")
	b.addFile(`C:\root\b.txt`, "bb")
	return b
}

// collect drains a walk into relative paths, recording errors as "!".
func collect(t *testing.T, f *Filepath, root string, opts WalkOptions) []string {
	t.Helper()

	seq, err := f.Walk(root, opts)
	require.NoError(t, err)

	out := make([]string, 0, 8)
	for e, err := range seq {
		if err != nil {
			out = append(out, "!")
			continue
		}

		out = append(out, e.RelativePath)
	}

	return out
}

func TestWalkPreOrder(t *testing.T) {
	t.Parallel()

	b := memTree()
	got := collect(t, New(b, Options{}), ".", WalkOptions{})
	want := []string{".", "a", `a\x.txt`, "b.txt"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Walk mismatch (-want +got):\n%s", diff)
	}

	assert.Zero(t, b.openHandles())
}

func TestWalkEntryFields(t *testing.T) {
	t.Parallel()

	seq, err := New(memTree(), Options{}).Walk(`C:\root`, WalkOptions{})
	require.NoError(t, err)

	entries := make(map[string]*DirEntry)
	for e, err := range seq {
		require.NoError(t, err)
		entries[e.RelativePath] = e
	}

	root := entries["."]
	require.NotNil(t, root)
	assert.Equal(t, `C:\root`, root.Path)
	assert.Equal(t, "root", root.Name)
	assert.True(t, root.IsDir)

	x := entries[`a\x.txt`]
	require.NotNil(t, x)
	assert.Equal(t, `C:\root\a\x.txt`, x.Path)
	assert.Equal(t, "x.txt", x.Name)
	assert.Equal(t, uint64(1), x.Size)
	assert.False(t, x.IsDir)
}

func TestWalkRootNameWithTrailingSeparator(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, "file.txt")
	f := newPinned(t, dir)

	for _, root := range []string{fromHostPath(dir), fromHostPath(dir) + `\`, fromHostPath(dir) + `/`} {
		seq, err := f.Walk(root, WalkOptions{})
		require.NoError(t, err, root)

		for e, err := range seq {
			require.NoError(t, err, root)
			assert.Equal(t, ".", e.RelativePath, root)
			assert.Equal(t, filepath.Base(dir), e.Name, root)
			break
		}
	}
}

func TestTrimTrailingSeparators(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		`C:\a\\`:          `C:\a`,
		`C:\a/`:           `C:\a`,
		`C:\`:             `C:\`,
		`\\server\share\`: `\\server\share`,
		`\\?\C:\`:         `\\?\C:\`,
		`a`:               `a`,
	}

	for in, want := range cases {
		assert.Equal(t, want, trimTrailingSeparators(in), in)
	}
}

func TestWalkBase(t *testing.T) {
	t.Parallel()

	got := collect(t, New(memTree(), Options{}), "a", WalkOptions{Base: `C:\`})
	want := []string{`root\a`, `root\a\x.txt`}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Walk mismatch (-want +got):\n%s", diff)
	}
}

func TestWalkRestartable(t *testing.T) {
	t.Parallel()

	seq, err := New(memTree(), Options{}).Walk(".", WalkOptions{})
	require.NoError(t, err)

	var first, second []string
	for e := range seq {
		first = append(first, e.RelativePath)
	}

	for e := range seq {
		second = append(second, e.RelativePath)
	}

	assert.Equal(t, first, second)
}

func TestWalkEarlyBreakClosesHandles(t *testing.T) {
	t.Parallel()

	b := memTree()
	seq, err := New(b, Options{}).Walk(".", WalkOptions{})
	require.NoError(t, err)

	for e := range seq {
		if e.RelativePath == `a\x.txt` {
			break
		}
	}

	assert.Zero(t, b.openHandles())
}

func TestWalkMissingRoot(t *testing.T) {
	t.Parallel()

	f := New(memTree(), Options{})

	seq, err := f.Walk("missing", WalkOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPathNotFound)
	assert.ErrorIs(t, err, fs.ErrNotExist)

	n := 0
	for range seq {
		n++
	}
	assert.Zero(t, n)

	_, err = f.Walk("b.txt", WalkOptions{})
	assert.ErrorIs(t, err, ERROR_DIRECTORY)

	_, err = f.Walk("", WalkOptions{})
	assert.ErrorIs(t, err, ErrPathNotFound)
}

func TestWalkSkipsUnreadableSubtree(t *testing.T) {
	t.Parallel()

	b := memTree()
	b.denied[`C:\root\a`] = true
	f := New(b, Options{})

	got := collect(t, f, ".", WalkOptions{})
	assert.Equal(t, []string{".", "a", "b.txt"}, got)

	got = collect(t, f, ".", WalkOptions{ReportSubtreeErrors: true})
	assert.Equal(t, []string{".", "a", "!", "b.txt"}, got)

	seq, err := f.Walk(".", WalkOptions{ReportSubtreeErrors: true})
	require.NoError(t, err)
	for _, err := range seq {
		if err != nil {
			assert.ErrorIs(t, err, fs.ErrPermission)
		}
	}
}

func TestWalkMaxDepth(t *testing.T) {
	t.Parallel()

	got := collect(t, New(memTree(), Options{}), ".", WalkOptions{MaxDepth: 1})
	assert.Equal(t, []string{".", "a", "b.txt"}, got)
}

func TestWalkDoesNotFollowReparsePoints(t *testing.T) {
	t.Parallel()

	b := memTree()
	b.addDir(`C:\root\link`)
	b.addFile(`C:\root\link\y.txt`, "")
	f := New(reparseBackend{memBackend: b, reparse: "link"}, Options{})

	got := collect(t, f, ".", WalkOptions{})
	assert.Contains(t, got, "link")
	assert.NotContains(t, got, `link\y.txt`)
}

// reparseBackend marks one directory name as a reparse point.
type reparseBackend struct {
	*memBackend
	reparse string
}

func (b reparseBackend) ReadDir(dir, filter string) (DirIterator, error) {
	it, err := b.memBackend.ReadDir(dir, filter)
	if err != nil {
		return nil, err
	}

	mi := it.(*memIterator)
	for i := range mi.entries {
		if mi.entries[i].Name == b.reparse {
			mi.entries[i].Attributes |= FileAttributeReparsePoint
		}
	}

	return mi, nil
}

func TestWalkRules(t *testing.T) {
	t.Parallel()

	f := New(memTree(), Options{})

	got := collect(t, f, ".", WalkOptions{
		Rules: []Rule{{Action: ActionExclude, Pattern: "*.txt"}},
	})
	assert.Equal(t, []string{".", "a"}, got)

	got = collect(t, f, ".", WalkOptions{
		Rules: []Rule{{Action: ActionExclude, Pattern: "a/"}},
	})
	assert.Equal(t, []string{".", "b.txt"}, got)

	_, err := f.Walk(".", WalkOptions{
		Rules: []Rule{{Action: ActionExclude, Pattern: `\`}},
	})
	assert.ErrorIs(t, err, ErrBadPattern)
}

func TestWalkRulesFile(t *testing.T) {
	t.Parallel()

	b := memTree()
	b.addFile(`C:\root\a\.walkignore`, "x.txt\n")
	b.addDir(`C:\root\c`)
	b.addFile(`C:\root\c\x.txt`, "")
	f := New(b, Options{})

	got := collect(t, f, ".", WalkOptions{RulesFileName: ".walkignore"})
	want := []string{".", "a", `a\.walkignore`, "b.txt", "c", `c\x.txt`}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Walk mismatch (-want +got):\n%s", diff)
	}
}

func TestWalkRulesFileOverridesParent(t *testing.T) {
	t.Parallel()

	b := memTree()
	b.addFile(`C:\root\a\.walkignore`, "!*.txt\n")
	f := New(b, Options{})

	got := collect(t, f, ".", WalkOptions{
		Rules:         []Rule{{Action: ActionExclude, Pattern: "*.txt"}},
		RulesFileName: ".walkignore",
	})
	want := []string{".", "a", `a\x.txt`, `a\.walkignore`}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Walk mismatch (-want +got):\n%s", diff)
	}
}

func TestWalkOptionDefaults(t *testing.T) {
	t.Parallel()

	f := New(memTree(), Options{Walk: WalkOptions{MaxDepth: 1}})
	got := collect(t, f, ".", WalkOptions{})
	assert.Equal(t, []string{".", "a", "b.txt"}, got)

	merged := WalkOptions{Rules: []Rule{{Action: ActionInclude, Pattern: "b"}}}.merge(WalkOptions{
		Rules:               []Rule{{Action: ActionExclude, Pattern: "a"}},
		RulesFileName:       ".ignore",
		ReportSubtreeErrors: true,
	})
	assert.Equal(t, ".ignore", merged.RulesFileName)
	assert.True(t, merged.ReportSubtreeErrors)
	assert.Equal(t, []string{"a", "b"}, []string{merged.Rules[0].Pattern, merged.Rules[1].Pattern})
}

func TestWalkHost(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, "file.txt")

	got := collect(t, newPinned(t, dir), ".", WalkOptions{})
	assert.Equal(t, []string{".", "file.txt"}, got)
}

func TestWalkHostNested(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, "a/x.txt", "a/y/z.txt", "b.txt")

	got := collect(t, newPinned(t, dir), ".", WalkOptions{})
	require.Equal(t, ".", got[0])

	sorted := slices.Clone(got)
	slices.Sort(sorted)
	assert.Equal(t, []string{".", "a", `a\x.txt`, `a\y`, `a\y\z.txt`, "b.txt"}, sorted)

	// Parents precede their children.
	for _, pair := range [][2]string{{"a", `a\x.txt`}, {"a", `a\y`}, {`a\y`, `a\y\z.txt`}} {
		assert.Less(t, slices.Index(got, pair[0]), slices.Index(got, pair[1]), "%s before %s", pair[0], pair[1])
	}
}

func TestWalkErrorsAreTyped(t *testing.T) {
	t.Parallel()

	b := memTree()
	b.denied[`C:\root\a`] = true

	seq, err := New(b, Options{}).Walk(".", WalkOptions{ReportSubtreeErrors: true})
	require.NoError(t, err)

	for _, err := range seq {
		if err == nil {
			continue
		}

		var perr *fs.PathError
		require.True(t, errors.As(err, &perr))
		assert.Equal(t, `C:\root\a`, perr.Path)
	}
}
