// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/winpath

package winpath

import (
	"io"
	"io/fs"
	"strings"
	"sync"
)

// memBackend is an in-memory Backend keyed by full backslash paths.
type memBackend struct {
	dirs   map[string][]string
	files  map[string]string
	denied map[string]bool
	wd     string
	open   int
	mu     sync.Mutex
}

func newMemBackend(wd string) *memBackend {
	b := &memBackend{
		wd:     wd,
		dirs:   map[string][]string{},
		files:  map[string]string{},
		denied: map[string]bool{},
	}
	b.addDir(wd)
	return b
}

// addDir registers dir and links it to its parent, if registered.
func (b *memBackend) addDir(dir string) {
	if _, ok := b.dirs[dir]; ok {
		return
	}

	b.dirs[dir] = nil
	b.link(dir)
}

func (b *memBackend) addFile(path, content string) {
	b.files[path] = content
	b.link(path)
}

func (b *memBackend) link(path string) {
	parent, ok := directoryName(path)
	if !ok {
		return
	}

	if children, ok := b.dirs[parent]; ok {
		b.dirs[parent] = append(children, fileName(path))
	}
}

func (b *memBackend) entry(path string) (Entry, bool) {
	if _, ok := b.dirs[path]; ok {
		return Entry{Name: fileName(path), Attributes: FileAttributeDirectory}, true
	}

	if content, ok := b.files[path]; ok {
		return Entry{Name: fileName(path), Size: uint64(len(content)), Attributes: FileAttributeNormal}, true
	}

	return Entry{}, false
}

func (b *memBackend) Getwd() (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.wd, nil
}

func (b *memBackend) Chdir(dir string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	full, err := fullPath(dir, b.wd)
	if err != nil {
		return &fs.PathError{Op: "chdir", Path: dir, Err: ERROR_BAD_ARGUMENTS}
	}

	if _, ok := b.dirs[full]; !ok {
		return &fs.PathError{Op: "chdir", Path: dir, Err: ERROR_PATH_NOT_FOUND}
	}

	b.wd = full
	return nil
}

func (b *memBackend) Stat(path string) (Entry, error) {
	e, ok := b.entry(path)
	if !ok {
		return Entry{}, &fs.PathError{Op: "stat", Path: path, Err: ERROR_PATH_NOT_FOUND}
	}

	return e, nil
}

func (b *memBackend) ReadDir(dir, filter string) (DirIterator, error) {
	if b.denied[dir] {
		return nil, &fs.PathError{Op: "readdir", Path: dir, Err: ERROR_ACCESS_DENIED}
	}

	children, ok := b.dirs[dir]
	if !ok {
		return nil, &fs.PathError{Op: "readdir", Path: dir, Err: ERROR_PATH_NOT_FOUND}
	}

	it := &memIterator{b: b}
	for _, name := range children {
		if !matchNativeFilter(filter, name, false) {
			continue
		}

		e, _ := b.entry(combine(dir, name))
		it.entries = append(it.entries, e)
	}

	b.mu.Lock()
	b.open++
	b.mu.Unlock()
	return it, nil
}

func (b *memBackend) Open(path string) (io.ReadCloser, error) {
	content, ok := b.files[path]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: path, Err: ERROR_FILE_NOT_FOUND}
	}

	return io.NopCloser(strings.NewReader(content)), nil
}

func (b *memBackend) openHandles() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.open
}

type memIterator struct {
	b       *memBackend
	entries []Entry
	closed  bool
}

func (it *memIterator) Next() (Entry, error) {
	if len(it.entries) == 0 {
		return Entry{}, io.EOF
	}

	e := it.entries[0]
	it.entries = it.entries[1:]
	return e, nil
}

func (it *memIterator) Close() error {
	if it.closed {
		return nil
	}

	it.closed = true
	it.b.mu.Lock()
	it.b.open--
	it.b.mu.Unlock()
	return nil
}
