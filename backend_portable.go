// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/winpath

package winpath

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"
)

// readDirBatch is how many names the portable iterator buffers per read.
const readDirBatch = 64

// PortableOptions configures the os-package backend.
type PortableOptions struct {
	// CaseSensitive makes native filter matching case-sensitive.
	CaseSensitive bool `mapstructure:"case_sensitive" json:"case_sensitive,omitempty" yaml:"case_sensitive,omitempty"`
}

// PortableBackend implements Backend with the os package. On non-Windows
// hosts backslash paths are mapped onto the host separator.
type PortableBackend struct {
	opts PortableOptions
}

// NewPortableBackend returns an os-package backend.
func NewPortableBackend(opts PortableOptions) *PortableBackend {
	return &PortableBackend{opts: opts}
}

// Getwd implements Backend.
func (b *PortableBackend) Getwd() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", translateError("getwd", ".", err)
	}

	return fromHostPath(wd), nil
}

// Chdir implements Backend.
func (b *PortableBackend) Chdir(dir string) error {
	if err := os.Chdir(hostPath(dir)); err != nil {
		return translateError("chdir", dir, err)
	}

	return nil
}

// Stat implements Backend.
func (b *PortableBackend) Stat(path string) (Entry, error) {
	fi, err := os.Stat(hostPath(path))
	if err != nil {
		return Entry{}, translateError("stat", path, err)
	}

	return entryFromFileInfo(fi), nil
}

// ReadDir implements Backend.
func (b *PortableBackend) ReadDir(dir, filter string) (DirIterator, error) {
	f, err := os.Open(hostPath(dir))
	if err != nil {
		return nil, translateError("readdir", dir, err)
	}

	return &portableIterator{
		f:             f,
		dir:           dir,
		filter:        filter,
		caseSensitive: b.opts.CaseSensitive,
	}, nil
}

// Open implements Backend.
func (b *PortableBackend) Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(hostPath(path))
	if err != nil {
		return nil, translateError("open", path, err)
	}

	return f, nil
}

// portableIterator buffers os.File.ReadDir batches.
type portableIterator struct {
	f             *os.File
	dir           string
	filter        string
	pending       []fs.DirEntry
	caseSensitive bool
	done          bool
}

// Next implements DirIterator.
func (it *portableIterator) Next() (Entry, error) {
	for {
		if len(it.pending) == 0 {
			if it.done {
				return Entry{}, io.EOF
			}

			batch, err := it.f.ReadDir(readDirBatch)
			if err != nil && !errors.Is(err, io.EOF) {
				return Entry{}, translateError("readdir", it.dir, err)
			}

			if len(batch) < readDirBatch {
				it.done = true
			}

			it.pending = batch
			continue
		}

		de := it.pending[0]
		it.pending = it.pending[1:]
		if !matchNativeFilter(it.filter, de.Name(), it.caseSensitive) {
			continue
		}

		fi, err := de.Info()
		if err != nil {
			// Removed between listing and stat.
			continue
		}

		return entryFromFileInfo(fi), nil
	}
}

// Close implements DirIterator.
func (it *portableIterator) Close() error {
	return it.f.Close()
}

func entryFromFileInfo(fi fs.FileInfo) Entry {
	attrs := uint32(0)
	if fi.IsDir() {
		attrs |= FileAttributeDirectory
	}

	if fi.Mode().Perm()&0o200 == 0 {
		attrs |= FileAttributeReadonly
	}

	if fi.Mode()&fs.ModeSymlink != 0 {
		attrs |= FileAttributeReparsePoint
	}

	if attrs == 0 {
		attrs = FileAttributeNormal
	}

	size := int64(0)
	if !fi.IsDir() {
		size = fi.Size()
	}

	return Entry{
		Name:       fi.Name(),
		Size:       uint64(size),
		ModTime:    fi.ModTime(),
		Attributes: attrs,
		Sys:        fi.Sys(),
	}
}

// hostPath converts a backslash path into host form.
func hostPath(p string) string {
	if runtime.GOOS == "windows" {
		return p
	}

	return filepath.FromSlash(strings.ReplaceAll(p, `\`, "/"))
}

// fromHostPath converts a host path into backslash form.
func fromHostPath(p string) string {
	return strings.ReplaceAll(filepath.ToSlash(p), "/", `\`)
}

// translateError maps an os error onto a *fs.PathError holding an Errno.
func translateError(op, path string, err error) error {
	var code Errno
	var errno syscall.Errno

	switch {
	case errors.Is(err, fs.ErrNotExist):
		code = ERROR_PATH_NOT_FOUND
	case errors.Is(err, fs.ErrPermission):
		code = ERROR_ACCESS_DENIED
	case errors.Is(err, syscall.ENOTDIR):
		code = ERROR_DIRECTORY
	case runtime.GOOS == "windows" && errors.As(err, &errno) && errno != 0:
		code = ErrnoOf(uint32(errno))
	default:
		code = ERROR_GEN_FAILURE
	}

	return &fs.PathError{Op: op, Path: path, Err: code}
}
