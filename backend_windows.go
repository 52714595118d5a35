// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/winpath

//go:build windows

package winpath

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"syscall"
	"time"
	"unsafe"

	"golang.org/x/sys/windows"
)

// NativeBackend implements Backend with FindFirstFile/FindNextFile.
type NativeBackend struct {
	opts NativeOptions
}

// NewNativeBackend returns the Win32 backend.
func NewNativeBackend(opts NativeOptions) (Backend, error) {
	return &NativeBackend{opts: opts}, nil
}

// Getwd implements Backend.
func (b *NativeBackend) Getwd() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", nativeError("getwd", ".", err)
	}

	return wd, nil
}

// Chdir implements Backend.
func (b *NativeBackend) Chdir(dir string) error {
	if err := os.Chdir(b.path(dir)); err != nil {
		return nativeError("chdir", dir, err)
	}

	return nil
}

// Stat implements Backend.
func (b *NativeBackend) Stat(path string) (Entry, error) {
	name, err := windows.UTF16PtrFromString(b.path(path))
	if err != nil {
		return Entry{}, &fs.PathError{Op: "stat", Path: path, Err: ERROR_INVALID_NAME}
	}

	var data windows.Win32FileAttributeData
	err = windows.GetFileAttributesEx(name, windows.GetFileExInfoStandard, (*byte)(unsafe.Pointer(&data)))
	if err != nil {
		return Entry{}, nativeError("stat", path, err)
	}

	return Entry{
		Name:       fileName(path),
		Size:       uint64(data.FileSizeHigh)<<32 | uint64(data.FileSizeLow),
		ModTime:    time.Unix(0, data.LastWriteTime.Nanoseconds()),
		Attributes: data.FileAttributes,
		Sys:        &data,
	}, nil
}

// ReadDir implements Backend.
func (b *NativeBackend) ReadDir(dir, filter string) (DirIterator, error) {
	if filter == "" {
		filter = "*"
	}

	query, err := windows.UTF16PtrFromString(combine(b.path(dir), filter))
	if err != nil {
		return nil, &fs.PathError{Op: "readdir", Path: dir, Err: ERROR_INVALID_NAME}
	}

	it := &nativeIterator{dir: dir}
	it.handle, err = windows.FindFirstFile(query, &it.data)
	if err != nil {
		if errors.Is(err, windows.ERROR_FILE_NOT_FOUND) {
			// The directory exists but nothing matches the filter.
			return &nativeIterator{dir: dir, done: true, closed: true}, nil
		}

		return nil, nativeError("readdir", dir, err)
	}

	it.buffered = true
	return it, nil
}

// Open implements Backend.
func (b *NativeBackend) Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(b.path(path))
	if err != nil {
		return nil, nativeError("open", path, err)
	}

	return f, nil
}

// path applies the long path option.
func (b *NativeBackend) path(p string) string {
	if b.opts.LongPaths {
		return extendedLengthPath(p)
	}

	return p
}

// nativeIterator walks one FindFirstFile handle.
type nativeIterator struct {
	dir      string
	handle   windows.Handle
	data     windows.Win32finddata
	buffered bool
	done     bool
	closed   bool
}

// Next implements DirIterator.
func (it *nativeIterator) Next() (Entry, error) {
	if it.done {
		return Entry{}, io.EOF
	}

	if !it.buffered {
		if err := windows.FindNextFile(it.handle, &it.data); err != nil {
			it.done = true
			if errors.Is(err, windows.ERROR_NO_MORE_FILES) {
				return Entry{}, io.EOF
			}

			return Entry{}, nativeError("readdir", it.dir, err)
		}
	}

	it.buffered = false
	data := it.data

	return Entry{
		Name:       windows.UTF16ToString(data.FileName[:]),
		Size:       uint64(data.FileSizeHigh)<<32 | uint64(data.FileSizeLow),
		ModTime:    time.Unix(0, data.LastWriteTime.Nanoseconds()),
		Attributes: data.FileAttributes,
		Sys:        &data,
	}, nil
}

// Close implements DirIterator.
func (it *nativeIterator) Close() error {
	if it.closed {
		return nil
	}

	it.closed = true
	it.done = true
	if err := windows.FindClose(it.handle); err != nil {
		return nativeError("findclose", it.dir, err)
	}

	return nil
}

// nativeError wraps a Win32 error code.
func nativeError(op, path string, err error) error {
	var errno syscall.Errno
	if errors.As(err, &errno) && errno != 0 {
		return &fs.PathError{Op: op, Path: path, Err: ErrnoOf(uint32(errno))}
	}

	return translateError(op, path, err)
}
