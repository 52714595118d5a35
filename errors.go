// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/winpath

package winpath

import (
	"errors"
	"fmt"
	"io/fs"
)

// Errno is a Windows system error code (the ERROR_* space).
type Errno uint32

// Windows error codes produced by path operations and backends.
const (
	ERROR_INVALID_FUNCTION Errno = 1
	ERROR_FILE_NOT_FOUND   Errno = 2
	ERROR_PATH_NOT_FOUND   Errno = 3
	ERROR_ACCESS_DENIED    Errno = 5
	ERROR_INVALID_DATA     Errno = 13
	ERROR_NOT_READY        Errno = 21
	ERROR_GEN_FAILURE      Errno = 31
	ERROR_BAD_NETPATH      Errno = 53
	ERROR_BAD_NET_NAME     Errno = 67
	ERROR_INVALID_NAME     Errno = 123
	ERROR_BAD_ARGUMENTS    Errno = 160
	ERROR_DIRECTORY        Errno = 267
)

// Sentinel errors for winpath operations.
var (
	// ErrInvalidArgument indicates absent, empty or otherwise unusable input.
	ErrInvalidArgument error = ERROR_BAD_ARGUMENTS
	// ErrFileNotFound indicates a missing file.
	ErrFileNotFound error = ERROR_FILE_NOT_FOUND
	// ErrPathNotFound indicates a missing path or directory.
	ErrPathNotFound error = ERROR_PATH_NOT_FOUND
	// ErrNetworkPathNotFound indicates an unreachable UNC server.
	ErrNetworkPathNotFound error = ERROR_BAD_NETPATH
	// ErrNetworkNameNotFound indicates an unknown UNC share.
	ErrNetworkNameNotFound error = ERROR_BAD_NET_NAME
	// ErrInvalidData indicates malformed data returned by the host.
	ErrInvalidData error = ERROR_INVALID_DATA
	// ErrInvalidFunction indicates an operation the backend does not support.
	ErrInvalidFunction error = ERROR_INVALID_FUNCTION

	// ErrNoRelativePath indicates Rel operands without a common root.
	ErrNoRelativePath = errors.New("no relative path")
	// ErrBadPattern indicates a glob pattern syntax error, see PatternError.
	ErrBadPattern = errors.New("syntax error in pattern")
)

var errnoMessages = map[Errno]string{
	ERROR_INVALID_FUNCTION: "incorrect function",
	ERROR_FILE_NOT_FOUND:   "the system cannot find the file specified",
	ERROR_PATH_NOT_FOUND:   "the system cannot find the path specified",
	ERROR_ACCESS_DENIED:    "access is denied",
	ERROR_INVALID_DATA:     "the data is invalid",
	ERROR_NOT_READY:        "the device is not ready",
	ERROR_GEN_FAILURE:      "a device attached to the system is not functioning",
	ERROR_BAD_NETPATH:      "the network path was not found",
	ERROR_BAD_NET_NAME:     "the network name cannot be found",
	ERROR_INVALID_NAME:     "the filename, directory name, or volume label syntax is incorrect",
	ERROR_BAD_ARGUMENTS:    "one or more arguments are not correct",
	ERROR_DIRECTORY:        "the directory name is invalid",
}

// ErrnoOf converts a native error code into an error value.
//
// Code 0 means success on the host; passing it is a caller bug and panics.
func ErrnoOf(code uint32) Errno {
	if code == 0 {
		panic("winpath: ErrnoOf called with code 0")
	}

	return Errno(code)
}

// Error returns the host message for the code.
func (e Errno) Error() string {
	if msg, ok := errnoMessages[e]; ok {
		return msg
	}

	return fmt.Sprintf("winpath: errno %d", uint32(e))
}

// Code returns the numeric Windows error code.
func (e Errno) Code() uint32 {
	return uint32(e)
}

// HResult returns the code in FACILITY_WIN32 HRESULT form (0x8007xxxx).
func (e Errno) HResult() uint32 {
	return 0x80070000 | (uint32(e) & 0xFFFF)
}

// Is maps codes onto the io/fs error categories.
func (e Errno) Is(target error) bool {
	switch target {
	case fs.ErrNotExist:
		return e == ERROR_FILE_NOT_FOUND || e == ERROR_PATH_NOT_FOUND ||
			e == ERROR_BAD_NETPATH || e == ERROR_BAD_NET_NAME
	case fs.ErrPermission:
		return e == ERROR_ACCESS_DENIED
	case fs.ErrInvalid:
		return e == ERROR_BAD_ARGUMENTS || e == ERROR_INVALID_NAME
	}

	return false
}
