// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/winpath

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) (stdout, stderr string, code int) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	var out, errOut bytes.Buffer
	code = run(args, &out, &errOut)
	return out.String(), errOut.String(), code
}

func TestRunPureOperations(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"clean", `C:\Users\..\`}, `C:\` + "\n"},
		{[]string{"clean", "<nil>"}, "<nil>\n"},
		{[]string{"join", `C:\a`, "b", `..\c`}, `C:\a\c` + "\n"},
		{[]string{"split", `C:\a\b.txt`}, `C:\a\` + "\nb.txt\n"},
		{[]string{"ext", "b.tar.gz"}, ".gz\n"},
		{[]string{"volume", `C:\a`}, "C:\n"},
		{[]string{"isabs", `C:\a`}, "true\n"},
		{[]string{"isabs", `a\b`}, "false\n"},
		{[]string{"toslash", `a\b`}, "a/b\n"},
		{[]string{"fromslash", "a/b"}, `a\b` + "\n"},
		{[]string{"splitlist", `C:\a;D:\b`}, `C:\a` + "\n" + `D:\b` + "\n"},
		{[]string{"prefix", `\\?\UNC\server\share`}, "extended-unc 8\n"},
		{[]string{"compile", "f???.txt"}, `^f[^\\/][^\\/][^\\/]\.txt$` + "\nf???.txt\n"},
		{[]string{"match", "f???.txt", "file.txt"}, "true\n"},
		{[]string{"match", "f???.txt", "file1.txt"}, "false\n"},
		{[]string{"rel", `C:\a`, `C:\a\b\c`}, `b\c` + "\n"},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			stdout, stderr, code := runCLI(t, tt.args...)
			require.Equal(t, 0, code, stderr)
			assert.Equal(t, tt.want, stdout)
		})
	}
}

func TestRunJSON(t *testing.T) {
	stdout, stderr, code := runCLI(t, "-json", "split", `C:\A`)
	require.Equal(t, 0, code, stderr)

	var got map[string]*string
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	require.NotNil(t, got["dir"])
	require.NotNil(t, got["file"])
	assert.Equal(t, `C:\`, *got["dir"])
	assert.Equal(t, "A", *got["file"])

	stdout, stderr, code = runCLI(t, "-json", "ext", "a")
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, "null\n", stdout)
}

func TestRunErrors(t *testing.T) {
	_, stderr, code := runCLI(t, "frobnicate")
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, `unknown operation "frobnicate"`)

	_, stderr, code = runCLI(t, "rel", `C:\a`)
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "usage: winpath rel <base> <target>")

	_, stderr, code = runCLI(t, "compile", `\t`)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "invalid file name character")

	_, stderr, code = runCLI(t, "rel", `C:\a`, `D:\b`)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "winpath: rel:")

	_, _, code = runCLI(t)
	assert.Equal(t, 2, code)
}

func TestRunWalkAndGlob(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "file.txt"), []byte("x"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "skip.log"), []byte("x"), 0o600))
	t.Chdir(dir)

	stdout, stderr, code := runCLI(t, "walk", ".", "*.log")
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, ".\nfile.txt\n", stdout)

	stdout, stderr, code = runCLI(t, "glob", "f*.*")
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, "file.txt\n", stdout)
}

func TestRunInitConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "winpath.yaml")

	stdout, stderr, code := runCLI(t, "init-config", path)
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, path+"\n", stdout)

	_, stderr, code = runCLI(t, "init-config", path)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "already exists")

	_, stderr, code = runCLI(t, "-force", "init-config", path)
	assert.Equal(t, 0, code, stderr)

	stdout, stderr, code = runCLI(t, "-config", path, "match", "*.TXT", "a.txt")
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, "false\n", stdout)
}
