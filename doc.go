// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/winpath

/*
Package winpath implements path/filepath style operations with Windows path
semantics on any host: drive letters, UNC shares, and the `\\.\`, `\??\`,
`\\?\` and `\\?\UNC\` namespace prefixes.

Paths are Text values, so an absent path (Null) stays distinct from the empty
string. Pure functions need no host access:
  - prefix classification (`ParsePrefix`)
  - lexical algebra (`Clean`, `Join`, `Split`, `Dir`, `Base`, `Ext`, `VolumeName`, `IsAbs`)
  - separator conversion (`FromSlash`, `ToSlash`, `SplitList`)
  - pattern compilation (`Compile`, `Match`)

A recognized prefix is kept verbatim and is never dot-collapsed.

Operations that read the current directory or the filesystem live on
`Filepath`, created with `New` over a `Backend`:
  - `Abs`, `Rel`, `Getwd`, `Chdir`, `EvalSymlinks`
  - `Glob`: pattern matching against the tree under the current directory
  - `Walk`: lazy pre-order traversal returning an iter.Seq2 plus a fatal error

Two backends exist: `NewNativeBackend` (Win32 FindFirstFile enumeration,
Windows only) and `NewPortableBackend` (os package, any host).

Pattern syntax errors are *PatternError values carrying the status, the
offending character, its byte offset and the failing grammar unit.

Walks can be narrowed with include/exclude rules (`ParseRules`, `NewFilter`)
and per-directory rules files.
*/
package winpath
