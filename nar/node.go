// Copyright 2026 Nixbytes Project Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package nar

// Kind discriminates the three node variants the NAR grammar supports.
type Kind uint8

const (
	// KindSymlink is a symbolic link node, carrying a Target path.
	KindSymlink Kind = iota
	// KindRegular is a regular file node, carrying a Digest and Size and,
	// optionally, Executable.
	KindRegular
	// KindDirectory is a directory node, resolved through a
	// DirectoryService by its Digest.
	KindDirectory
)

// Node is one entry in a directory listing, or the root of an archive. Which
// fields are meaningful depends on Kind: Target for KindSymlink; Digest,
// Size, Executable for KindRegular; Digest for KindDirectory.
type Node struct {
	Name       string
	Kind       Kind
	Target     string
	Digest     Digest
	Size       uint64
	Executable bool
}

// Directory is a flat, already-parsed listing of child nodes, as returned by
// a DirectoryService. Entries need not be pre-sorted; Emitter sorts a copy
// before emitting them and fails with DuplicateEntryError if a name repeats.
type Directory struct {
	Entries []Node
}
