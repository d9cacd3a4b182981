// Copyright 2026 Nixbytes Project Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package nar

import (
	"errors"
	"fmt"
)

// ErrBlobNotFound is the sentinel a BlobService returns (checked with
// errors.Is) when a digest is unknown. Emitter wraps it into
// *BlobNotFoundError before returning it to the caller.
var ErrBlobNotFound = errors.New("nar: blob not found")

// BlobNotFoundError reports that a file node's Digest resolved to nothing in
// the BlobService.
type BlobNotFoundError struct {
	Digest Digest
}

func (e *BlobNotFoundError) Error() string {
	return fmt.Sprintf("nar: blob not found: %s", e.Digest)
}

func (e *BlobNotFoundError) Unwrap() error {
	return ErrBlobNotFound
}

// SizeMismatchError reports that a file node's declared size disagreed with
// the actual length of the resolved blob.
type SizeMismatchError struct {
	Digest   Digest
	Declared uint64
	Actual   uint64
}

func (e *SizeMismatchError) Error() string {
	return fmt.Sprintf("nar: size mismatch for %s: declared %d, actual %d", e.Digest, e.Declared, e.Actual)
}

// DuplicateEntryError reports that a directory listing contained the same
// entry name more than once, once sorted.
type DuplicateEntryError struct {
	Name string
}

func (e *DuplicateEntryError) Error() string {
	return fmt.Sprintf("nar: duplicate directory entry: %q", e.Name)
}
