// Copyright 2026 Nixbytes Project Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package nar

import (
	"bytes"
	"context"
	"io"
)

// BlobService resolves a Digest to its content and declared size. Open
// returns ErrBlobNotFound (checked with errors.Is) when digest is unknown.
type BlobService interface {
	Open(ctx context.Context, digest Digest) (io.ReadCloser, uint64, error)
}

// DirectoryService resolves a Digest to its already-parsed child listing.
type DirectoryService interface {
	Get(ctx context.Context, digest Digest) (*Directory, error)
}

// MemBlobService is an in-memory BlobService fixture for tests.
type MemBlobService struct {
	blobs map[Digest][]byte
}

// NewMemBlobService returns an empty MemBlobService.
func NewMemBlobService() *MemBlobService {
	return &MemBlobService{blobs: make(map[Digest][]byte)}
}

// Put stores data under its own BLAKE3 digest and returns it.
func (s *MemBlobService) Put(data []byte) Digest {
	d := SumDigest(data)
	cp := make([]byte, len(data))
	copy(cp, data)
	s.blobs[d] = cp
	return d
}

func (s *MemBlobService) Open(ctx context.Context, digest Digest) (io.ReadCloser, uint64, error) {
	data, ok := s.blobs[digest]
	if !ok {
		return nil, 0, ErrBlobNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), uint64(len(data)), nil
}

// MemDirectoryService is an in-memory DirectoryService fixture for tests.
type MemDirectoryService struct {
	dirs map[Digest]*Directory
}

// NewMemDirectoryService returns an empty MemDirectoryService.
func NewMemDirectoryService() *MemDirectoryService {
	return &MemDirectoryService{dirs: make(map[Digest]*Directory)}
}

// Put registers dir under digest, for tests that construct digests
// independently of content (directory digests are not content-addressed the
// same way blobs are, within this fixture's scope).
func (s *MemDirectoryService) Put(digest Digest, dir *Directory) {
	s.dirs[digest] = dir
}

func (s *MemDirectoryService) Get(ctx context.Context, digest Digest) (*Directory, error) {
	dir, ok := s.dirs[digest]
	if !ok {
		return nil, ErrBlobNotFound
	}
	return dir, nil
}
