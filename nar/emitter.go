// Copyright 2026 Nixbytes Project Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package nar

import (
	"context"
	"errors"
	"io"
	"sort"

	"github.com/nixbytes/wireframe/wire"
)

const (
	wordMagic      = "nix-archive-1"
	wordOpen       = "("
	wordClose      = ")"
	wordType       = "type"
	wordSymlink    = "symlink"
	wordTarget     = "target"
	wordRegular    = "regular"
	wordExecutable = "executable"
	wordContents   = "contents"
	wordDirectory  = "directory"
	wordEntry      = "entry"
	wordName       = "name"
	wordNode       = "node"
)

// Emitter encodes a tree of Nodes into the NAR token stream, resolving file
// and directory content through the injected BlobService and
// DirectoryService as it walks.
type Emitter struct {
	blobs BlobService
	dirs  DirectoryService
}

// NewEmitter constructs an Emitter backed by the given content services.
func NewEmitter(blobs BlobService, dirs DirectoryService) *Emitter {
	return &Emitter{blobs: blobs, dirs: dirs}
}

// Emit writes the full archive for root to sink: the "nix-archive-1" magic
// token followed by root's node encoding. Traversal is depth-first,
// pre-order, and streams tokens as it walks rather than buffering subtrees.
func (e *Emitter) Emit(ctx context.Context, sink wire.Sink, root Node) error {
	if err := emitToken(sink, wordMagic); err != nil {
		return err
	}
	return e.emitNode(ctx, sink, root)
}

func (e *Emitter) emitNode(ctx context.Context, sink wire.Sink, n Node) error {
	if err := emitToken(sink, wordOpen); err != nil {
		return err
	}
	if err := emitToken(sink, wordType); err != nil {
		return err
	}

	switch n.Kind {
	case KindSymlink:
		if err := emitToken(sink, wordSymlink); err != nil {
			return err
		}
		if err := emitToken(sink, wordTarget); err != nil {
			return err
		}
		if err := emitToken(sink, n.Target); err != nil {
			return err
		}
	case KindRegular:
		if err := emitToken(sink, wordRegular); err != nil {
			return err
		}
		if n.Executable {
			if err := emitToken(sink, wordExecutable); err != nil {
				return err
			}
			if err := emitToken(sink, ""); err != nil {
				return err
			}
		}
		if err := emitToken(sink, wordContents); err != nil {
			return err
		}
		if err := e.emitFileContents(ctx, sink, n); err != nil {
			return err
		}
	case KindDirectory:
		if err := emitToken(sink, wordDirectory); err != nil {
			return err
		}
		if err := e.emitEntries(ctx, sink, n.Digest); err != nil {
			return err
		}
	}

	return emitToken(sink, wordClose)
}

func (e *Emitter) emitFileContents(ctx context.Context, sink wire.Sink, n Node) error {
	blob, size, err := e.blobs.Open(ctx, n.Digest)
	if err != nil {
		if errors.Is(err, ErrBlobNotFound) {
			return &BlobNotFoundError{Digest: n.Digest}
		}
		return err
	}
	defer blob.Close()

	if size != n.Size {
		return &SizeMismatchError{Digest: n.Digest, Declared: n.Size, Actual: size}
	}

	return emitStream(sink, n.Size, blob)
}

func (e *Emitter) emitEntries(ctx context.Context, sink wire.Sink, dirDigest Digest) error {
	dir, err := e.dirs.Get(ctx, dirDigest)
	if err != nil {
		return err
	}

	entries := make([]Node, len(dir.Entries))
	copy(entries, dir.Entries)
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })

	for i := 1; i < len(entries); i++ {
		if entries[i].Name == entries[i-1].Name {
			return &DuplicateEntryError{Name: entries[i].Name}
		}
	}

	for _, entry := range entries {
		if err := emitToken(sink, wordEntry); err != nil {
			return err
		}
		if err := emitToken(sink, wordOpen); err != nil {
			return err
		}
		if err := emitToken(sink, wordName); err != nil {
			return err
		}
		if err := emitToken(sink, entry.Name); err != nil {
			return err
		}
		if err := emitToken(sink, wordNode); err != nil {
			return err
		}
		if err := e.emitNode(ctx, sink, entry); err != nil {
			return err
		}
		if err := emitToken(sink, wordClose); err != nil {
			return err
		}
	}
	return nil
}

// emitToken writes one complete framed packet carrying the literal bytes of
// s, flushing it through to sink before returning.
func emitToken(sink wire.Sink, s string) error {
	w := wire.New(sink, uint64(len(s)), wire.WithBlock())
	for p := []byte(s); len(p) > 0; {
		n, err := w.Write(p)
		if err != nil {
			return err
		}
		p = p[n:]
	}
	return w.Flush()
}

// emitStream writes one complete framed packet of the given length, reading
// its payload from r rather than holding it all in memory at once.
func emitStream(sink wire.Sink, length uint64, r io.Reader) error {
	w := wire.New(sink, length, wire.WithBlock())
	buf := make([]byte, 32*1024)
	var remaining = length
	for remaining > 0 {
		chunk := buf
		if uint64(len(chunk)) > remaining {
			chunk = chunk[:remaining]
		}
		n, err := r.Read(chunk)
		for p := chunk[:n]; len(p) > 0; {
			m, werr := w.Write(p)
			if werr != nil {
				return werr
			}
			p = p[m:]
		}
		remaining -= uint64(n)
		if err != nil {
			if err == io.EOF && remaining == 0 {
				break
			}
			if err == io.EOF {
				return io.ErrUnexpectedEOF
			}
			return err
		}
	}
	return w.Flush()
}
