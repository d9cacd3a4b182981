// Copyright 2026 Nixbytes Project Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package nar_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/nixbytes/wireframe/nar"
	"github.com/nixbytes/wireframe/wire"
)

// readTokens decodes every frame in buf as a sequence of NAR tokens,
// returning each token's payload bytes in order.
func readTokens(t *testing.T, buf []byte) [][]byte {
	t.Helper()
	r := bytes.NewReader(buf)
	var tokens [][]byte
	for r.Len() > 0 {
		tok, err := wire.ReadFrame(r)
		if err != nil {
			t.Fatalf("ReadFrame: %v", err)
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

// single_symlink: a lone symlink node produces the exact byte sequence of
// the reference Nix archive format.
func TestEmitSymlink(t *testing.T) {
	blobs := nar.NewMemBlobService()
	dirs := nar.NewMemDirectoryService()
	e := nar.NewEmitter(blobs, dirs)

	var buf bytes.Buffer
	root := nar.Node{
		Name:   "doesntmatter",
		Kind:   nar.KindSymlink,
		Target: "/nix/store/somewhereelse",
	}
	if err := e.Emit(context.Background(), wire.NewIOSink(&buf), root); err != nil {
		t.Fatalf("Emit: %v", err)
	}

	want := []byte{
		13, 0, 0, 0, 0, 0, 0, 0, 110, 105, 120, 45, 97, 114, 99, 104, 105, 118, 101, 45, 49, 0,
		0, 0, // "nix-archive-1"
		1, 0, 0, 0, 0, 0, 0, 0, 40, 0, 0, 0, 0, 0, 0, 0, // "("
		4, 0, 0, 0, 0, 0, 0, 0, 116, 121, 112, 101, 0, 0, 0, 0, // "type"
		7, 0, 0, 0, 0, 0, 0, 0, 115, 121, 109, 108, 105, 110, 107, 0, // "symlink"
		6, 0, 0, 0, 0, 0, 0, 0, 116, 97, 114, 103, 101, 116, 0, 0, // "target"
		24, 0, 0, 0, 0, 0, 0, 0, 47, 110, 105, 120, 47, 115, 116, 111, 114, 101, 47, 115, 111,
		109, 101, 119, 104, 101, 114, 101, 101, 108, 115, 101, // "/nix/store/somewhereelse"
		1, 0, 0, 0, 0, 0, 0, 0, 41, 0, 0, 0, 0, 0, 0, 0, // ")"
	}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Fatalf("emitted bytes =\n%x\nwant\n%x", buf.Bytes(), want)
	}
}

func TestEmitFileMissingBlob(t *testing.T) {
	blobs := nar.NewMemBlobService()
	dirs := nar.NewMemDirectoryService()
	e := nar.NewEmitter(blobs, dirs)

	digest := nar.SumDigest([]byte("Hello World!"))
	root := nar.Node{Name: "doesntmatter", Kind: nar.KindRegular, Digest: digest, Size: 12}

	var buf bytes.Buffer
	err := e.Emit(context.Background(), wire.NewIOSink(&buf), root)

	var notFound *nar.BlobNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("err = %v, want *BlobNotFoundError", err)
	}
	if notFound.Digest != digest {
		t.Fatalf("digest = %s, want %s", notFound.Digest, digest)
	}
	if !errors.Is(err, nar.ErrBlobNotFound) {
		t.Fatalf("err does not unwrap to ErrBlobNotFound")
	}
}

func TestEmitFileWrongSize(t *testing.T) {
	blobs := nar.NewMemBlobService()
	dirs := nar.NewMemDirectoryService()
	e := nar.NewEmitter(blobs, dirs)

	contents := []byte("Hello World!")
	digest := blobs.Put(contents)

	root := nar.Node{Name: "doesntmatter", Kind: nar.KindRegular, Digest: digest, Size: 42}

	var buf bytes.Buffer
	err := e.Emit(context.Background(), wire.NewIOSink(&buf), root)

	var mismatch *nar.SizeMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("err = %v, want *SizeMismatchError", err)
	}
	if mismatch.Declared != 42 || mismatch.Actual != uint64(len(contents)) {
		t.Fatalf("mismatch = %+v", mismatch)
	}
}

func TestEmitFileContents(t *testing.T) {
	blobs := nar.NewMemBlobService()
	dirs := nar.NewMemDirectoryService()
	e := nar.NewEmitter(blobs, dirs)

	contents := []byte("Hello World!")
	digest := blobs.Put(contents)
	root := nar.Node{Name: "doesntmatter", Kind: nar.KindRegular, Digest: digest, Size: uint64(len(contents))}

	var buf bytes.Buffer
	if err := e.Emit(context.Background(), wire.NewIOSink(&buf), root); err != nil {
		t.Fatalf("Emit: %v", err)
	}

	tokens := readTokens(t, buf.Bytes())
	last := tokens[len(tokens)-2] // ")" is last; contents is second-to-last
	if !bytes.Equal(last, contents) {
		t.Fatalf("contents token = %q, want %q", last, contents)
	}
}

// Directory entries are emitted in lexicographic order regardless of the
// order the DirectoryService returned them in.
func TestEmitDirectorySortsEntries(t *testing.T) {
	blobs := nar.NewMemBlobService()
	dirs := nar.NewMemDirectoryService()
	e := nar.NewEmitter(blobs, dirs)

	dirDigest := nar.SumDigest([]byte("some-directory"))
	dirs.Put(dirDigest, &nar.Directory{
		Entries: []nar.Node{
			{Name: "zeta", Kind: nar.KindSymlink, Target: "z"},
			{Name: "alpha", Kind: nar.KindSymlink, Target: "a"},
			{Name: "mid", Kind: nar.KindSymlink, Target: "m"},
		},
	})
	root := nar.Node{Name: "root", Kind: nar.KindDirectory, Digest: dirDigest}

	var buf bytes.Buffer
	if err := e.Emit(context.Background(), wire.NewIOSink(&buf), root); err != nil {
		t.Fatalf("Emit: %v", err)
	}

	tokens := readTokens(t, buf.Bytes())
	var names []string
	for i, tok := range tokens {
		if string(tok) == "name" && i+1 < len(tokens) {
			names = append(names, string(tokens[i+1]))
		}
	}
	want := []string{"alpha", "mid", "zeta"}
	if len(names) != len(want) {
		t.Fatalf("names = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("names = %v, want %v", names, want)
		}
	}
}

func TestEmitDirectoryDuplicateEntry(t *testing.T) {
	blobs := nar.NewMemBlobService()
	dirs := nar.NewMemDirectoryService()
	e := nar.NewEmitter(blobs, dirs)

	dirDigest := nar.SumDigest([]byte("dup-directory"))
	dirs.Put(dirDigest, &nar.Directory{
		Entries: []nar.Node{
			{Name: "dup", Kind: nar.KindSymlink, Target: "a"},
			{Name: "dup", Kind: nar.KindSymlink, Target: "b"},
		},
	})
	root := nar.Node{Name: "root", Kind: nar.KindDirectory, Digest: dirDigest}

	var buf bytes.Buffer
	err := e.Emit(context.Background(), wire.NewIOSink(&buf), root)

	var dup *nar.DuplicateEntryError
	if !errors.As(err, &dup) {
		t.Fatalf("err = %v, want *DuplicateEntryError", err)
	}
	if dup.Name != "dup" {
		t.Fatalf("dup.Name = %q, want %q", dup.Name, "dup")
	}
}

// Digest formatting uses the "b3:<base64>" form.
func TestDigestString(t *testing.T) {
	d := nar.SumDigest([]byte("hello"))
	if got := d.String(); got[:3] != "b3:" {
		t.Fatalf("digest string = %q, want b3: prefix", got)
	}
}

func TestNewDigestRejectsWrongLength(t *testing.T) {
	if _, err := nar.NewDigest([]byte{1, 2, 3}); err == nil {
		t.Fatalf("expected error for short digest")
	}
}
