// Copyright 2026 Nixbytes Project Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package nar

import (
	"encoding/base64"
	"fmt"

	"lukechampine.com/blake3"
)

// DigestSize is the length in bytes of a Digest.
const DigestSize = 32

// Digest is a 32-byte BLAKE3 content digest identifying a blob or directory.
type Digest [DigestSize]byte

// NewDigest validates and wraps a 32-byte slice as a Digest.
func NewDigest(b []byte) (Digest, error) {
	var d Digest
	if len(b) != DigestSize {
		return d, fmt.Errorf("nar: invalid digest length: %d", len(b))
	}
	copy(d[:], b)
	return d, nil
}

// SumDigest computes the Digest of data directly, for tests and fixtures.
func SumDigest(data []byte) Digest {
	return Digest(blake3.Sum256(data))
}

// String renders the digest as "b3:" followed by standard base64.
func (d Digest) String() string {
	return "b3:" + base64.StdEncoding.EncodeToString(d[:])
}

// Bytes returns a copy of the digest's 32 bytes.
func (d Digest) Bytes() []byte {
	b := make([]byte, DigestSize)
	copy(b, d[:])
	return b
}
