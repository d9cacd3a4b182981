// Copyright 2026 Nixbytes Project Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wire

import (
	"encoding/binary"
	"fmt"
	"io"
)

// ReadFrame reads one complete bytes wire packet from r: an 8-byte
// little-endian length prefix, that many payload bytes, and the zero
// padding out to the next 8-byte boundary. It returns the payload bytes.
//
// ReadFrame is the reading half of a round trip: it exists for tests and
// verification, not as a counterpart API that production code is expected to
// drive through a Sink -- Writer's contract is write-only.
func ReadFrame(r io.Reader) ([]byte, error) {
	var lenBuf [lenSize]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return nil, fmt.Errorf("wire: read length prefix: %w", err)
	}
	n := binary.LittleEndian.Uint64(lenBuf[:])

	payload := make([]byte, n)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, fmt.Errorf("wire: read %d payload bytes: %w", n, err)
	}

	pad := paddingLen(n)
	if pad > 0 {
		var padBuf [lenSize - 1]byte
		if _, err := io.ReadFull(r, padBuf[:pad]); err != nil {
			return nil, fmt.Errorf("wire: read %d padding bytes: %w", pad, err)
		}
		for _, b := range padBuf[:pad] {
			if b != 0 {
				return nil, fmt.Errorf("wire: invalid padding: expected zero bytes, got %v", padBuf[:pad])
			}
		}
	}

	return payload, nil
}
