// Copyright 2026 Nixbytes Project Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package wire implements the "bytes wire packet" framing used to stream a
// payload of known length to a byte-sink without buffering it in memory.
//
// Wire format: an 8-byte little-endian length prefix, followed by exactly
// that many payload bytes, followed by zero-valued padding extending the
// total frame to the next 8-byte boundary. The total frame size is always a
// multiple of 8.
//
// Semantics and design:
//   - Non-blocking first: a Sink reports backpressure by returning
//     iox.ErrWouldBlock from any of its three operations. Writer surfaces
//     this to the caller (or retries in-process, depending on Options) and
//     never blocks a goroutine on its own.
//   - Strict phase order: a Writer moves Size -> Payload -> Padding and never
//     revisits an earlier phase. Excess payload is rejected before any byte
//     of the offending write reaches the sink.
//   - Exact-length enforcement: the payload length is fixed at construction
//     and cannot grow; writing more than promised is always ExcessPayload,
//     regardless of which phase the writer currently occupies.
package wire
